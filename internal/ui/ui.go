package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/hrfx/internal/models"
)

// RunStore describes the persistence queries the TUI browses.
type RunStore interface {
	List(limit int) ([]*models.ExportRun, error)
	Files(runID string) ([]models.ExportedFile, error)
}

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RunListView ViewState = iota
	FileListView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	store       RunStore
	width       int
	height      int
	runList     list.Model
	runs        []*models.ExportRun
	fileList    list.Model
	selectedRun *models.ExportRun
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model backed by the provided store.
func NewModel(ctx context.Context, store RunStore) *Model {
	return &Model{
		ctx:   ctx,
		view:  RunListView,
		store: store,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init initializes the TUI by fetching recorded runs.
func (m *Model) Init() tea.Cmd {
	return m.fetchRuns()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.runList.Width() == 0 {
			m.runList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.fileList.Width() == 0 {
			m.fileList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case RunListView:
			return m.handleRunListKeys(msg)
		case FileListView:
			return m.handleFileListKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case RunListView:
		return m.renderRunList()
	case FileListView:
		return m.renderFileList()
	default:
		return ""
	}
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgRunsFetched:
		data := msg.data.(struct {
			runs []*models.ExportRun
			err  error
		})
		if data.err != nil {
			m.err = data.err
			return m, tea.Quit
		}
		m.runs = data.runs
		items := make([]list.Item, len(data.runs))
		for i, run := range data.runs {
			items[i] = runItem{run: run}
		}
		m.runList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.runList.Title = "Export Runs"
		m.runList.SetSize(m.width-4, m.height-8)
		return m, nil

	case MsgFilesFetched:
		data := msg.data.(struct {
			run   *models.ExportRun
			files []models.ExportedFile
			err   error
		})
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.selectedRun = data.run
		items := make([]list.Item, len(data.files))
		for i, file := range data.files {
			items[i] = fileItem{file: file}
		}
		m.fileList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.fileList.Title = fmt.Sprintf("Files in run #%d (%s)", data.run.Sequence(), data.run.Prefix())
		m.fileList.SetSize(m.width-4, m.height-8)
		m.view = FileListView
		return m, nil
	}

	return m, nil
}

func (m *Model) handleRunListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.fetchRuns()
	case "enter":
		selected := m.runList.SelectedItem()
		if selected != nil {
			if ri, ok := selected.(runItem); ok {
				return m, m.fetchFiles(ri.run)
			}
		}
	}

	var cmd tea.Cmd
	m.runList, cmd = m.runList.Update(msg)
	return m, cmd
}

func (m *Model) handleFileListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = RunListView
		m.selectedRun = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.fileList, cmd = m.fileList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case RunListView:
		m.runList, cmd = m.runList.Update(msg)
	case FileListView:
		m.fileList, cmd = m.fileList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchRuns() tea.Cmd {
	return func() tea.Msg {
		runs, err := m.store.List(0)
		return runsFetchedMsg(runs, err)
	}
}

func (m *Model) fetchFiles(run *models.ExportRun) tea.Cmd {
	return func() tea.Msg {
		files, err := m.store.Files(run.ID())
		return filesFetchedMsg(run, files, err)
	}
}

func (m *Model) renderRunList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.runList.View(), helpView)
}

func (m *Model) renderFileList() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	var summary string
	if m.selectedRun != nil {
		summary = styles.help.Render(fmt.Sprintf(
			"session: %s • output: %s",
			m.selectedRun.SessionPath(),
			m.selectedRun.OutputDir(),
		))
	}

	return fmt.Sprintf("%s\n%s\n\n%s", m.fileList.View(), summary, helpView)
}
