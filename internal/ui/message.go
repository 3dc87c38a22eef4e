package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/hrfx/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRunsFetched MsgKind = iota
	MsgFilesFetched
)

// runsFetchedMsg is the constructor for [MsgRunsFetched]
func runsFetchedMsg(runs []*models.ExportRun, err error) Msg {
	return Msg{
		kind: MsgRunsFetched,
		data: struct {
			runs []*models.ExportRun
			err  error
		}{runs, err},
	}
}

// filesFetchedMsg is the constructor for [MsgFilesFetched]
func filesFetchedMsg(run *models.ExportRun, files []models.ExportedFile, err error) Msg {
	return Msg{
		kind: MsgFilesFetched,
		data: struct {
			run   *models.ExportRun
			files []models.ExportedFile
			err   error
		}{run, files, err},
	}
}
