package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/hrfx/internal/shared"
	"github.com/desertthunder/hrfx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive run browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openRepository()
	if err != nil {
		return fmt.Errorf("%w: run 'hrfx setup' first", shared.ErrDatabaseUnavailable)
	}
	defer db.Close()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/hrfx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, repo)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse recorded export runs interactively",
		Action: r.TUI,
	}
}
