package main

import (
	"context"
	"errors"

	"github.com/desertthunder/hrfx/internal/shared"
	"github.com/desertthunder/hrfx/internal/tasks"
	"github.com/desertthunder/hrfx/internal/watch"
	"github.com/urfave/cli/v3"
)

// Export runs a full session export, optionally re-running on file changes.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	sessionPath := cmd.String("session")
	opts := tasks.ExportOpts{
		Prefix:      cmd.String("prefix"),
		OutputDir:   cmd.String("output"),
		Grouped:     !cmd.Bool("legacy"),
		Workbook:    cmd.Bool("xlsx"),
		SessionPath: sessionPath,
	}
	if opts.Prefix == "" {
		opts.Prefix = r.config.Export.Prefix
	}
	if opts.OutputDir == "" {
		opts.OutputDir = r.config.Export.OutputDir
	}

	db, repo, err := r.openRepository()
	var recorder tasks.RunRecorder
	if err != nil {
		r.logger.Warn("manifest database unavailable, run will not be recorded", "error", err)
	} else {
		defer db.Close()
		recorder = repo
	}

	engine := tasks.NewEngine(r.logger, recorder)
	asJSON := cmd.Bool("json")

	run := func(ctx context.Context) error {
		return r.runExport(ctx, engine, sessionPath, opts, asJSON)
	}

	if err := run(ctx); err != nil {
		return err
	}

	if cmd.Bool("watch") {
		watcher := watch.NewSessionWatcher(sessionPath, watch.DefaultDebounce, r.logger)
		return watcher.Watch(ctx, run)
	}

	return nil
}

// runExport loads the session, drives the engine, and prints the summary.
func (r *Runner) runExport(ctx context.Context, engine *tasks.Engine, sessionPath string, opts tasks.ExportOpts, asJSON bool) error {
	session, err := r.source.Load(ctx, sessionPath)
	if err != nil {
		return err
	}

	r.logger.Info("starting export",
		"session", session.Name,
		"channels", len(session.Channels),
		"mode", opts.Mode(),
	)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.WriteTable:
				r.writePlain("  [%d/%d] %s\n", update.Step, update.Total, update.Message)
			default:
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := engine.Export(ctx, progressCh, session, opts)
	close(progressCh)
	<-done

	if err != nil {
		if errors.Is(err, shared.ErrShapeMismatch) {
			r.logger.Error("session failed validation, nothing was written")
		}
		return err
	}

	if asJSON {
		return r.writeJSON(result, true)
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete")
	r.writePlain("Run: %s\n", result.RunID)
	r.writePlain("Mode: %s\n", result.Mode)
	r.writePlain("Output: %s\n", result.OutputDir)
	r.writePlain("Files written: %d\n", len(result.Files))
	for _, file := range result.Files {
		r.writePlain("  - %s (%d channels)\n", file.Path, file.Channels)
	}
	if len(result.Skipped) > 0 {
		r.writePlain("Skipped species with no channels: %v\n", result.Skipped)
	}
	if result.WorkbookPath != "" {
		r.writePlain("Workbook: %s\n", result.WorkbookPath)
	}

	return nil
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export per-condition HRF tables from a session file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "session",
				Aliases:  []string{"s"},
				Usage:    "Path to the session file (.json, .yaml)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Usage:   "Dataset tag prepended to filenames (defaults to config)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (defaults to config)",
			},
			&cli.BoolFlag{
				Name:  "legacy",
				Usage: "Flat per-species export instead of the grouped per-condition tree",
			},
			&cli.BoolFlag{
				Name:  "xlsx",
				Usage: "Also write an xlsx workbook with one sheet per table",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the run result as JSON",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep running and re-export when the session file changes",
			},
		},
		Action: r.Export,
	}
}
