package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/hrfx/internal/models"
	"github.com/urfave/cli/v3"
)

// runSummary is the JSON shape of a recorded run in list/show output.
type runSummary struct {
	ID          string                `json:"id"`
	Sequence    int                   `json:"sequence"`
	Prefix      string                `json:"prefix"`
	Mode        string                `json:"mode"`
	SessionPath string                `json:"session_path"`
	OutputDir   string                `json:"output_dir"`
	TaskCount   int                   `json:"task_count"`
	FileCount   int                   `json:"file_count"`
	CreatedAt   string                `json:"created_at"`
	Files       []models.ExportedFile `json:"files,omitempty"`
}

func summarize(run *models.ExportRun) runSummary {
	return runSummary{
		ID:          run.ID(),
		Sequence:    run.Sequence(),
		Prefix:      run.Prefix(),
		Mode:        run.Mode(),
		SessionPath: run.SessionPath(),
		OutputDir:   run.OutputDir(),
		TaskCount:   run.TaskCount(),
		FileCount:   run.FileCount(),
		CreatedAt:   run.CreatedAt().Format("2006-01-02 15:04:05"),
	}
}

// RunsList prints recorded export runs, newest first.
func (r *Runner) RunsList(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := repo.List(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		summaries := make([]runSummary, len(runs))
		for i, run := range runs {
			summaries[i] = summarize(run)
		}
		return r.writeJSON(summaries, true)
	}

	if len(runs) == 0 {
		r.writePlain("No export runs recorded yet. Run 'hrfx export' first.\n")
		return nil
	}

	r.writePlainHeader("Export Runs")
	for _, run := range runs {
		r.writePlain("#%d  %s  %s  %d files  %s  (%s)\n",
			run.Sequence(), run.Prefix(), run.Mode(), run.FileCount(),
			run.CreatedAt().Format("2006-01-02 15:04"), run.ID())
	}

	return nil
}

// RunsShow prints one recorded run and the files it produced.
func (r *Runner) RunsShow(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := repo.Get(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	files, err := repo.Files(run.ID())
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		summary := summarize(run)
		summary.Files = files
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader(fmt.Sprintf("Run #%d (%s)", run.Sequence(), run.ID()))
	r.writePlain("Prefix: %s\n", run.Prefix())
	r.writePlain("Mode: %s\n", run.Mode())
	r.writePlain("Session: %s\n", run.SessionPath())
	r.writePlain("Output: %s\n", run.OutputDir())
	r.writePlain("Recorded: %s\n", run.CreatedAt().Format("2006-01-02 15:04:05"))
	r.writePlain("Files (%d):\n", len(files))
	for _, file := range files {
		r.writePlain("  - %s (%d channels, %d rows)\n", file.Path, file.Channels, file.Rows)
	}

	return nil
}

func runsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Browse recorded export runs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded runs, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of runs to show (0 for all)",
						Value:   20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print runs as JSON",
					},
				},
				Action: r.RunsList,
			},
			{
				Name:      "show",
				Usage:     "Show one run and the files it produced",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the run as JSON",
					},
				},
				Action: r.RunsShow,
			},
		},
	}
}
