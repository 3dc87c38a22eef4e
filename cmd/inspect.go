package main

import (
	"context"

	"github.com/desertthunder/hrfx/internal/classifier"
	"github.com/desertthunder/hrfx/internal/models"
	"github.com/desertthunder/hrfx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// inspectReport is the JSON shape of the inspect command's output.
type inspectReport struct {
	Session    string              `json:"session"`
	Channels   int                 `json:"channels"`
	Timepoints int                 `json:"timepoints"`
	Conditions []int               `json:"conditions"`
	Unmatched  []string            `json:"unmatched,omitempty"`
	Plan       []models.ExportTask `json:"plan"`
}

// Inspect loads a session and previews its export plan without writing anything.
func (r *Runner) Inspect(ctx context.Context, cmd *cli.Command) error {
	session, err := r.source.Load(ctx, cmd.String("session"))
	if err != nil {
		return err
	}
	if err := session.Validate(); err != nil {
		return err
	}

	report := inspectReport{
		Session:    session.Name,
		Channels:   len(session.Channels),
		Timepoints: session.Timepoints(),
		Conditions: classifier.Conditions(session.Channels),
	}
	if cmd.Bool("legacy") {
		report.Plan = tasks.PlanBySpecies(session.Channels)
	} else {
		report.Plan = tasks.PlanGrouped(session.Channels)
	}
	for _, ch := range session.Channels {
		if _, ok := classifier.Classify(ch.Label); !ok {
			report.Unmatched = append(report.Unmatched, ch.Label)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, true)
	}

	r.writePlainHeader("Session: " + report.Session)
	r.writePlain("Channels: %d\n", report.Channels)
	r.writePlain("Timepoints: %d\n", report.Timepoints)
	r.writePlain("Conditions: %v\n\n", report.Conditions)

	if len(report.Plan) == 0 {
		r.writePlain("No exportable channels found.\n")
	} else {
		r.writePlain("Export plan (%d tables):\n", len(report.Plan))
		for _, task := range report.Plan {
			r.writePlain("  %s: %d channels %v\n", task.Suffix, task.ChannelCount(), task.Indices)
		}
	}

	if len(report.Unmatched) > 0 {
		r.writePlain("\nUnclassified channels:\n")
		for _, label := range report.Unmatched {
			r.writePlain("  - %s\n", label)
		}
	}

	return nil
}

func inspectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Preview a session's channels and export plan",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "session",
				Aliases:  []string{"s"},
				Usage:    "Path to the session file (.json, .yaml)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "legacy",
				Usage: "Preview the flat per-species plan instead of the grouped plan",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the report as JSON",
			},
		},
		Action: r.Inspect,
	}
}
