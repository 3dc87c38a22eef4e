package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/hrfx/internal/shared"
	"github.com/desertthunder/hrfx/internal/tasks"
	tu "github.com/desertthunder/hrfx/internal/testing"
	"github.com/urfave/cli/v3"
)

func writeSessionFile(t *testing.T, dir string) string {
	t.Helper()

	session := tu.NewSession(
		[]string{"HRF HbO Conc", "HRF HbR Conc", "HRF HbO Conc"},
		[]int{1, 1, 2},
		4,
	)
	data, err := json.Marshal(session)
	if err != nil {
		t.Fatalf("failed to marshal session: %v", err)
	}

	path := filepath.Join(dir, "session.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write session file: %v", err)
	}
	return path
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "config.toml",
				Logger:     logger,
				Output:     output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.configPath != "config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if runner.source == nil {
				t.Error("expected default source to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 5 {
			t.Errorf("expected 5 commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		for _, want := range []string{"setup", "export", "inspect", "runs", "tui"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writeJSON(map[string]int{"files": 3}, false); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if got := output.String(); got != "{\"files\":3}\n" {
			t.Errorf("unexpected output: %q", got)
		}
	})
}

func TestRunExport(t *testing.T) {
	t.Run("grouped export writes tree and summary", func(t *testing.T) {
		dir := t.TempDir()
		sessionPath := writeSessionFile(t, dir)
		outputDir := filepath.Join(dir, "exports")

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Logger: shared.NewLogger(io.Discard),
			Output: output,
		})
		engine := tasks.NewEngine(shared.NewLogger(io.Discard), nil)

		opts := tasks.ExportOpts{
			Prefix:      "before",
			OutputDir:   outputDir,
			Grouped:     true,
			SessionPath: sessionPath,
		}
		if err := runner.runExport(context.Background(), engine, sessionPath, opts, false); err != nil {
			t.Fatalf("runExport failed: %v", err)
		}

		for _, rel := range []string{
			filepath.Join("hbo", "before_hrf_stim1_hbo.csv"),
			filepath.Join("hbr", "before_hrf_stim1_hbr.csv"),
			filepath.Join("hbo", "before_hrf_stim2_hbo.csv"),
		} {
			if _, err := os.Stat(filepath.Join(outputDir, rel)); err != nil {
				t.Errorf("expected %s to exist: %v", rel, err)
			}
		}

		summary := output.String()
		if !strings.Contains(summary, "Export Complete") {
			t.Errorf("expected completion banner, got:\n%s", summary)
		}
		if !strings.Contains(summary, "Files written: 3") {
			t.Errorf("expected file count in summary, got:\n%s", summary)
		}
	})

	t.Run("json output is an export result", func(t *testing.T) {
		dir := t.TempDir()
		sessionPath := writeSessionFile(t, dir)

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Logger: shared.NewLogger(io.Discard),
			Output: output,
		})
		engine := tasks.NewEngine(shared.NewLogger(io.Discard), nil)

		opts := tasks.ExportOpts{
			Prefix:      "before",
			OutputDir:   filepath.Join(dir, "exports"),
			Grouped:     true,
			SessionPath: sessionPath,
		}
		if err := runner.runExport(context.Background(), engine, sessionPath, opts, true); err != nil {
			t.Fatalf("runExport failed: %v", err)
		}

		// The progress lines precede the JSON document; decode from the
		// first brace.
		raw := output.String()
		idx := strings.Index(raw, "{")
		if idx < 0 {
			t.Fatalf("no JSON in output:\n%s", raw)
		}

		var result tasks.ExportResult
		if err := json.Unmarshal([]byte(raw[idx:]), &result); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		if result.Mode != "grouped" || len(result.Files) != 3 {
			t.Errorf("unexpected result: mode=%s files=%d", result.Mode, len(result.Files))
		}
	})

	t.Run("missing session file surfaces load error", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Logger: shared.NewLogger(io.Discard),
			Output: &bytes.Buffer{},
		})
		engine := tasks.NewEngine(shared.NewLogger(io.Discard), nil)

		opts := tasks.ExportOpts{Prefix: "before", OutputDir: t.TempDir(), Grouped: true}
		err := runner.runExport(context.Background(), engine, "missing.json", opts, false)
		if err == nil {
			t.Fatal("expected error for missing session file")
		}
	})
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	sessionPath := writeSessionFile(t, dir)

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Logger: shared.NewLogger(io.Discard),
		Output: output,
	})

	app := &cli.Command{Name: "hrfx", Commands: runner.register()}
	args := []string{"hrfx", "inspect", "--session", sessionPath, "--json"}
	if err := app.Run(context.Background(), args); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	var report inspectReport
	if err := json.Unmarshal(output.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}

	if report.Channels != 3 || report.Timepoints != 4 {
		t.Errorf("unexpected dimensions: channels=%d timepoints=%d", report.Channels, report.Timepoints)
	}
	if len(report.Conditions) != 2 {
		t.Errorf("expected 2 conditions, got %v", report.Conditions)
	}
	if len(report.Plan) != 3 {
		t.Errorf("expected 3 planned tables, got %d", len(report.Plan))
	}
}
