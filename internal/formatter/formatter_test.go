package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/hrfx/internal/models"
	"github.com/desertthunder/hrfx/internal/shared"
	"github.com/xuri/excelize/v2"
)

func sampleSession() *models.Session {
	return &models.Session{
		Channels: []models.Channel{
			{Label: "HRF HbO", Condition: 1},
			{Label: "HRF HbR", Condition: 1},
			{Label: "HRF HbO", Condition: 1},
		},
		Signal: models.Matrix{
			{1, 2, 3},
			{4, 5, 6},
		},
		Variability: models.Matrix{
			{0.1, 0.2, 0.3},
			{0.4, 0.5, 0.6},
		},
	}
}

func TestBuildHeader(t *testing.T) {
	tc := []struct {
		n    int
		want string
	}{
		{1, "ts_ch1,std_ch1"},
		{2, "ts_ch1,ts_ch2,std_ch1,std_ch2"},
		{3, "ts_ch1,ts_ch2,ts_ch3,std_ch1,std_ch2,std_ch3"},
	}

	for _, tt := range tc {
		if got := strings.Join(BuildHeader(tt.n), ","); got != tt.want {
			t.Errorf("BuildHeader(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	session := sampleSession()

	t.Run("byte exact output", func(t *testing.T) {
		task := models.ExportTask{Indices: []int{1, 3}, Suffix: "hbo", Species: models.HbO}

		data, err := RenderTable(task, session.Signal, session.Variability)
		if err != nil {
			t.Fatalf("RenderTable failed: %v", err)
		}

		want := "ts_ch1,ts_ch2,std_ch1,std_ch2\n" +
			"1.000000,3.000000,0.100000,0.300000\n" +
			"4.000000,6.000000,0.400000,0.600000\n"
		if string(data) != want {
			t.Errorf("RenderTable output:\n%q\nwant:\n%q", string(data), want)
		}
	})

	t.Run("single channel", func(t *testing.T) {
		task := models.ExportTask{Indices: []int{2}, Suffix: "hbr", Species: models.HbR}

		data, err := RenderTable(task, session.Signal, session.Variability)
		if err != nil {
			t.Fatalf("RenderTable failed: %v", err)
		}

		want := "ts_ch1,std_ch1\n" +
			"2.000000,0.200000\n" +
			"5.000000,0.500000\n"
		if string(data) != want {
			t.Errorf("RenderTable output:\n%q\nwant:\n%q", string(data), want)
		}
	})

	t.Run("header numbering is task local", func(t *testing.T) {
		task := models.ExportTask{Indices: []int{3}, Suffix: "hbo"}

		data, err := RenderTable(task, session.Signal, session.Variability)
		if err != nil {
			t.Fatalf("RenderTable failed: %v", err)
		}

		header := strings.SplitN(string(data), "\n", 2)[0]
		if header != "ts_ch1,std_ch1" {
			t.Errorf("header = %s, want task-local ts_ch1,std_ch1", header)
		}
	})

	t.Run("negative values keep six decimals", func(t *testing.T) {
		signal := models.Matrix{{-4.5e-05}}
		variability := models.Matrix{{0.0000125}}
		task := models.ExportTask{Indices: []int{1}, Suffix: "hbo"}

		data, err := RenderTable(task, signal, variability)
		if err != nil {
			t.Fatalf("RenderTable failed: %v", err)
		}

		want := "ts_ch1,std_ch1\n-0.000045,0.000013\n"
		if string(data) != want {
			t.Errorf("RenderTable output %q, want %q", string(data), want)
		}
	})

	t.Run("out of range index", func(t *testing.T) {
		task := models.ExportTask{Indices: []int{4}, Suffix: "hbo"}

		_, err := RenderTable(task, session.Signal, session.Variability)
		if !errors.Is(err, shared.ErrShapeMismatch) {
			t.Errorf("expected ErrShapeMismatch, got %v", err)
		}
	})

	t.Run("no data rows", func(t *testing.T) {
		task := models.ExportTask{Indices: []int{1}, Suffix: "hbo"}

		data, err := RenderTable(task, models.Matrix{}, models.Matrix{})
		if !errors.Is(err, shared.ErrShapeMismatch) {
			// Empty matrices have zero columns, so index 1 is out of range.
			t.Errorf("expected ErrShapeMismatch, got %v (%q)", err, string(data))
		}
	})
}

func TestSpeciesDir(t *testing.T) {
	tc := []struct {
		suffix string
		want   string
	}{
		{"stim1_hbo", "hbo"},
		{"stim12_hbt", "hbt"},
		{"hbr", "hbr"},
	}

	for _, tt := range tc {
		if got := SpeciesDir(tt.suffix); got != tt.want {
			t.Errorf("SpeciesDir(%s) = %s, want %s", tt.suffix, got, tt.want)
		}
	}
}

func TestWriteTableExport(t *testing.T) {
	session := sampleSession()

	t.Run("writes file and creates directories", func(t *testing.T) {
		destDir := filepath.Join(t.TempDir(), "exports", "hbo")
		task := models.ExportTask{Indices: []int{1, 3}, Suffix: "stim1_hbo", Species: models.HbO, Condition: 1}

		path, err := WriteTableExport(task, session, destDir, "before")
		if err != nil {
			t.Fatalf("WriteTableExport failed: %v", err)
		}

		if filepath.Base(path) != "before_hrf_stim1_hbo.csv" {
			t.Errorf("unexpected filename %s", filepath.Base(path))
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read exported file: %v", err)
		}
		if !strings.HasPrefix(string(data), "ts_ch1,ts_ch2,std_ch1,std_ch2\n") {
			t.Errorf("exported file missing header: %q", string(data))
		}
		if strings.HasSuffix(string(data), "\n\n") {
			t.Error("exported file has trailing blank line")
		}
	})

	t.Run("second run overwrites without error", func(t *testing.T) {
		destDir := filepath.Join(t.TempDir(), "exports")
		task := models.ExportTask{Indices: []int{2}, Suffix: "hbr", Species: models.HbR}

		if _, err := WriteTableExport(task, session, destDir, "x"); err != nil {
			t.Fatalf("first write failed: %v", err)
		}
		if _, err := WriteTableExport(task, session, destDir, "x"); err != nil {
			t.Fatalf("second write should succeed on existing directory: %v", err)
		}
	})

	t.Run("unwritable destination names the path", func(t *testing.T) {
		tmpDir := t.TempDir()
		// A regular file where the directory should be makes MkdirAll fail.
		blocker := filepath.Join(tmpDir, "blocked")
		if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create blocker file: %v", err)
		}

		task := models.ExportTask{Indices: []int{1}, Suffix: "hbo", Species: models.HbO}
		_, err := WriteTableExport(task, session, blocker, "x")
		if err == nil {
			t.Fatal("expected write failure")
		}
		if !strings.Contains(err.Error(), blocker) {
			t.Errorf("error should name the destination path, got %v", err)
		}
	})
}

func TestWriteWorkbookExport(t *testing.T) {
	session := sampleSession()
	tasks := []models.ExportTask{
		{Indices: []int{1, 3}, Suffix: "stim1_hbo", Species: models.HbO, Condition: 1},
		{Indices: []int{2}, Suffix: "stim1_hbr", Species: models.HbR, Condition: 1},
	}

	t.Run("one sheet per task", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tables.xlsx")

		if err := WriteWorkbookExport(tasks, session, path); err != nil {
			t.Fatalf("WriteWorkbookExport failed: %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("failed to reopen workbook: %v", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) != 2 || sheets[0] != "stim1_hbo" || sheets[1] != "stim1_hbr" {
			t.Errorf("unexpected sheets %v", sheets)
		}

		header, err := f.GetCellValue("stim1_hbo", "A1")
		if err != nil || header != "ts_ch1" {
			t.Errorf("A1 = %q (%v), want ts_ch1", header, err)
		}

		value, err := f.GetCellValue("stim1_hbr", "A2")
		if err != nil || value != "2" {
			t.Errorf("stim1_hbr!A2 = %q (%v), want 2", value, err)
		}
	})

	t.Run("empty task list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tables.xlsx")
		if err := WriteWorkbookExport(nil, session, path); !errors.Is(err, shared.ErrNoChannels) {
			t.Errorf("expected ErrNoChannels, got %v", err)
		}
	})
}

func TestWriteRunManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	manifest := map[string]any{"prefix": "before", "files": 3}

	if err := WriteRunManifest(manifest, path); err != nil {
		t.Fatalf("WriteRunManifest failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	if !strings.Contains(string(data), `"prefix": "before"`) {
		t.Errorf("manifest missing prefix, got %s", string(data))
	}
}
