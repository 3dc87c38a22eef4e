// package formatter renders planned export tasks into flat tables (CSV, xlsx) and writes them to disk
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/hrfx/internal/models"
	"github.com/desertthunder/hrfx/internal/shared"
	"github.com/xuri/excelize/v2"
)

// BuildHeader returns the column headers for a task with n channels:
// ts_ch1..ts_chN followed by std_ch1..std_chN. Numbering is task-local,
// not the original matrix column index.
func BuildHeader(n int) []string {
	headers := make([]string, 0, 2*n)
	for i := 1; i <= n; i++ {
		headers = append(headers, fmt.Sprintf("ts_ch%d", i))
	}
	for i := 1; i <= n; i++ {
		headers = append(headers, fmt.Sprintf("std_ch%d", i))
	}
	return headers
}

// RenderTable renders one task's table: the signal columns selected by the
// task's 1-based indices, then the matching variability columns, one row per
// timepoint. Values carry exactly six digits after the decimal point; every
// line ends with a newline and there is no trailing blank line.
func RenderTable(task models.ExportTask, signal, variability models.Matrix) ([]byte, error) {
	for _, idx := range task.Indices {
		if idx < 1 || idx > signal.Cols() || idx > variability.Cols() {
			return nil, fmt.Errorf("%w: task %q references column %d of %d", shared.ErrShapeMismatch, task.Suffix, idx, signal.Cols())
		}
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(BuildHeader(task.ChannelCount()), ","))
	buf.WriteByte('\n')

	for r := 0; r < signal.Rows(); r++ {
		for i, idx := range task.Indices {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatFloat(signal[r][idx-1], 'f', 6, 64))
		}
		for _, idx := range task.Indices {
			buf.WriteByte(',')
			buf.WriteString(strconv.FormatFloat(variability[r][idx-1], 'f', 6, 64))
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

// TableFilename returns the canonical table filename for a prefix and task suffix.
func TableFilename(prefix, suffix string) string {
	return fmt.Sprintf("%s_hrf_%s.csv", prefix, suffix)
}

// SpeciesDir extracts the species subdirectory name from a task suffix:
// the final underscore-delimited segment ("stim1_hbo" -> "hbo", "hbo" -> "hbo").
func SpeciesDir(suffix string) string {
	parts := strings.Split(suffix, "_")
	return parts[len(parts)-1]
}

// WriteTableExport renders a task against the session matrices and writes it
// to destDir, creating the directory if needed. Returns the written path.
//
// A failure to create the directory or write the file is fatal to the run;
// the returned error names the destination path.
func WriteTableExport(task models.ExportTask, session *models.Session, destDir, prefix string) (string, error) {
	data, err := RenderTable(task, session.Signal, session.Variability)
	if err != nil {
		return "", fmt.Errorf("failed to render table %s: %w", task.Suffix, err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	path := filepath.Join(destDir, TableFilename(prefix, task.Suffix))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write table %s: %w", path, err)
	}

	return path, nil
}

// WriteWorkbookExport writes an xlsx workbook mirroring the CSV tables, one
// sheet per task named by the task suffix, same headers and column order.
func WriteWorkbookExport(tasks []models.ExportTask, session *models.Session, path string) error {
	if len(tasks) == 0 {
		return fmt.Errorf("%w: no tasks to write", shared.ErrNoChannels)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, task := range tasks {
		name := task.Suffix
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		headers := BuildHeader(task.ChannelCount())
		headerRow := make([]any, len(headers))
		for j, h := range headers {
			headerRow[j] = h
		}
		if err := f.SetSheetRow(name, "A1", &headerRow); err != nil {
			return fmt.Errorf("failed to write header row on %s: %w", name, err)
		}

		for r := 0; r < session.Signal.Rows(); r++ {
			row := make([]any, 0, 2*task.ChannelCount())
			for _, idx := range task.Indices {
				row = append(row, session.Signal[r][idx-1])
			}
			for _, idx := range task.Indices {
				row = append(row, session.Variability[r][idx-1])
			}

			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell for row %d: %w", r, err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d on %s: %w", r, name, err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}

	return nil
}

// WriteRunManifest writes a pretty-printed JSON summary of an export run.
func WriteRunManifest(result any, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}
