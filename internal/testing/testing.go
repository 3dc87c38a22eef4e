// package testing contains shared testing utilities
package testing

import (
	"errors"

	"github.com/desertthunder/hrfx/internal/models"
)

// NewSession builds a deterministic session fixture: channel i (0-based) has
// the given label and condition, signal[r][c] = r*C + c + 1, and variability
// is signal divided by ten.
func NewSession(labels []string, conditions []int, rows int) *models.Session {
	cols := len(labels)

	channels := make([]models.Channel, cols)
	for i, label := range labels {
		cond := 1
		if i < len(conditions) {
			cond = conditions[i]
		}
		channels[i] = models.Channel{Label: label, Condition: cond}
	}

	signal := make(models.Matrix, rows)
	variability := make(models.Matrix, rows)
	for r := 0; r < rows; r++ {
		signal[r] = make([]float64, cols)
		variability[r] = make([]float64, cols)
		for c := 0; c < cols; c++ {
			v := float64(r*cols + c + 1)
			signal[r][c] = v
			variability[r][c] = v / 10
		}
	}

	return &models.Session{
		Name:        "fixture",
		Channels:    channels,
		Signal:      signal,
		Variability: variability,
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRecorder captures recorded runs for assertions.
type MockRecorder struct {
	Runs  []*models.ExportRun
	Files [][]models.ExportedFile
	Err   error // returned from RecordRun when set
}

func (m *MockRecorder) RecordRun(run *models.ExportRun, files []models.ExportedFile) error {
	if m.Err != nil {
		return m.Err
	}
	run.SetID("run-" + run.Prefix())
	m.Runs = append(m.Runs, run)
	m.Files = append(m.Files, files)
	return nil
}
