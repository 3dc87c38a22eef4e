// package models defines the data model for the HRF table export tool
package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/hrfx/internal/shared"
)

// Model defines the base interface for all persistent models in the export tool.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error     // Create inserts a new model into the database
	Get(id string) (T, error) // Get retrieves a model by its ID
	List(limit int) ([]T, error)
}

// Species identifies one of the three hemoglobin signal types derived per optical channel.
type Species int

const (
	HbO Species = iota // oxygenated hemoglobin
	HbR                // deoxygenated hemoglobin
	HbT                // total hemoglobin
)

// SpeciesOrder is the canonical iteration order for classification and planning.
// Both the classifier and the planner consume this constant; never re-derive the order.
var SpeciesOrder = [3]Species{HbO, HbR, HbT}

// Display returns the mixed-case name used in channel labels, e.g. "HbO".
func (s Species) Display() string {
	switch s {
	case HbO:
		return "HbO"
	case HbR:
		return "HbR"
	case HbT:
		return "HbT"
	default:
		return ""
	}
}

// Code returns the lowercase species code used in filenames and directories, e.g. "hbo".
func (s Species) Code() string {
	switch s {
	case HbO:
		return "hbo"
	case HbR:
		return "hbr"
	case HbT:
		return "hbt"
	default:
		return ""
	}
}

// Marker returns the label fragment identifying this species in a channel descriptor,
// e.g. "HRF HbO". Matching against it is case-insensitive.
func (s Species) Marker() string {
	return "HRF " + s.Display()
}

func (s Species) String() string {
	return s.Code()
}

// ParseSpecies maps a lowercase species code back to its Species value.
func ParseSpecies(code string) (Species, error) {
	for _, sp := range SpeciesOrder {
		if sp.Code() == code {
			return sp, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown species code %q", shared.ErrInvalidInput, code)
}

// Channel describes one measurement channel of a session result.
//
// The channel's position in the session slice is its 1-based column index
// into both the signal and variability matrices.
type Channel struct {
	Label     string `json:"label" yaml:"label"`         // free-text data type label, e.g. "HRF HbO Conc"
	Condition int    `json:"condition" yaml:"condition"` // stimulus/condition index this HRF epoch belongs to
}

// Matrix is a row-major time-by-channel matrix of float64 samples.
type Matrix [][]float64

// Rows returns the number of timepoints.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the channel count, taken from the first row.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Rectangular reports whether every row has the same length.
func (m Matrix) Rectangular() bool {
	for _, row := range m {
		if len(row) != m.Cols() {
			return false
		}
	}
	return true
}

// ShapeError reports a disagreement between the dimensions of the session's
// matrices and its channel descriptors. It wraps [shared.ErrShapeMismatch].
type ShapeError struct {
	Field string // which dimension disagrees
	Got   int
	Want  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: %s is %d, want %d", shared.ErrShapeMismatch, e.Field, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return shared.ErrShapeMismatch
}

// Session is a loaded fNIRS session result: ordered channel descriptors plus
// the two parallel time-by-channel matrices they index into.
type Session struct {
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"`
	Channels    []Channel `json:"channels" yaml:"channels"`
	Signal      Matrix    `json:"signal" yaml:"signal"`
	Variability Matrix    `json:"variability" yaml:"variability"`
}

// Timepoints returns the row count shared by both matrices.
func (s *Session) Timepoints() int {
	return s.Signal.Rows()
}

// Validate enforces the shape preconditions before any export work happens:
// both matrices rectangular, column counts equal to the descriptor count,
// and row counts equal to each other.
func (s *Session) Validate() error {
	if !s.Signal.Rectangular() {
		return &ShapeError{Field: "signal row width", Got: -1, Want: s.Signal.Cols()}
	}
	if !s.Variability.Rectangular() {
		return &ShapeError{Field: "variability row width", Got: -1, Want: s.Variability.Cols()}
	}
	if got, want := s.Signal.Cols(), len(s.Channels); got != want {
		return &ShapeError{Field: "signal columns", Got: got, Want: want}
	}
	if got, want := s.Variability.Cols(), len(s.Channels); got != want {
		return &ShapeError{Field: "variability columns", Got: got, Want: want}
	}
	if got, want := s.Variability.Rows(), s.Signal.Rows(); got != want {
		return &ShapeError{Field: "variability rows", Got: got, Want: want}
	}
	return nil
}

// ExportTask is one planned table export: the 1-based matrix columns it
// covers, the canonical name suffix, and the species/condition it was
// bucketed under. Tasks are immutable and consumed exactly once.
type ExportTask struct {
	Indices   []int   `json:"indices"` // 1-based, strictly increasing
	Suffix    string  `json:"suffix"`  // e.g. "stim1_hbo" or "hbo"
	Species   Species `json:"-"`
	Condition int     `json:"condition,omitempty"` // 0 when planned without condition grouping
}

// ChannelCount returns the number of channels the task covers.
func (t ExportTask) ChannelCount() int {
	return len(t.Indices)
}

// ExportedFile records one written table for the run manifest.
type ExportedFile struct {
	Path      string `json:"path"`
	Suffix    string `json:"suffix"`
	Species   string `json:"species"`
	Condition int    `json:"condition,omitempty"`
	Channels  int    `json:"channels"`
	Rows      int    `json:"rows"`
}
