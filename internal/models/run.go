package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/hrfx/internal/shared"
)

// Run modes recorded in the manifest database.
const (
	ModeGrouped = "grouped"
	ModeLegacy  = "legacy"
)

// ExportRun is the persisted record of one export invocation.
type ExportRun struct {
	id          string
	sequence    int
	prefix      string
	mode        string
	sessionPath string
	outputDir   string
	taskCount   int
	fileCount   int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewExportRun creates an unpersisted ExportRun; the repository assigns ID and sequence on Create.
func NewExportRun(prefix, mode, sessionPath, outputDir string, taskCount, fileCount int) *ExportRun {
	now := time.Now().UTC()
	return &ExportRun{
		prefix:      prefix,
		mode:        mode,
		sessionPath: sessionPath,
		outputDir:   outputDir,
		taskCount:   taskCount,
		fileCount:   fileCount,
		createdAt:   now,
		updatedAt:   now,
	}
}

// HydrateExportRun reconstructs an ExportRun from database columns.
func HydrateExportRun(id string, sequence int, prefix, mode, sessionPath, outputDir string, taskCount, fileCount int, createdAt, updatedAt time.Time) *ExportRun {
	return &ExportRun{
		id:          id,
		sequence:    sequence,
		prefix:      prefix,
		mode:        mode,
		sessionPath: sessionPath,
		outputDir:   outputDir,
		taskCount:   taskCount,
		fileCount:   fileCount,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *ExportRun) ID() string           { return r.id }
func (r *ExportRun) Sequence() int        { return r.sequence }
func (r *ExportRun) Prefix() string       { return r.prefix }
func (r *ExportRun) Mode() string         { return r.mode }
func (r *ExportRun) SessionPath() string  { return r.sessionPath }
func (r *ExportRun) OutputDir() string    { return r.outputDir }
func (r *ExportRun) TaskCount() int       { return r.taskCount }
func (r *ExportRun) FileCount() int       { return r.fileCount }
func (r *ExportRun) CreatedAt() time.Time { return r.createdAt }
func (r *ExportRun) UpdatedAt() time.Time { return r.updatedAt }

// SetID assigns the run's identifier; called by the repository during Create.
func (r *ExportRun) SetID(id string) { r.id = id }

// SetSequence assigns the run's sequence number; called by the repository during Create.
func (r *ExportRun) SetSequence(seq int) { r.sequence = seq }

// Validate checks the run's data before persistence.
func (r *ExportRun) Validate() error {
	if r.prefix == "" {
		return fmt.Errorf("%w: run prefix is required", shared.ErrInvalidInput)
	}
	if r.mode != ModeGrouped && r.mode != ModeLegacy {
		return fmt.Errorf("%w: run mode must be %q or %q, got %q", shared.ErrInvalidInput, ModeGrouped, ModeLegacy, r.mode)
	}
	if r.taskCount < 0 || r.fileCount < 0 {
		return fmt.Errorf("%w: run counts must be non-negative", shared.ErrInvalidInput)
	}
	return nil
}
