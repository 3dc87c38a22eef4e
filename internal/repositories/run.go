package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/hrfx/internal/models"
	"github.com/desertthunder/hrfx/internal/shared"
)

// RunRepository implements models.Repository[*models.ExportRun] for the run manifest store.
//
// Also satisfies tasks.RunRecorder so the export engine can persist runs directly.
type RunRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.ExportRun] = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new export run into the database with generated ID and sequence
func (r *RunRepository) Create(run *models.ExportRun) error {
	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	run.SetID(id)
	run.SetSequence(sequence)

	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO runs (id, sequence, prefix, mode, session_path, output_dir, task_count, file_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		run.Prefix(),
		run.Mode(),
		run.SessionPath(),
		run.OutputDir(),
		run.TaskCount(),
		run.FileCount(),
		run.CreatedAt(),
		run.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// Get retrieves an export run by ID
func (r *RunRepository) Get(id string) (*models.ExportRun, error) {
	query := `
		SELECT id, sequence, prefix, mode, session_path, output_dir, task_count, file_count, created_at, updated_at
		FROM runs
		WHERE id = ?
	`

	run, err := scanRun(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// List retrieves export runs ordered most recent first. A non-positive limit returns all runs.
func (r *RunRepository) List(limit int) ([]*models.ExportRun, error) {
	query := `
		SELECT id, sequence, prefix, mode, session_path, output_dir, task_count, file_count, created_at, updated_at
		FROM runs
		ORDER BY sequence DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ExportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Files retrieves the file records attached to a run, in insertion order.
func (r *RunRepository) Files(runID string) ([]models.ExportedFile, error) {
	query := `
		SELECT path, suffix, species, condition_index, channels, rows
		FROM run_files
		WHERE run_id = ?
		ORDER BY rowid
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run files: %w", err)
	}
	defer rows.Close()

	var files []models.ExportedFile
	for rows.Next() {
		var f models.ExportedFile
		if err := rows.Scan(&f.Path, &f.Suffix, &f.Species, &f.Condition, &f.Channels, &f.Rows); err != nil {
			return nil, fmt.Errorf("failed to scan run file: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// RecordRun persists a run and its file records in one call; implements tasks.RunRecorder.
func (r *RunRepository) RecordRun(run *models.ExportRun, files []models.ExportedFile) error {
	if err := r.Create(run); err != nil {
		return err
	}

	query := `
		INSERT INTO run_files (id, run_id, path, suffix, species, condition_index, channels, rows, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, f := range files {
		_, err := r.db.Exec(query,
			shared.GenerateID(),
			run.ID(),
			f.Path,
			f.Suffix,
			f.Species,
			f.Condition,
			f.Channels,
			f.Rows,
			time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert run file: %w", err)
		}
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.ExportRun, error) {
	var (
		id, prefix, mode, sessionPath, outputDir string
		sequence, taskCount, fileCount           int
		createdAt, updatedAt                     time.Time
	)

	if err := s.Scan(&id, &sequence, &prefix, &mode, &sessionPath, &outputDir, &taskCount, &fileCount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return models.HydrateExportRun(id, sequence, prefix, mode, sessionPath, outputDir, taskCount, fileCount, createdAt, updatedAt), nil
}
