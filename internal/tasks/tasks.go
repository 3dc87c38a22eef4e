package tasks

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/hrfx/internal/classifier"
	"github.com/desertthunder/hrfx/internal/formatter"
	"github.com/desertthunder/hrfx/internal/models"
	"github.com/desertthunder/hrfx/internal/shared"
)

// PlanGrouped builds the grouped-mode task list: ascending condition indices
// crossed with the canonical species order, skipping empty buckets. Suffixes
// follow the "stim<condition>_<code>" convention.
func PlanGrouped(channels []models.Channel) []models.ExportTask {
	buckets := classifier.Partition(channels)

	var plan []models.ExportTask
	for _, cond := range classifier.Conditions(channels) {
		for _, sp := range models.SpeciesOrder {
			indices := buckets[classifier.Key{Condition: cond, Species: sp}]
			if len(indices) == 0 {
				continue
			}
			plan = append(plan, models.ExportTask{
				Indices:   indices,
				Suffix:    fmt.Sprintf("stim%d_%s", cond, sp.Code()),
				Species:   sp,
				Condition: cond,
			})
		}
	}

	return plan
}

// PlanBySpecies builds the legacy task list: canonical species order only,
// conditions ignored, skipping empty buckets. Suffixes are the bare species codes.
func PlanBySpecies(channels []models.Channel) []models.ExportTask {
	buckets := classifier.PartitionBySpecies(channels)

	var plan []models.ExportTask
	for _, sp := range models.SpeciesOrder {
		indices := buckets[sp]
		if len(indices) == 0 {
			continue
		}
		plan = append(plan, models.ExportTask{
			Indices: indices,
			Suffix:  sp.Code(),
			Species: sp,
		})
	}

	return plan
}

// RunRecorder persists a completed run and its files to the manifest store.
type RunRecorder interface {
	RecordRun(run *models.ExportRun, files []models.ExportedFile) error
}

// ExportOpts contains configuration for one export run.
type ExportOpts struct {
	Prefix      string // dataset tag prepended to filenames, e.g. "before"
	OutputDir   string // grouped: root of the per-species tree; legacy: flat destination
	Grouped     bool   // partition by (condition, species) rather than species alone
	Workbook    bool   // also write an xlsx workbook mirroring the tables
	SessionPath string // recorded in the manifest, not read by the engine
}

// Mode returns the manifest mode string for these options.
func (o ExportOpts) Mode() string {
	if o.Grouped {
		return models.ModeGrouped
	}
	return models.ModeLegacy
}

// ExportResult contains everything one export run produced.
type ExportResult struct {
	RunID        string                `json:"run_id"`
	Prefix       string                `json:"prefix"`
	Mode         string                `json:"mode"`
	SessionPath  string                `json:"session_path,omitempty"`
	OutputDir    string                `json:"output_dir"`
	Tasks        []models.ExportTask   `json:"tasks"`
	Files        []models.ExportedFile `json:"files"`
	Skipped      []string              `json:"skipped,omitempty"`
	WorkbookPath string                `json:"workbook_path,omitempty"`
	ManifestPath string                `json:"manifest_path,omitempty"`
}

// Engine executes export runs against loaded sessions.
//
// The recorder is optional; a nil recorder disables manifest persistence.
type Engine struct {
	logger   *log.Logger
	recorder RunRecorder
}

// NewEngine creates an Engine with the provided logger and optional recorder.
func NewEngine(logger *log.Logger, recorder RunRecorder) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{logger: logger, recorder: recorder}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Export runs the full pipeline for one session: validate, plan, write each
// table sequentially in plan order, then write the manifest and record the run.
//
// An empty plan is not an error; the result carries zero files. The first
// table write failure aborts the run and surfaces the destination path.
func (e *Engine) Export(ctx context.Context, progress chan<- ProgressUpdate, session *models.Session, opts ExportOpts) (*ExportResult, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: no session loaded", shared.ErrInvalidSession)
	}
	if opts.Prefix == "" {
		return nil, fmt.Errorf("%w: export prefix is required", shared.ErrMissingArgument)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	e.sendProgress(progress, validatingUpdate(len(session.Channels), session.Timepoints()))
	if err := session.Validate(); err != nil {
		return nil, err
	}

	result := &ExportResult{
		RunID:       shared.GenerateID(),
		Prefix:      opts.Prefix,
		Mode:        opts.Mode(),
		SessionPath: opts.SessionPath,
		OutputDir:   opts.OutputDir,
	}

	if opts.Grouped {
		result.Tasks = PlanGrouped(session.Channels)
	} else {
		result.Tasks = PlanBySpecies(session.Channels)
		for _, sp := range models.SpeciesOrder {
			if !planContains(result.Tasks, sp) {
				e.logger.Info("no channels for species, skipping", "species", sp.Code())
				result.Skipped = append(result.Skipped, sp.Code())
			}
		}
	}
	e.sendProgress(progress, plannedUpdate(result.Tasks))

	if len(result.Tasks) == 0 {
		e.logger.Warn("no channels found matching any condition/species combination")
		e.record(result)
		return result, nil
	}

	for i, task := range result.Tasks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		e.sendProgress(progress, writingTableUpdate(i+1, len(result.Tasks), task))

		destDir := opts.OutputDir
		if opts.Grouped {
			destDir = filepath.Join(opts.OutputDir, formatter.SpeciesDir(task.Suffix))
		}

		path, err := formatter.WriteTableExport(task, session, destDir, opts.Prefix)
		if err != nil {
			return result, fmt.Errorf("%w: %v", shared.ErrExportFailed, err)
		}

		file := models.ExportedFile{
			Path:      path,
			Suffix:    task.Suffix,
			Species:   task.Species.Code(),
			Condition: task.Condition,
			Channels:  task.ChannelCount(),
			Rows:      session.Timepoints(),
		}
		result.Files = append(result.Files, file)
		e.sendProgress(progress, wroteTableUpdate(i+1, len(result.Tasks), file))
	}

	if opts.Workbook {
		workbookPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_hrf_tables.xlsx", opts.Prefix))
		e.sendProgress(progress, workbookUpdate(workbookPath))
		if err := formatter.WriteWorkbookExport(result.Tasks, session, workbookPath); err != nil {
			e.logger.Warn("export completed but failed to write workbook", "error", err)
		} else {
			result.WorkbookPath = workbookPath
		}
	}

	e.record(result)

	manifestPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_export_manifest.json", opts.Prefix))
	e.sendProgress(progress, manifestUpdate(manifestPath))
	if err := formatter.WriteRunManifest(result, manifestPath); err != nil {
		e.logger.Warn("export completed but failed to write manifest", "error", err)
	} else {
		result.ManifestPath = manifestPath
	}

	return result, nil
}

// record persists the run through the recorder; failures are logged, never fatal.
func (e *Engine) record(result *ExportResult) {
	if e.recorder == nil {
		return
	}

	run := models.NewExportRun(
		result.Prefix,
		result.Mode,
		result.SessionPath,
		result.OutputDir,
		len(result.Tasks),
		len(result.Files),
	)
	if err := e.recorder.RecordRun(run, result.Files); err != nil {
		e.logger.Warn("failed to record export run", "error", err)
		return
	}
	result.RunID = run.ID()
}

func planContains(plan []models.ExportTask, sp models.Species) bool {
	for _, task := range plan {
		if task.Species == sp {
			return true
		}
	}
	return false
}
