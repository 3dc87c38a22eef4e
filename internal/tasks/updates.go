package tasks

import (
	"fmt"

	"github.com/desertthunder/hrfx/internal/models"
)

// ProgressUpdate represents a progress event during an export run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ValidateSession Phase = iota
	PlanTasks
	WriteTable
	WriteWorkbook
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case ValidateSession:
		return "validate_session"
	case PlanTasks:
		return "plan_tasks"
	case WriteTable:
		return "write_table"
	case WriteWorkbook:
		return "write_workbook"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func validatingUpdate(channels, timepoints int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateSession,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Validating session (%d channels, %d timepoints)...", channels, timepoints),
	}
}

func plannedUpdate(tasks []models.ExportTask) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PlanTasks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Planned %d export tasks", len(tasks)),
		Data:    tasks,
	}
}

func writingTableUpdate(step, total int, task models.ExportTask) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteTable,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Writing %s (%d channels)...", task.Suffix, task.ChannelCount()),
		Data:    task,
	}
}

func wroteTableUpdate(step, total int, file models.ExportedFile) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteTable,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Wrote %s", file.Path),
		Data:    file,
	}
}

func workbookUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteWorkbook,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing workbook %s...", path),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest %s...", path),
	}
}
