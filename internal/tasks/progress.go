package tasks

import (
	"fmt"

	"github.com/patrick-utz/sonorium/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
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
	ScanRecords Phase = iota
	CheckCover
	Summarize
)

func (p Phase) String() string {
	switch p {
	case ScanRecords:
		return "scan_records"
	case CheckCover:
		return "check_cover"
	case Summarize:
		return "summarize"
	default:
		return ""
	}
}

func scanRecordsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanRecords,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Checking covers for %d records...", total),
	}
}

func checkCoverUpdate(step, total int, rec models.Record) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CheckCover,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Checking cover for %s...", rec.Label()),
	}
}

func summarizeUpdate(report *CoverReport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Summarize,
		Step:    report.Total,
		Total:   report.Total,
		Message: fmt.Sprintf("Done: %d ok, %d missing, %d failed", report.OKCount, report.MissingCount, report.FailedCount),
		Data:    report,
	}
}

// sendProgress reports an update without blocking callers that did not ask
// for progress.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress != nil {
		progress <- update
	}
}
