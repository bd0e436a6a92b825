// pkg/model/cleaning.go
package model

import (
	"time"
)

// CleaningOperation represents a single data cleaning operation applied
// to one cell (or one whole row, for removals) during a pipeline run.
type CleaningOperation struct {
	RunID             string // Pipeline run identifier
	ColumnName        string // Column that was cleaned ("*" for row removals)
	OriginalValue     Value  // Original value (may be null)
	NewValue          Value  // New value after cleaning
	RowIdentifier     string // app_id of the affected row
	CleaningOperation string // Type of cleaning performed (e.g., "date_normalization")
	CleaningReason    string // Reason for cleaning (e.g., "unparseable_date")
	CleanedAt         time.Time
}

// StepReport summarizes what one cleaning step did.
type StepReport struct {
	Step       string
	RowsIn     int
	RowsOut    int
	Corrected  int // cells mutated or rows removed
	Flagged    int // rows annotated without mutation
	Operations []CleaningOperation
}

// PipelineSummary aggregates the whole cleaning run.
type PipelineSummary struct {
	RunID       string
	RowsIn      int
	RowsOut     int
	RowsRemoved int
	Operations  int
	StartTime   time.Time
	EndTime     time.Time
	Steps       []StepReport
}

// Duration returns the total pipeline run time.
func (s *PipelineSummary) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
