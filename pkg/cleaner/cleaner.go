// pkg/cleaner/cleaner.go
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/audit"
	"github.com/novacred/credit-ingress/pkg/model"
)

// Pipeline runs the data-quality remediations over a flattened table.
// Steps run in a fixed order; each one either mutates cells, removes
// rows (deduplication only), or fills annotation columns. The pipeline
// itself performs no row mutation beyond delegating to the steps.
type Pipeline struct {
	logger   *zap.Logger
	recorder audit.Recorder
	runID    string
}

// NewPipeline creates a new cleaning pipeline. Every mutation the steps
// perform is reported to the audit recorder, tagged with a fresh run ID.
func NewPipeline(logger *zap.Logger, recorder audit.Recorder) (*Pipeline, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}

	return &Pipeline{
		logger:   logger,
		recorder: recorder,
		runID:    uuid.New().String(),
	}, nil
}

// RunID returns the identifier stamped on this pipeline's audit records.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Clean applies the full remediation sequence:
// deduplication, gender standardization, date normalization, income
// coercion, invalid-value correction, email validation, completeness
// scoring, and SSN duplicate flagging. Completeness runs after the
// normalization steps so it scores cleaned values; SSN flagging runs
// after deduplication so removed duplicates don't inflate the set.
func (p *Pipeline) Clean(ctx context.Context, table model.Table) (model.Table, *model.PipelineSummary, error) {
	summary := &model.PipelineSummary{
		RunID:     p.runID,
		RowsIn:    len(table),
		StartTime: time.Now(),
	}

	p.logger.Info("Starting data cleaning pipeline",
		zap.String("run_id", p.runID),
		zap.Int("rows", len(table)))

	steps := []func(model.Table) (model.Table, model.StepReport){
		p.RemoveDuplicates,
		p.StandardizeGender,
		p.NormalizeDates,
		p.FixIncomeTypes,
		p.FixInvalidValues,
		p.ValidateEmails,
		p.FlagMissingFields,
		p.FlagSSNDuplicates,
	}

	var operations []model.CleaningOperation
	for _, step := range steps {
		var report model.StepReport
		table, report = step(table)
		operations = append(operations, report.Operations...)
		summary.Steps = append(summary.Steps, report)
	}

	summary.RowsOut = len(table)
	summary.RowsRemoved = summary.RowsIn - summary.RowsOut
	summary.Operations = len(operations)
	summary.EndTime = time.Now()

	if len(operations) > 0 {
		if err := p.recorder.Record(ctx, operations); err != nil {
			return table, summary, fmt.Errorf("failed to record cleaning operations: %w", err)
		}
	}

	p.logger.Info("Cleaning complete",
		zap.String("run_id", p.runID),
		zap.Int("rows_in", summary.RowsIn),
		zap.Int("rows_out", summary.RowsOut),
		zap.Int("rows_removed", summary.RowsRemoved),
		zap.Int("operations", summary.Operations),
		zap.Duration("duration", summary.Duration()))

	return table, summary, nil
}

// newOp builds an audit record for a single cell mutation.
func (p *Pipeline) newOp(column string, original, updated model.Value, rowID, operation, reason string) model.CleaningOperation {
	return model.CleaningOperation{
		RunID:             p.runID,
		ColumnName:        column,
		OriginalValue:     original,
		NewValue:          updated,
		RowIdentifier:     rowID,
		CleaningOperation: operation,
		CleaningReason:    reason,
		CleanedAt:         time.Now(),
	}
}
