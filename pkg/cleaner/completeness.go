// pkg/cleaner/completeness.go
package cleaner

import (
	"math"

	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

// FlagMissingFields scores each record's completeness over the core
// fields. The score counts core fields that are present and non-empty
// at the time the step runs, so it evaluates the standardized values
// produced by the earlier steps, not the raw input. completeness_pct is
// the score as a percentage, rounded to one decimal place.
func (p *Pipeline) FlagMissingFields(table model.Table) (model.Table, model.StepReport) {
	report := model.StepReport{Step: "flag_missing_fields", RowsIn: len(table), RowsOut: len(table)}

	incomplete := 0
	for _, row := range table {
		score := 0
		for _, field := range model.CoreFields {
			if !row.Field(field).IsMissing() {
				score++
			}
		}

		row.CompletenessScore = score
		row.CompletenessPct = roundToOneDecimal(float64(score) / float64(len(model.CoreFields)) * 100)
		if row.CompletenessPct < 100 {
			incomplete++
		}
	}
	report.Flagged = incomplete

	p.logger.Info("Completeness scoring complete",
		zap.Int("incomplete_records", incomplete),
		zap.Int("core_fields", len(model.CoreFields)))
	return table, report
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
