// pkg/cleaner/invalid.go
package cleaner

import (
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

// FixInvalidValues replaces impossible values with the null marker.
// Credit history months and savings balance can never be negative, so
// any present negative value is cleared; null and non-negative values
// are left untouched.
func (p *Pipeline) FixInvalidValues(table model.Table) (model.Table, model.StepReport) {
	report := model.StepReport{Step: "fix_invalid_values", RowsIn: len(table), RowsOut: len(table)}

	negCreditHistory := 0
	negSavings := 0
	for _, row := range table {
		if cleared, op := p.clearNegative("credit_history_months", &row.CreditHistoryMonths, row.AppID.AsString()); cleared {
			negCreditHistory++
			report.Operations = append(report.Operations, op)
		}
		if cleared, op := p.clearNegative("savings_balance", &row.SavingsBalance, row.AppID.AsString()); cleared {
			negSavings++
			report.Operations = append(report.Operations, op)
		}
	}
	report.Corrected = negCreditHistory + negSavings

	if negCreditHistory > 0 {
		p.logger.Info("Cleared negative credit_history_months values",
			zap.Int("count", negCreditHistory))
	}
	if negSavings > 0 {
		p.logger.Info("Cleared negative savings_balance values",
			zap.Int("count", negSavings))
	}
	return table, report
}

// clearNegative nulls the cell if it holds a negative numeric value.
func (p *Pipeline) clearNegative(column string, cell *model.Value, rowID string) (bool, model.CleaningOperation) {
	value, err := cell.AsFloat()
	if err != nil || value >= 0 {
		return false, model.CleaningOperation{}
	}

	original := *cell
	*cell = model.Null()
	return true, p.newOp(column, original, model.Null(), rowID,
		"invalid_value_correction", "negative_value")
}
