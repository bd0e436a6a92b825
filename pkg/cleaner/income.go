// pkg/cleaner/income.go
package cleaner

import (
	"math"

	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

// FixIncomeTypes coerces annual_income to a numeric value. Values that
// cannot be parsed as a number become the null marker rather than an
// error. Parsed values are rounded to the nearest whole number using
// round-half-to-even.
func (p *Pipeline) FixIncomeTypes(table model.Table) (model.Table, model.StepReport) {
	report := model.StepReport{Step: "fix_income_types", RowsIn: len(table), RowsOut: len(table)}

	missing := 0
	for _, row := range table {
		original := row.AnnualIncome
		if original.IsNull() {
			missing++
			continue
		}

		income, err := original.AsFloat()
		if err != nil {
			row.AnnualIncome = model.Null()
			missing++
			report.Corrected++
			report.Operations = append(report.Operations, p.newOp(
				"annual_income", original, model.Null(),
				row.AppID.AsString(),
				"type_coercion", "not_numeric"))
			continue
		}

		rounded := model.Float(math.RoundToEven(income))
		if !rounded.Equal(original) {
			row.AnnualIncome = rounded
			report.Corrected++
			report.Operations = append(report.Operations, p.newOp(
				"annual_income", original, rounded,
				row.AppID.AsString(),
				"type_coercion", "converted_to_whole_number"))
		}
	}

	p.logger.Info("Income type fix complete",
		zap.Int("coerced", report.Corrected),
		zap.Int("missing_remaining", missing))
	return table, report
}
