// pkg/cleaner/gender.go
package cleaner

import (
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

// genderMap holds the only recognized gender literals. Matching is exact
// and case-sensitive; variants like "male" are unrecognized and null out.
var genderMap = map[string]string{
	"Male":   "Male",
	"M":      "Male",
	"Female": "Female",
	"F":      "Female",
}

// StandardizeGender maps gender values to a consistent format. The
// original value is copied to gender_original first for the audit
// trail; anything outside the four recognized literals (including the
// empty string) becomes the null marker.
func (p *Pipeline) StandardizeGender(table model.Table) (model.Table, model.StepReport) {
	report := model.StepReport{Step: "standardize_gender", RowsIn: len(table), RowsOut: len(table)}

	counts := make(map[string]int)
	for _, row := range table {
		original := row.Gender
		row.GenderOriginal = original

		standardized := model.Null()
		if s, ok := original.Raw().(string); ok {
			if mapped, recognized := genderMap[s]; recognized {
				standardized = model.String(mapped)
			}
		}
		row.Gender = standardized

		if standardized.IsNull() {
			counts["null"]++
		} else {
			counts[standardized.AsString()]++
		}

		if !standardized.Equal(original) {
			report.Corrected++
			report.Operations = append(report.Operations, p.newOp(
				"gender", original, standardized,
				row.AppID.AsString(),
				"value_standardization", "unrecognized_or_abbreviated_gender"))
		}
	}

	p.logger.Info("Gender standardization complete",
		zap.Int("male", counts["Male"]),
		zap.Int("female", counts["Female"]),
		zap.Int("missing", counts["null"]),
		zap.Int("changed", report.Corrected))
	return table, report
}
