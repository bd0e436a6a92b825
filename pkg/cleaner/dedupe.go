// pkg/cleaner/dedupe.go
package cleaner

import (
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

// duplicateMarkers are the literal notes values that mark a record as a
// known duplicate or resubmission.
var duplicateMarkers = map[string]struct{}{
	"DUPLICATE_ENTRY_ERROR": {},
	"RESUBMISSION":          {},
}

// RemoveDuplicates removes duplicate records in two phases: first any
// row whose notes field carries a duplicate marker, then, among the
// remaining rows, any later occurrence of an app_id already seen. Order
// of the surviving rows is preserved. Rows without an app_id are never
// collapsed together; absence is not a shared identity.
func (p *Pipeline) RemoveDuplicates(table model.Table) (model.Table, model.StepReport) {
	report := model.StepReport{Step: "remove_duplicates", RowsIn: len(table)}

	seen := make(map[string]struct{})
	kept := make(model.Table, 0, len(table))

	for _, row := range table {
		if notes, ok := row.Notes.Raw().(string); ok {
			if _, marked := duplicateMarkers[notes]; marked {
				report.Operations = append(report.Operations, p.newOp(
					"*", row.Notes, model.Null(),
					row.AppID.AsString(),
					"row_removal", "duplicate_marker_notes"))
				continue
			}
		}

		if !row.AppID.IsMissing() {
			id := row.AppID.AsString()
			if _, dup := seen[id]; dup {
				report.Operations = append(report.Operations, p.newOp(
					"*", row.AppID, model.Null(),
					id,
					"row_removal", "duplicate_app_id"))
				continue
			}
			seen[id] = struct{}{}
		}

		kept = append(kept, row)
	}

	report.RowsOut = len(kept)
	report.Corrected = report.RowsIn - report.RowsOut

	p.logger.Info("Removed duplicate records",
		zap.Int("removed", report.Corrected),
		zap.Int("before", report.RowsIn),
		zap.Int("after", report.RowsOut))
	return kept, report
}
