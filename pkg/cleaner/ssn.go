// pkg/cleaner/ssn.go
package cleaner

import (
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

// FlagSSNDuplicates flags SSNs that appear on more than one record.
// Only present, non-empty SSNs enter the counting pool; a row with a
// missing SSN can never match the duplicate set and is flagged false.
// This catches data-entry errors where different applicants share an
// SSN, which is why it runs after deduplication: true duplicates are
// already gone and don't inflate the set. No rows are removed.
func (p *Pipeline) FlagSSNDuplicates(table model.Table) (model.Table, model.StepReport) {
	report := model.StepReport{Step: "flag_ssn_duplicates", RowsIn: len(table), RowsOut: len(table)}

	counts := make(map[string]int)
	for _, row := range table {
		if !row.SSN.IsMissing() {
			counts[row.SSN.AsString()]++
		}
	}

	duplicateSSNs := 0
	for _, count := range counts {
		if count > 1 {
			duplicateSSNs++
		}
	}

	flagged := 0
	for _, row := range table {
		row.SSNDuplicateFlag = !row.SSN.IsMissing() && counts[row.SSN.AsString()] > 1
		if row.SSNDuplicateFlag {
			flagged++
		}
	}
	report.Flagged = flagged

	if duplicateSSNs > 0 {
		p.logger.Info("Flagged SSNs appearing on multiple applicants",
			zap.Int("duplicate_ssns", duplicateSSNs),
			zap.Int("rows_flagged", flagged))
	}
	return table, report
}
