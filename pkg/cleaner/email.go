// pkg/cleaner/email.go
package cleaner

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

// emailPattern must match the entire value: local part, '@', domain,
// and a TLD of at least two letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmails flags invalid email addresses in the email_valid
// column. The step only flags: the original email value is never
// modified, since there is no way to guess the intended address.
// Missing or empty values are flagged invalid.
func (p *Pipeline) ValidateEmails(table model.Table) (model.Table, model.StepReport) {
	report := model.StepReport{Step: "validate_emails", RowsIn: len(table), RowsOut: len(table)}

	invalid := 0
	for _, row := range table {
		row.EmailValid = !row.Email.IsMissing() && emailPattern.MatchString(row.Email.AsString())
		if !row.EmailValid {
			invalid++
		}
	}
	report.Flagged = invalid

	p.logger.Info("Email validation complete",
		zap.Int("invalid_flagged", invalid))
	return table, report
}
