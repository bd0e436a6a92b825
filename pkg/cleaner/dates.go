// pkg/cleaner/dates.go
package cleaner

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

// NormalizeDates normalizes date_of_birth to a consistent date value,
// preserving the original in date_of_birth_original. Values that cannot
// be parsed under any accepted format become the null marker.
func (p *Pipeline) NormalizeDates(table model.Table) (model.Table, model.StepReport) {
	report := model.StepReport{Step: "normalize_dates", RowsIn: len(table), RowsOut: len(table)}

	valid, missing := 0, 0
	for _, row := range table {
		original := row.DateOfBirth
		row.DateOfBirthOriginal = original

		parsed := ParseDateOfBirth(original)
		row.DateOfBirth = parsed

		if parsed.IsNull() {
			missing++
		} else {
			valid++
		}

		if !parsed.Equal(original) {
			report.Corrected++
			reason := "format_normalization"
			if parsed.IsNull() {
				reason = "unparseable_date"
			}
			report.Operations = append(report.Operations, p.newOp(
				"date_of_birth", original, parsed,
				row.AppID.AsString(),
				"date_normalization", reason))
		}
	}

	p.logger.Info("Date normalization complete",
		zap.Int("valid", valid),
		zap.Int("missing_or_unparseable", missing))
	return table, report
}

// ParseDateOfBirth parses a single date_of_birth value, trying formats
// in a fixed precedence:
//
//  1. null, empty, or the literal "None" (also after trimming) → null
//  2. contains '-' → strict YYYY-MM-DD, nothing else
//  3. contains '/' → exactly three parts; a 4-digit first part means
//     YYYY/MM/DD; a first part over 12 must be a day (DD/MM/YYYY); a
//     second part over 12 must be a day (MM/DD/YYYY); when both parts
//     are ambiguous the business default is day-first (DD/MM/YYYY)
//  4. anything else → null
//
// A value that is already a parsed date passes through untouched, which
// keeps the pipeline idempotent. The day-first default for ambiguous
// values is dataset policy, not locale inference.
func ParseDateOfBirth(v model.Value) model.Value {
	if t, isDate := v.AsDate(); isDate {
		return model.Date(t)
	}
	if v.IsNull() {
		return model.Null()
	}

	s := v.AsString()
	if s == "" || s == "None" {
		return model.Null()
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "None" {
		return model.Null()
	}

	if strings.Contains(s, "-") {
		return parseExact(s, "2006-01-02")
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return model.Null()
		}

		if len(parts[0]) == 4 {
			return parseExact(s, "2006/01/02")
		}

		first, err := strconv.Atoi(parts[0])
		if err != nil {
			return model.Null()
		}
		second, err := strconv.Atoi(parts[1])
		if err != nil {
			return model.Null()
		}

		switch {
		case first > 12:
			// first can't be a month, so it must be the day
			return parseExact(s, "02/01/2006")
		case second > 12:
			// second can't be a month, so first must be the month
			return parseExact(s, "01/02/2006")
		default:
			// genuinely ambiguous: day-first is the dataset default
			return parseExact(s, "02/01/2006")
		}
	}

	return model.Null()
}

func parseExact(s, layout string) model.Value {
	t, err := time.Parse(layout, s)
	if err != nil {
		return model.Null()
	}
	return model.Date(t)
}
