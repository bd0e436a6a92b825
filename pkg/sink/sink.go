// pkg/sink/sink.go
package sink

import (
	"context"
	"strconv"

	"github.com/novacred/credit-ingress/pkg/model"
)

// TableSink persists a cleaned table.
type TableSink interface {
	// Write persists the table, one row per cleaned application, in
	// the canonical output column order.
	Write(ctx context.Context, table model.Table) error
}

// renderCell produces the output form of one column of a row. Flat
// columns render through the value's string form (null markers render
// empty); the boolean and numeric annotation columns always have a
// value.
func renderCell(row *model.Row, column string) string {
	switch column {
	case "email_valid":
		return strconv.FormatBool(row.EmailValid)
	case "completeness_score":
		return strconv.Itoa(row.CompletenessScore)
	case "completeness_pct":
		return strconv.FormatFloat(row.CompletenessPct, 'f', 1, 64)
	case "ssn_duplicate_flag":
		return strconv.FormatBool(row.SSNDuplicateFlag)
	default:
		return row.Field(column).AsString()
	}
}
