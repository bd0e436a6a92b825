// pkg/cleaner/cleaner_test.go
package cleaner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(zap.NewNop(), nil)
	require.NoError(t, err)
	return p
}

// rowWith builds a row and applies overrides. Unset cells stay null,
// exactly as the flattener leaves absent fields.
func rowWith(overrides func(*model.Row)) *model.Row {
	row := &model.Row{}
	if overrides != nil {
		overrides(row)
	}
	return row
}

// fullRow is a completely filled application used as a baseline.
func fullRow(id, ssn string) *model.Row {
	return rowWith(func(r *model.Row) {
		r.AppID = model.String(id)
		r.FullName = model.String("Casey Nguyen")
		r.Email = model.String("casey@example.com")
		r.SSN = model.String(ssn)
		r.IPAddress = model.String("192.168.0.10")
		r.Gender = model.String("F")
		r.DateOfBirth = model.String("1990-06-15")
		r.ZipCode = model.String("98101")
		r.AnnualIncome = model.String("64000.49")
		r.CreditHistoryMonths = model.Float(60)
		r.DebtToIncome = model.Float(0.25)
		r.SavingsBalance = model.Float(8000)
		r.SpendingTotal = model.Float(1200)
		r.SpendingCategories = model.Float(3)
		r.SpendingCategoryList = model.String("groceries|travel|dining")
		r.LoanApproved = model.Bool(true)
	})
}

func TestNewPipelineRequiresLogger(t *testing.T) {
	_, err := NewPipeline(nil, nil)
	assert.Error(t, err)
}

func TestCleanRunsAllSteps(t *testing.T) {
	p := newTestPipeline(t)
	table := model.Table{
		fullRow("A1", "111-11-1111"),
		rowWith(func(r *model.Row) {
			r.AppID = model.String("A1")
			r.Notes = model.String("RESUBMISSION")
		}),
		rowWith(func(r *model.Row) {
			r.AppID = model.String("A2")
			r.SSN = model.String("111-11-1111")
			r.Gender = model.String("Male")
			r.DateOfBirth = model.String("13/05/2020")
			r.AnnualIncome = model.String("not a number")
			r.CreditHistoryMonths = model.Float(-5)
			r.Email = model.String("bad@")
		}),
	}

	cleaned, summary, err := p.Clean(context.Background(), table)
	require.NoError(t, err)
	require.Len(t, cleaned, 2)

	assert.Equal(t, 3, summary.RowsIn)
	assert.Equal(t, 2, summary.RowsOut)
	assert.Equal(t, 1, summary.RowsRemoved)
	assert.Len(t, summary.Steps, 8)
	assert.NotEmpty(t, summary.RunID)

	// the resubmission is gone and A1 survives once
	assert.Equal(t, "A1", cleaned[0].AppID.AsString())
	assert.Equal(t, "A2", cleaned[1].AppID.AsString())

	// gender standardized, original kept
	assert.Equal(t, "Female", cleaned[0].Gender.AsString())
	assert.Equal(t, "F", cleaned[0].GenderOriginal.AsString())
	assert.Equal(t, "Male", cleaned[1].Gender.AsString())

	// date normalized
	dob, ok := cleaned[1].DateOfBirth.AsDate()
	require.True(t, ok)
	assert.Equal(t, "2020-05-13", dob.Format(model.DateLayout))

	// income coerced and rounded; unparseable income nulled
	income, err := cleaned[0].AnnualIncome.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 64000.0, income)
	assert.True(t, cleaned[1].AnnualIncome.IsNull())

	// negative credit history cleared
	assert.True(t, cleaned[1].CreditHistoryMonths.IsNull())

	// email flags
	assert.True(t, cleaned[0].EmailValid)
	assert.False(t, cleaned[1].EmailValid)

	// both rows share an SSN, so both are flagged
	assert.True(t, cleaned[0].SSNDuplicateFlag)
	assert.True(t, cleaned[1].SSNDuplicateFlag)

	// completeness scored on cleaned values
	assert.Equal(t, 12, cleaned[0].CompletenessScore)
	assert.Equal(t, 100.0, cleaned[0].CompletenessPct)
	assert.Less(t, cleaned[1].CompletenessScore, 12)
}

func TestCleanIsIdempotent(t *testing.T) {
	p := newTestPipeline(t)
	table := model.Table{
		fullRow("A1", "111-11-1111"),
		rowWith(func(r *model.Row) {
			r.AppID = model.String("A2")
			r.SSN = model.String("111-11-1111")
			r.Gender = model.String("M")
			r.DateOfBirth = model.String("05/04/2020")
			r.AnnualIncome = model.Float(51234.5)
			r.Email = model.String("a@b.co")
		}),
	}

	once, _, err := p.Clean(context.Background(), table)
	require.NoError(t, err)

	// strip the audit columns, as a consumer re-running the pipeline
	// on persisted output would
	for _, row := range once {
		row.GenderOriginal = model.Null()
		row.DateOfBirthOriginal = model.Null()
	}

	second := make(model.Table, len(once))
	for i, row := range once {
		copied := *row
		second[i] = &copied
	}

	p2 := newTestPipeline(t)
	twice, summary, err := p2.Clean(context.Background(), second)
	require.NoError(t, err)

	require.Len(t, twice, len(once))
	assert.Equal(t, 0, summary.RowsRemoved)

	for i := range once {
		assert.True(t, once[i].Gender.Equal(twice[i].Gender), "row %d gender", i)
		assert.True(t, once[i].DateOfBirth.Equal(twice[i].DateOfBirth), "row %d date", i)
		assert.True(t, once[i].AnnualIncome.Equal(twice[i].AnnualIncome), "row %d income", i)
		assert.Equal(t, once[i].EmailValid, twice[i].EmailValid, "row %d email flag", i)
		assert.Equal(t, once[i].SSNDuplicateFlag, twice[i].SSNDuplicateFlag, "row %d ssn flag", i)
		assert.Equal(t, once[i].CompletenessScore, twice[i].CompletenessScore, "row %d score", i)
		assert.Equal(t, once[i].CompletenessPct, twice[i].CompletenessPct, "row %d pct", i)
	}
}
