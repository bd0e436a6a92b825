// pkg/cleaner/steps_test.go
package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novacred/credit-ingress/pkg/model"
)

func TestStandardizeGender(t *testing.T) {
	testCases := []struct {
		name     string
		input    model.Value
		expected model.Value
	}{
		{name: "full male", input: model.String("Male"), expected: model.String("Male")},
		{name: "abbreviated male", input: model.String("M"), expected: model.String("Male")},
		{name: "full female", input: model.String("Female"), expected: model.String("Female")},
		{name: "abbreviated female", input: model.String("F"), expected: model.String("Female")},
		{name: "empty string", input: model.String(""), expected: model.Null()},
		{name: "null", input: model.Null(), expected: model.Null()},
		{name: "lowercase is not recognized", input: model.String("male"), expected: model.Null()},
		{name: "unknown literal", input: model.String("woman"), expected: model.Null()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPipeline(t)
			table := model.Table{rowWith(func(r *model.Row) {
				r.AppID = model.String("A1")
				r.Gender = tc.input
			})}

			table, _ = p.StandardizeGender(table)

			assert.True(t, table[0].Gender.Equal(tc.expected))
			assert.True(t, table[0].GenderOriginal.Equal(tc.input))
		})
	}
}

func TestFixIncomeTypes(t *testing.T) {
	p := newTestPipeline(t)
	table := model.Table{
		rowWith(func(r *model.Row) { r.AnnualIncome = model.String("52000.75") }),
		rowWith(func(r *model.Row) { r.AnnualIncome = model.Float(48000) }),
		rowWith(func(r *model.Row) { r.AnnualIncome = model.String("unknown") }),
		rowWith(func(r *model.Row) { r.AnnualIncome = model.Null() }),
	}

	table, report := p.FixIncomeTypes(table)

	income, err := table[0].AnnualIncome.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 52001.0, income)

	income, err = table[1].AnnualIncome.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 48000.0, income)

	assert.True(t, table[2].AnnualIncome.IsNull())
	assert.True(t, table[3].AnnualIncome.IsNull())
	assert.Equal(t, 2, report.Corrected)
}

func TestFixIncomeTypesAlwaysWholeNumbers(t *testing.T) {
	p := newTestPipeline(t)
	inputs := []model.Value{
		model.String("1.4"), model.String("99999.99"), model.Float(0.5), model.Float(-1200.3),
	}
	table := make(model.Table, len(inputs))
	for i, v := range inputs {
		v := v
		table[i] = rowWith(func(r *model.Row) { r.AnnualIncome = v })
	}

	table, _ = p.FixIncomeTypes(table)

	for i, row := range table {
		income, err := row.AnnualIncome.AsFloat()
		require.NoError(t, err, "row %d", i)
		assert.Equal(t, income, float64(int64(income)), "row %d should be integer-valued", i)
	}
}

func TestFixInvalidValues(t *testing.T) {
	p := newTestPipeline(t)
	table := model.Table{
		rowWith(func(r *model.Row) {
			r.CreditHistoryMonths = model.Float(-12)
			r.SavingsBalance = model.Float(-0.01)
		}),
		rowWith(func(r *model.Row) {
			r.CreditHistoryMonths = model.Float(0)
			r.SavingsBalance = model.Float(2500)
		}),
		rowWith(func(r *model.Row) {
			// already missing values stay untouched
			r.CreditHistoryMonths = model.Null()
		}),
	}

	table, report := p.FixInvalidValues(table)

	assert.True(t, table[0].CreditHistoryMonths.IsNull())
	assert.True(t, table[0].SavingsBalance.IsNull())

	months, err := table[1].CreditHistoryMonths.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 0.0, months)

	assert.True(t, table[2].CreditHistoryMonths.IsNull())
	assert.Equal(t, 2, report.Corrected)
}

func TestValidateEmails(t *testing.T) {
	testCases := []struct {
		name     string
		input    model.Value
		expected bool
	}{
		{name: "simple valid", input: model.String("a@b.co"), expected: true},
		{name: "full address", input: model.String("first.last+tag@sub.example.org"), expected: true},
		{name: "missing domain", input: model.String("bad@"), expected: false},
		{name: "missing tld", input: model.String("bad@host"), expected: false},
		{name: "one letter tld", input: model.String("bad@host.x"), expected: false},
		{name: "embedded spaces", input: model.String("a b@c.co"), expected: false},
		{name: "empty", input: model.String(""), expected: false},
		{name: "null", input: model.Null(), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPipeline(t)
			table := model.Table{rowWith(func(r *model.Row) { r.Email = tc.input })}

			table, _ = p.ValidateEmails(table)

			assert.Equal(t, tc.expected, table[0].EmailValid)
			assert.True(t, table[0].Email.Equal(tc.input), "email must never be modified")
		})
	}
}

func TestFlagMissingFields(t *testing.T) {
	p := newTestPipeline(t)
	full := fullRow("A1", "111-11-1111")

	missingTwo := fullRow("A2", "222-22-2222")
	missingTwo.Email = model.Null()
	missingTwo.SSN = model.String("")

	table, report := p.FlagMissingFields(model.Table{full, missingTwo})

	assert.Equal(t, 12, table[0].CompletenessScore)
	assert.Equal(t, 100.0, table[0].CompletenessPct)

	assert.Equal(t, 10, table[1].CompletenessScore)
	assert.Equal(t, 83.3, table[1].CompletenessPct)

	assert.Equal(t, 1, report.Flagged)
}

func TestFlagSSNDuplicates(t *testing.T) {
	p := newTestPipeline(t)
	table := model.Table{
		rowWith(func(r *model.Row) { r.SSN = model.String("111") }),
		rowWith(func(r *model.Row) { r.SSN = model.String("111") }),
		rowWith(func(r *model.Row) { r.SSN = model.String("222") }),
		rowWith(func(r *model.Row) { r.SSN = model.String("") }),
		rowWith(func(r *model.Row) { r.SSN = model.Null() }),
	}

	table, report := p.FlagSSNDuplicates(table)

	assert.True(t, table[0].SSNDuplicateFlag)
	assert.True(t, table[1].SSNDuplicateFlag)
	assert.False(t, table[2].SSNDuplicateFlag)
	assert.False(t, table[3].SSNDuplicateFlag)
	assert.False(t, table[4].SSNDuplicateFlag)

	assert.Equal(t, 2, report.Flagged)
	assert.Len(t, table, 5, "flagging must not remove rows")
}
