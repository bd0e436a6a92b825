// pkg/flatten/flatten.go
package flatten

import (
	"strings"

	"github.com/novacred/credit-ingress/pkg/model"
)

// CategorySeparator joins spending categories in spending_category_list.
const CategorySeparator = "|"

// Flatten converts one nested raw record into one flat row. It is a pure
// function and never fails: absent nested groups are treated as empty,
// so every column of the output is populated (with the null marker where
// the source had nothing).
func Flatten(rec model.RawRecord) model.Row {
	row := model.Row{
		AppID:               model.FromJSON(rec.ID),
		ProcessingTimestamp: model.FromJSON(rec.ProcessingTimestamp),
		LoanPurpose:         model.FromJSON(rec.LoanPurpose),
		Notes:               model.FromJSON(rec.Notes),
	}

	info := rec.ApplicantInfo
	if info == nil {
		info = &model.ApplicantInfo{}
	}
	row.FullName = model.FromJSON(info.FullName)
	row.Email = model.FromJSON(info.Email)
	row.SSN = model.FromJSON(info.SSN)
	row.IPAddress = model.FromJSON(info.IPAddress)
	row.Gender = model.FromJSON(info.Gender)
	row.DateOfBirth = model.FromJSON(info.DateOfBirth)
	row.ZipCode = model.FromJSON(info.ZipCode)

	fin := rec.Financials
	if fin == nil {
		fin = &model.Financials{}
	}
	row.AnnualIncome = model.FromJSON(fin.AnnualIncome)
	row.CreditHistoryMonths = model.FromJSON(fin.CreditHistoryMonths)
	row.DebtToIncome = model.FromJSON(fin.DebtToIncome)
	row.SavingsBalance = model.FromJSON(fin.SavingsBalance)

	row.SpendingTotal = model.Float(spendingTotal(rec.SpendingBehavior))
	row.SpendingCategories = model.Float(float64(len(rec.SpendingBehavior)))
	row.SpendingCategoryList = model.String(categoryList(rec.SpendingBehavior))

	dec := rec.Decision
	if dec == nil {
		dec = &model.LoanDecision{}
	}
	row.LoanApproved = model.FromJSON(dec.LoanApproved)
	row.InterestRate = model.FromJSON(dec.InterestRate)
	row.ApprovedAmount = model.FromJSON(dec.ApprovedAmount)
	row.RejectionReason = model.FromJSON(dec.RejectionReason)

	return row
}

// spendingTotal sums the per-entry amounts, defaulting an absent or
// non-numeric amount to 0.
func spendingTotal(entries []model.SpendingEntry) float64 {
	var total float64
	for _, entry := range entries {
		amount, err := model.FromJSON(entry.Amount).AsFloat()
		if err != nil {
			continue
		}
		total += amount
	}
	return total
}

// categoryList joins the spending categories in original order. Entries
// without a category contribute an empty segment.
func categoryList(entries []model.SpendingEntry) string {
	categories := make([]string, len(entries))
	for i, entry := range entries {
		categories[i] = model.FromJSON(entry.Category).AsString()
	}
	return strings.Join(categories, CategorySeparator)
}
