// pkg/model/record.go
package model

// RawRecord is a single credit application as it appears in the raw
// dataset. Every leaf is typed as `any` because the source data mixes
// types freely (annual_income arrives as both numbers and strings) and
// any field, or any whole group, may be absent.
type RawRecord struct {
	ID                  any              `json:"_id"`
	ApplicantInfo       *ApplicantInfo   `json:"applicant_info"`
	Financials          *Financials      `json:"financials"`
	SpendingBehavior    []SpendingEntry  `json:"spending_behavior"`
	Decision            *LoanDecision    `json:"decision"`
	ProcessingTimestamp any              `json:"processing_timestamp"`
	LoanPurpose         any              `json:"loan_purpose"`
	Notes               any              `json:"notes"`
}

// ApplicantInfo holds the applicant identity fields.
type ApplicantInfo struct {
	FullName    any `json:"full_name"`
	Email       any `json:"email"`
	SSN         any `json:"ssn"`
	IPAddress   any `json:"ip_address"`
	Gender      any `json:"gender"`
	DateOfBirth any `json:"date_of_birth"`
	ZipCode     any `json:"zip_code"`
}

// Financials holds the applicant's financial position.
type Financials struct {
	AnnualIncome        any `json:"annual_income"`
	CreditHistoryMonths any `json:"credit_history_months"`
	DebtToIncome        any `json:"debt_to_income"`
	SavingsBalance      any `json:"savings_balance"`
}

// SpendingEntry is one category/amount pair from spending_behavior.
type SpendingEntry struct {
	Category any `json:"category"`
	Amount   any `json:"amount"`
}

// LoanDecision holds the outcome of the application.
type LoanDecision struct {
	LoanApproved    any `json:"loan_approved"`
	InterestRate    any `json:"interest_rate"`
	ApprovedAmount  any `json:"approved_amount"`
	RejectionReason any `json:"rejection_reason"`
}
