// pkg/model/row.go
package model

// Row is one flattened credit application. The field set is fixed: the
// flattener always produces every column regardless of which fields were
// present in the raw record, and the cleaning steps only mutate cells or
// fill in the annotation columns appended at the end.
type Row struct {
	AppID                Value
	FullName             Value
	Email                Value
	SSN                  Value
	IPAddress            Value
	Gender               Value
	DateOfBirth          Value
	ZipCode              Value
	AnnualIncome         Value
	CreditHistoryMonths  Value
	DebtToIncome         Value
	SavingsBalance       Value
	SpendingTotal        Value
	SpendingCategories   Value
	SpendingCategoryList Value
	LoanApproved         Value
	InterestRate         Value
	ApprovedAmount       Value
	RejectionReason      Value
	ProcessingTimestamp  Value
	LoanPurpose          Value
	Notes                Value

	// Annotation columns, filled by the cleaning steps.
	GenderOriginal      Value
	DateOfBirthOriginal Value
	EmailValid          bool
	CompletenessScore   int
	CompletenessPct     float64
	SSNDuplicateFlag    bool
}

// Table is an ordered collection of rows sharing a uniform column set.
type Table []*Row

// FlattenedColumns is the flattener's output column order.
var FlattenedColumns = []string{
	"app_id",
	"full_name",
	"email",
	"ssn",
	"ip_address",
	"gender",
	"date_of_birth",
	"zip_code",
	"annual_income",
	"credit_history_months",
	"debt_to_income",
	"savings_balance",
	"spending_total",
	"spending_categories",
	"spending_category_list",
	"loan_approved",
	"interest_rate",
	"approved_amount",
	"rejection_reason",
	"processing_timestamp",
	"loan_purpose",
	"notes",
}

// AnnotationColumns are appended by the cleaning steps, in the order the
// steps add them.
var AnnotationColumns = []string{
	"gender_original",
	"date_of_birth_original",
	"email_valid",
	"completeness_score",
	"completeness_pct",
	"ssn_duplicate_flag",
}

// OutputColumns is the persisted column order: flattener columns followed
// by annotation columns.
var OutputColumns = append(append([]string{}, FlattenedColumns...), AnnotationColumns...)

// CoreFields are the columns used for completeness scoring.
var CoreFields = []string{
	"full_name",
	"email",
	"ssn",
	"ip_address",
	"gender",
	"date_of_birth",
	"zip_code",
	"annual_income",
	"credit_history_months",
	"debt_to_income",
	"savings_balance",
	"loan_approved",
}

// Field returns the cell for a flattened column by name. The mapping is
// fixed; unknown names return the null marker.
func (r *Row) Field(name string) Value {
	switch name {
	case "app_id":
		return r.AppID
	case "full_name":
		return r.FullName
	case "email":
		return r.Email
	case "ssn":
		return r.SSN
	case "ip_address":
		return r.IPAddress
	case "gender":
		return r.Gender
	case "date_of_birth":
		return r.DateOfBirth
	case "zip_code":
		return r.ZipCode
	case "annual_income":
		return r.AnnualIncome
	case "credit_history_months":
		return r.CreditHistoryMonths
	case "debt_to_income":
		return r.DebtToIncome
	case "savings_balance":
		return r.SavingsBalance
	case "spending_total":
		return r.SpendingTotal
	case "spending_categories":
		return r.SpendingCategories
	case "spending_category_list":
		return r.SpendingCategoryList
	case "loan_approved":
		return r.LoanApproved
	case "interest_rate":
		return r.InterestRate
	case "approved_amount":
		return r.ApprovedAmount
	case "rejection_reason":
		return r.RejectionReason
	case "processing_timestamp":
		return r.ProcessingTimestamp
	case "loan_purpose":
		return r.LoanPurpose
	case "notes":
		return r.Notes
	case "gender_original":
		return r.GenderOriginal
	case "date_of_birth_original":
		return r.DateOfBirthOriginal
	default:
		return Null()
	}
}
