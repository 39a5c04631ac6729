package domain

// Field names one of the calculator's five inputs.
type Field string

const (
	FieldHomeValue    Field = "homeValue"
	FieldDownPayment  Field = "downPayment"
	FieldLoanAmount   Field = "loanAmount"
	FieldInterestRate Field = "interestRate"
	FieldTermYears    Field = "termYears"
)

// Fields lists the inputs in display order.
var Fields = []Field{
	FieldHomeValue,
	FieldDownPayment,
	FieldLoanAmount,
	FieldInterestRate,
	FieldTermYears,
}

// State is the calculator's source of truth. DownPayment + LoanAmount always
// equals HomeValue.
type State struct {
	HomeValue    float64 `json:"homeValue"`
	DownPayment  float64 `json:"downPayment"`
	LoanAmount   float64 `json:"loanAmount"`
	InterestRate float64 `json:"interestRate"`
	TermYears    int     `json:"termYears"`
}

// FieldChange is a single raw change event from a control.
type FieldChange struct {
	Field Field   `json:"field"`
	Value float64 `json:"value"`
}
