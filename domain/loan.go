package domain

type LoanInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interestRate"`
	TermYears    int     `json:"termYears"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}
