package domain

type TermComparisonInput struct {
	Amount            float64 `json:"amount"`
	InterestRate      float64 `json:"interestRate"`
	MaxMonthlyPayment float64 `json:"maxMonthlyPayment,omitempty"`
}

type TermOption struct {
	TermYears      int     `json:"termYears"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	Affordable     bool    `json:"affordable"`
}

type TermComparison struct {
	RecommendedTerm int          `json:"recommendedTerm"`
	Options         []TermOption `json:"options"`
}
