package domain

type ScheduleRow struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

type Schedule struct {
	Input         LoanInput     `json:"input"`
	Rows          []ScheduleRow `json:"rows"`
	TotalInterest float64       `json:"totalInterest"`
	TotalPayment  float64       `json:"totalPayment"`
}
