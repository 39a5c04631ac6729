package service

import (
	"fmt"
	"strconv"

	"loan-calculator/domain"
)

const (
	PrincipalColor   = "#facc15"
	InterestColor    = "#4ade80"
	ChartBorderColor = "#ffffff"
	ChartBorderWidth = 2
)

// raw prints a slider value the way the control holds it, without padding.
func raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func termLabel(years int) string {
	return fmt.Sprintf("%d Years", years)
}

// Chart describes the principal/interest split for the pie chart.
func Chart(s domain.State, result domain.LoanResult) domain.ChartData {
	return domain.ChartData{
		Labels: []string{"Principal", "Interest"},
		Datasets: []domain.ChartDataset{
			{
				Data:            []float64{s.LoanAmount, result.TotalInterest},
				BackgroundColor: []string{PrincipalColor, InterestColor},
				BorderColor:     ChartBorderColor,
				BorderWidth:     ChartBorderWidth,
			},
		},
	}
}

func Display(s domain.State, result domain.LoanResult) domain.Display {
	return domain.Display{
		HomeValue:      "$" + raw(s.HomeValue),
		DownPayment:    "$" + raw(s.DownPayment),
		LoanAmount:     "$" + raw(s.LoanAmount),
		InterestRate:   "%" + raw(s.InterestRate),
		Term:           termLabel(s.TermYears),
		MonthlyPayment: money(result.MonthlyPayment),
		TotalInterest:  money(result.TotalInterest),
	}
}

// Controls describes the five inputs. The down payment and loan amount
// sliders are bounded by the current home value.
func Controls(s domain.State) []domain.Control {
	options := make([]domain.Option, 0, len(TermOptions))
	for _, y := range TermOptions {
		options = append(options, domain.Option{Value: y, Label: termLabel(y)})
	}

	return []domain.Control{
		{
			Field: domain.FieldHomeValue, Label: "Home Value", Kind: domain.ControlRange,
			Min: MinHomeValue, Max: MaxHomeValue, Step: HomeValueStep, Value: s.HomeValue,
			MinLabel: "$" + raw(MinHomeValue), MaxLabel: "$" + raw(MaxHomeValue),
		},
		{
			Field: domain.FieldDownPayment, Label: "Down Payment", Kind: domain.ControlRange,
			Min: 0, Max: s.HomeValue, Step: DownPaymentStep, Value: s.DownPayment,
			MinLabel: "$0", MaxLabel: "$" + raw(s.HomeValue),
		},
		{
			Field: domain.FieldLoanAmount, Label: "Loan Amount", Kind: domain.ControlRange,
			Min: 0, Max: s.HomeValue, Step: LoanAmountStep, Value: s.LoanAmount,
			MinLabel: "$0", MaxLabel: "$" + raw(s.HomeValue),
		},
		{
			Field: domain.FieldInterestRate, Label: "Interest Rate (%)", Kind: domain.ControlRange,
			Min: MinInterestRate, Max: MaxInterestRate, Step: InterestRateStep, Value: s.InterestRate,
			MinLabel: "%" + raw(MinInterestRate), MaxLabel: "%" + raw(MaxInterestRate),
		},
		{
			Field: domain.FieldTermYears, Label: "Tenure", Kind: domain.ControlSelect,
			Value: float64(s.TermYears), Options: options,
		},
	}
}

// Render recomputes everything derived from s.
func Render(s domain.State) domain.View {
	result := Amortize(s.LoanAmount, s.InterestRate, s.TermYears)
	return domain.View{
		State:    s,
		Result:   result,
		Chart:    Chart(s, result),
		Display:  Display(s, result),
		Controls: Controls(s),
	}
}
