package service

import (
	"math"

	"loan-calculator/domain"
)

// BuildSchedule lays out the loan month by month. Balances are carried at
// full precision; the last row pays off whatever remains so the schedule
// always ends at zero.
func BuildSchedule(input domain.LoanInput) (domain.Schedule, error) {
	if err := validateLoanInput(input); err != nil {
		return domain.Schedule{}, err
	}

	schedule := domain.Schedule{Input: input, Rows: []domain.ScheduleRow{}}
	if input.Amount == 0 {
		return schedule, nil
	}

	months := MonthsCount(input.TermYears)
	rate := MonthlyRate(input.InterestRate)
	emi := monthlyPayment(input.Amount, rate, months)

	balance := input.Amount
	totalInterest := 0.0
	totalPayment := 0.0

	for month := 1; month <= months; month++ {
		interest := balance * rate
		principal := emi - interest
		payment := emi

		if month == months || principal >= balance {
			principal = balance
			payment = principal + interest
		}

		balance -= principal
		if math.Abs(balance) < BalanceTolerance {
			balance = 0
		}

		totalInterest += interest
		totalPayment += payment

		schedule.Rows = append(schedule.Rows, domain.ScheduleRow{
			Month:     month,
			Payment:   roundTo2Decimals(payment),
			Principal: roundTo2Decimals(principal),
			Interest:  roundTo2Decimals(interest),
			Balance:   roundTo2Decimals(balance),
		})

		if balance == 0 {
			break
		}
	}

	schedule.TotalInterest = roundTo2Decimals(totalInterest)
	schedule.TotalPayment = roundTo2Decimals(totalPayment)
	return schedule, nil
}
