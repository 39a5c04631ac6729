package service

import (
	"errors"
	"math"
	"testing"

	"loan-calculator/domain"
)

func TestBuildSchedule_PaysOffLoan(t *testing.T) {
	input := domain.LoanInput{Amount: 2400, InterestRate: 5, TermYears: 5}

	schedule, err := BuildSchedule(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(schedule.Rows) != 60 {
		t.Fatalf("expected 60 rows, got %d", len(schedule.Rows))
	}

	last := schedule.Rows[len(schedule.Rows)-1]
	if last.Balance != 0 {
		t.Errorf("expected zero final balance, got %.2f", last.Balance)
	}

	principal := 0.0
	for i, row := range schedule.Rows {
		if row.Month != i+1 {
			t.Errorf("row %d has month %d", i, row.Month)
		}
		principal += row.Principal
	}
	if math.Abs(principal-2400) > 0.5 {
		t.Errorf("principal paid %.2f, expected about 2400", principal)
	}

	want := Amortize(2400, 5, 5)
	if math.Abs(schedule.TotalInterest-want.TotalInterest) > 0.01 {
		t.Errorf("expected total interest %.2f, got %.2f", want.TotalInterest, schedule.TotalInterest)
	}
	if schedule.Rows[0].Interest != 10 {
		t.Errorf("expected first month interest 10.00, got %.2f", schedule.Rows[0].Interest)
	}
	if schedule.Rows[0].Payment != want.MonthlyPayment {
		t.Errorf("expected payment %.2f, got %.2f", want.MonthlyPayment, schedule.Rows[0].Payment)
	}
}

func TestBuildSchedule_BalanceDecreases(t *testing.T) {
	schedule, err := BuildSchedule(domain.LoanInput{Amount: 8000, InterestRate: 18, TermYears: 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(schedule.Rows); i++ {
		if schedule.Rows[i].Balance > schedule.Rows[i-1].Balance {
			t.Fatalf("balance grew at month %d", schedule.Rows[i].Month)
		}
	}
}

func TestBuildSchedule_ZeroAmount(t *testing.T) {
	schedule, err := BuildSchedule(domain.LoanInput{Amount: 0, InterestRate: 5, TermYears: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schedule.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(schedule.Rows))
	}
}

func TestBuildSchedule_Invalid(t *testing.T) {
	_, err := BuildSchedule(domain.LoanInput{Amount: 100, InterestRate: 5, TermYears: 0})
	if !errors.Is(err, ErrInvalidTermLength) {
		t.Errorf("expected ErrInvalidTermLength, got %v", err)
	}
}
