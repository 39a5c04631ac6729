package service

import (
	"errors"
	"math"
	"testing"

	"loan-calculator/domain"
)

func assertComplement(t *testing.T, s domain.State) {
	t.Helper()
	if s.DownPayment+s.LoanAmount != s.HomeValue {
		t.Errorf("down %.2f + loan %.2f != home %.2f", s.DownPayment, s.LoanAmount, s.HomeValue)
	}
}

func TestNewState_Defaults(t *testing.T) {
	s := NewState()

	want := domain.State{HomeValue: 3000, DownPayment: 600, LoanAmount: 2400, InterestRate: 5, TermYears: 5}
	if s != want {
		t.Fatalf("expected %+v, got %+v", want, s)
	}
	assertComplement(t, s)
}

func TestSetHomeValue_ResetsDownPayment(t *testing.T) {
	for v := MinHomeValue; v <= MaxHomeValue; v += 50 {
		s := SetHomeValue(NewState(), v)

		if s.HomeValue != v {
			t.Fatalf("home %.0f: got %.2f", v, s.HomeValue)
		}
		if s.DownPayment != math.Round(0.2*v) {
			t.Errorf("home %.0f: expected down %.0f, got %.2f", v, math.Round(0.2*v), s.DownPayment)
		}
		if s.LoanAmount != v-s.DownPayment {
			t.Errorf("home %.0f: expected loan %.2f, got %.2f", v, v-s.DownPayment, s.LoanAmount)
		}
		assertComplement(t, s)
	}
}

func TestSetHomeValue_Clamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{999, 1000},
		{10001, 10000},
		{-5, 1000},
		{math.NaN(), 1000},
		{math.Inf(1), 10000},
		{math.Inf(-1), 1000},
	}

	for _, tt := range tests {
		s := SetHomeValue(NewState(), tt.in)
		if s.HomeValue != tt.want {
			t.Errorf("SetHomeValue(%v): expected %.0f, got %.2f", tt.in, tt.want, s.HomeValue)
		}
		assertComplement(t, s)
	}
}

func TestSetHomeValue_DoesNotTouchRateOrTerm(t *testing.T) {
	s := NewState()
	s.InterestRate = 7.5
	s.TermYears = 20

	s = SetHomeValue(s, 8000)
	if s.InterestRate != 7.5 || s.TermYears != 20 {
		t.Errorf("rate/term changed: %+v", s)
	}
}

func TestSetDownPayment_Complement(t *testing.T) {
	for _, h := range []float64{1000, 3000, 7700, 10000} {
		base := SetHomeValue(NewState(), h)
		for d := 0.0; d <= h; d += 50 {
			s := SetDownPayment(base, d)
			if s.DownPayment != d {
				t.Fatalf("home %.0f: expected down %.0f, got %.2f", h, d, s.DownPayment)
			}
			if s.LoanAmount != h-d {
				t.Errorf("home %.0f down %.0f: expected loan %.0f, got %.2f", h, d, h-d, s.LoanAmount)
			}
			if s.HomeValue != h {
				t.Errorf("home value changed to %.2f", s.HomeValue)
			}
		}
	}
}

func TestSetDownPayment_Clamps(t *testing.T) {
	s := SetDownPayment(NewState(), 5000)
	if s.DownPayment != 3000 || s.LoanAmount != 0 {
		t.Errorf("expected down 3000 loan 0, got %+v", s)
	}

	s = SetDownPayment(NewState(), -10)
	if s.DownPayment != 0 || s.LoanAmount != 3000 {
		t.Errorf("expected down 0 loan 3000, got %+v", s)
	}
}

func TestSetLoanAmount_Complement(t *testing.T) {
	for _, h := range []float64{1000, 3000, 9900} {
		base := SetHomeValue(NewState(), h)
		for l := 0.0; l <= h; l += 50 {
			s := SetLoanAmount(base, l)
			if s.LoanAmount != l {
				t.Fatalf("expected loan %.0f, got %.2f", l, s.LoanAmount)
			}
			if s.DownPayment != h-l {
				t.Errorf("home %.0f loan %.0f: expected down %.0f, got %.2f", h, l, h-l, s.DownPayment)
			}
		}
	}
}

func TestSetLoanAmount_Clamps(t *testing.T) {
	s := SetLoanAmount(NewState(), 3500)
	if s.LoanAmount != 3000 || s.DownPayment != 0 {
		t.Errorf("expected loan 3000 down 0, got %+v", s)
	}

	s = SetLoanAmount(NewState(), math.NaN())
	if s.LoanAmount != 0 || s.DownPayment != 3000 {
		t.Errorf("expected loan 0 down 3000, got %+v", s)
	}
}

func TestSetInterestRate(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2, 2},
		{18, 18},
		{7.3, 7.3},
		{1.9, 2},
		{0, 2},
		{25, 18},
	}

	for _, tt := range tests {
		before := NewState()
		s := SetInterestRate(before, tt.in)
		if s.InterestRate != tt.want {
			t.Errorf("SetInterestRate(%v): expected %v, got %v", tt.in, tt.want, s.InterestRate)
		}
		s.InterestRate = before.InterestRate
		if s != before {
			t.Errorf("SetInterestRate(%v) changed other fields: %+v", tt.in, s)
		}
	}
}

func TestSetInterestRate_Idempotent(t *testing.T) {
	once := SetInterestRate(NewState(), 9.4)
	twice := SetInterestRate(once, 9.4)

	if once != twice {
		t.Errorf("expected %+v, got %+v", once, twice)
	}
}

func TestSetTermYears(t *testing.T) {
	for _, y := range TermOptions {
		s, err := SetTermYears(NewState(), y)
		if err != nil {
			t.Fatalf("term %d: unexpected error: %v", y, err)
		}
		if s.TermYears != y {
			t.Errorf("expected term %d, got %d", y, s.TermYears)
		}
	}
}

func TestSetTermYears_RejectsOutOfSet(t *testing.T) {
	before := NewState()

	for _, y := range []int{0, 7, -5, 31, 100} {
		s, err := SetTermYears(before, y)
		if !errors.Is(err, ErrInvalidTerm) {
			t.Errorf("term %d: expected ErrInvalidTerm, got %v", y, err)
		}
		if s != before {
			t.Errorf("term %d: state changed to %+v", y, s)
		}
	}
}

func TestApply_Dispatch(t *testing.T) {
	s, err := Apply(NewState(), domain.FieldHomeValue, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DownPayment != 1000 || s.LoanAmount != 4000 {
		t.Errorf("unexpected state after home change: %+v", s)
	}

	s, err = Apply(s, domain.FieldLoanAmount, 4500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DownPayment != 500 {
		t.Errorf("expected down 500, got %.2f", s.DownPayment)
	}

	s, err = Apply(s, domain.FieldTermYears, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TermYears != 15 {
		t.Errorf("expected term 15, got %d", s.TermYears)
	}
}

func TestApply_Errors(t *testing.T) {
	before := NewState()

	tests := []struct {
		name  string
		field domain.Field
		value float64
		want  error
	}{
		{"unknown field", "price", 10, ErrUnknownField},
		{"fractional term", domain.FieldTermYears, 10.5, ErrInvalidTerm},
		{"nan term", domain.FieldTermYears, math.NaN(), ErrInvalidTerm},
		{"infinite term", domain.FieldTermYears, math.Inf(1), ErrInvalidTerm},
		{"term out of set", domain.FieldTermYears, 7, ErrInvalidTerm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Apply(before, tt.field, tt.value)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if s != before {
				t.Errorf("state changed to %+v", s)
			}
		})
	}
}
