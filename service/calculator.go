package service

import (
	"fmt"
	"math"
	"slices"

	"loan-calculator/domain"
)

// NewState returns the calculator's initial state.
func NewState() domain.State {
	return domain.State{
		HomeValue:    DefaultHomeValue,
		DownPayment:  DefaultDownPayment,
		LoanAmount:   DefaultLoanAmount,
		InterestRate: DefaultInterestRate,
		TermYears:    DefaultTermYears,
	}
}

// clamp bounds v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetHomeValue resets the down payment to DownPaymentRatio of the new home
// value and gives the rest to the loan.
func SetHomeValue(s domain.State, v float64) domain.State {
	v = clamp(v, MinHomeValue, MaxHomeValue)
	s.HomeValue = v
	s.DownPayment = math.Round(v * DownPaymentRatio)
	s.LoanAmount = v - s.DownPayment
	return s
}

func SetDownPayment(s domain.State, d float64) domain.State {
	d = clamp(d, 0, s.HomeValue)
	s.DownPayment = d
	s.LoanAmount = s.HomeValue - d
	return s
}

func SetLoanAmount(s domain.State, l float64) domain.State {
	l = clamp(l, 0, s.HomeValue)
	s.LoanAmount = l
	s.DownPayment = s.HomeValue - l
	return s
}

func SetInterestRate(s domain.State, r float64) domain.State {
	s.InterestRate = clamp(r, MinInterestRate, MaxInterestRate)
	return s
}

// SetTermYears rejects terms outside TermOptions and leaves s unchanged.
func SetTermYears(s domain.State, y int) (domain.State, error) {
	if !slices.Contains(TermOptions, y) {
		return s, fmt.Errorf("%w: got %d", ErrInvalidTerm, y)
	}
	s.TermYears = y
	return s, nil
}

// Apply routes a raw change event to the setter for its field.
func Apply(s domain.State, field domain.Field, raw float64) (domain.State, error) {
	switch field {
	case domain.FieldHomeValue:
		return SetHomeValue(s, raw), nil
	case domain.FieldDownPayment:
		return SetDownPayment(s, raw), nil
	case domain.FieldLoanAmount:
		return SetLoanAmount(s, raw), nil
	case domain.FieldInterestRate:
		return SetInterestRate(s, raw), nil
	case domain.FieldTermYears:
		if math.IsNaN(raw) || raw != math.Trunc(raw) || math.Abs(raw) > math.MaxInt32 {
			return s, fmt.Errorf("%w: got %v", ErrInvalidTerm, raw)
		}
		return SetTermYears(s, int(raw))
	}
	return s, fmt.Errorf("%w: %q", ErrUnknownField, field)
}
