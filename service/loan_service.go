package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"loan-calculator/domain"
	"loan-calculator/repository"
)

// roundTo2Decimals rounds a float64 to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func MonthsCount(termYears int) int {
	return termYears * 12
}

// MonthlyRate converts an annual percentage rate to a monthly fraction.
func MonthlyRate(annualRate float64) float64 {
	return annualRate / 100 / 12
}

// monthlyPayment is the unrounded EMI.
func monthlyPayment(principal, monthlyRate float64, months int) float64 {
	if principal == 0 || months <= 0 {
		return 0
	}
	n := float64(months)
	if monthlyRate == 0 {
		return principal / n
	}
	growth := math.Pow(1+monthlyRate, n)
	return principal * monthlyRate * growth / (growth - 1)
}

// Amortize computes the equated monthly installment for a loan. Rounding to
// cents happens only on the returned values.
func Amortize(principal, annualRate float64, termYears int) domain.LoanResult {
	months := MonthsCount(termYears)
	emi := monthlyPayment(principal, MonthlyRate(annualRate), months)

	total := emi * float64(months)
	interest := total - principal
	if principal == 0 || months <= 0 {
		interest = 0
	}

	return domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(emi),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(interest),
	}
}

type LoanService struct {
	repo   repository.LoanRepository
	cache  repository.CacheRepository
	logger *slog.Logger
}

// NewLoanService creates a new LoanService with the given repository and cache.
func NewLoanService(repo repository.LoanRepository,
	cache repository.CacheRepository,
	logger *slog.Logger,
) *LoanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoanService{repo: repo, cache: cache, logger: logger}
}

func validateLoanInput(input domain.LoanInput) error {
	if math.IsNaN(input.Amount) || input.Amount < 0 {
		return fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}
	if input.Amount > MaxLoanAmount {
		return fmt.Errorf("%w: exceeds the maximum of $%.2f", ErrInvalidAmount, MaxLoanAmount)
	}
	if math.IsNaN(input.InterestRate) || input.InterestRate < 0 {
		return fmt.Errorf("%w: must not be negative", ErrInvalidRate)
	}
	if input.InterestRate > MaxAPIRate {
		return fmt.Errorf("%w: exceeds the maximum of %.2f%%", ErrInvalidRate, MaxAPIRate)
	}
	if input.TermYears <= 0 {
		return fmt.Errorf("%w: must be at least one year", ErrInvalidTermLength)
	}
	if input.TermYears > MaxAPITermYears {
		return fmt.Errorf("%w: exceeds the maximum of %d years", ErrInvalidTermLength, MaxAPITermYears)
	}
	return nil
}

func cacheKey(input domain.LoanInput) string {
	return fmt.Sprintf("%v:%v:%d", input.Amount, input.InterestRate, input.TermYears)
}

// CalculateLoan validates the input and returns its amortized payment.
// Cache and history failures are logged and do not fail the calculation.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {
	if err := validateLoanInput(input); err != nil {
		return domain.LoanResult{}, err
	}

	key := cacheKey(input)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			var result domain.LoanResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
			s.logger.Warn("discarding unreadable cache entry", "key", key)
		}
	}

	result := Amortize(input.Amount, input.InterestRate, input.TermYears)

	if s.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, string(raw)); err != nil {
				s.logger.Warn("failed to cache loan result", "key", key, "error", err)
			}
		}
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, input, result); err != nil {
			s.logger.Warn("failed to save loan calculation", "error", err)
		}
	}

	return result, nil
}
