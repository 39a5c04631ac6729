package service

import (
	"context"
	"fmt"

	"loan-calculator/domain"
)

type TermService struct {
	loanService *LoanService
}

func NewTermService(loanService *LoanService) *TermService {
	return &TermService{loanService: loanService}
}

// CompareTerms prices the loan for every offered term. With a payment limit,
// the shortest affordable term is recommended since it pays the least
// interest.
func (s *TermService) CompareTerms(
	ctx context.Context,
	input domain.TermComparisonInput,
) (domain.TermComparison, error) {
	if input.MaxMonthlyPayment < 0 {
		return domain.TermComparison{}, fmt.Errorf("%w: maximum monthly payment must not be negative", ErrInvalidAmount)
	}

	out := domain.TermComparison{
		Options: make([]domain.TermOption, 0, len(TermOptions)),
	}

	for _, years := range TermOptions {
		result, err := s.loanService.CalculateLoan(ctx, domain.LoanInput{
			Amount:       input.Amount,
			InterestRate: input.InterestRate,
			TermYears:    years,
		})
		if err != nil {
			return domain.TermComparison{}, err
		}

		affordable := input.MaxMonthlyPayment > 0 && result.MonthlyPayment <= input.MaxMonthlyPayment
		if affordable && out.RecommendedTerm == 0 {
			out.RecommendedTerm = years
		}

		out.Options = append(out.Options, domain.TermOption{
			TermYears:      years,
			MonthlyPayment: result.MonthlyPayment,
			TotalInterest:  result.TotalInterest,
			Affordable:     affordable,
		})
	}

	return out, nil
}
