package repository

import (
	"context"

	"loan-calculator/domain"
)

type LoanRepository interface {
	Save(ctx context.Context, input domain.LoanInput, result domain.LoanResult) error
}
