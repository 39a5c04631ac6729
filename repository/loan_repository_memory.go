package repository

import (
	"context"
	"sync"

	"loan-calculator/domain"
)

// LoanRecord is one calculation served by the loan API.
type LoanRecord struct {
	Input  domain.LoanInput
	Result domain.LoanResult
}

// LoanRepositoryMemory keeps the most recent calculations in memory.
type LoanRepositoryMemory struct {
	mu    sync.Mutex
	limit int
	data  []LoanRecord
}

// NewLoanRepositoryMemory creates a new in-memory loan repository holding at
// most limit records. limit <= 0 means unbounded.
func NewLoanRepositoryMemory(limit int) *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		limit: limit,
		data:  []LoanRecord{},
	}
}

// Save stores the loan calculation in memory, dropping the oldest record once
// the limit is reached.
func (r *LoanRepositoryMemory) Save(
	_ context.Context,
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, LoanRecord{Input: input, Result: result})
	if r.limit > 0 && len(r.data) > r.limit {
		r.data = r.data[len(r.data)-r.limit:]
	}
	return nil
}

// Recent returns a copy of the stored records, oldest first.
func (r *LoanRepositoryMemory) Recent() []LoanRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LoanRecord, len(r.data))
	copy(out, r.data)
	return out
}
