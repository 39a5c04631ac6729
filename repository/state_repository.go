package repository

import (
	"context"
	"errors"

	"loan-calculator/domain"
)

var (
	ErrStateNotFound = errors.New("state not found")
	ErrStateConflict = errors.New("state changed concurrently")
)

// UpdateFunc derives a session's next state. Returning an error aborts the
// update and leaves the stored state as it was.
type UpdateFunc func(domain.State) (domain.State, error)

// StateRepository holds the live state of each calculator session. Update
// runs load, fn and store as one step per session, so concurrent changes to
// the same session are never lost.
type StateRepository interface {
	Load(ctx context.Context, id string) (domain.State, error)
	Store(ctx context.Context, id string, state domain.State) error
	Update(ctx context.Context, id string, fn UpdateFunc) (domain.State, error)
	Delete(ctx context.Context, id string) error
}
