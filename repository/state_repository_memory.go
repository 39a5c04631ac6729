package repository

import (
	"context"
	"sync"
	"time"

	"loan-calculator/domain"
)

type stateEntry struct {
	state     domain.State
	expiresAt time.Time
}

// StateRepositoryMemory keeps session state in process memory. Entries idle
// for longer than ttl are treated as gone.
type StateRepositoryMemory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]stateEntry
}

func NewStateRepositoryMemory(ttl time.Duration) *StateRepositoryMemory {
	return &StateRepositoryMemory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]stateEntry),
	}
}

// live returns the entry for id and refreshes its expiry. Callers hold mu.
func (r *StateRepositoryMemory) live(id string) (stateEntry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return stateEntry{}, false
	}
	if r.ttl > 0 && r.now().After(e.expiresAt) {
		delete(r.entries, id)
		return stateEntry{}, false
	}
	e.expiresAt = r.now().Add(r.ttl)
	r.entries[id] = e
	return e, true
}

func (r *StateRepositoryMemory) Load(_ context.Context, id string) (domain.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.live(id)
	if !ok {
		return domain.State{}, ErrStateNotFound
	}
	return e.state, nil
}

// Update holds the repository lock while fn runs; fn must not call back into
// the repository.
func (r *StateRepositoryMemory) Update(_ context.Context, id string, fn UpdateFunc) (domain.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.live(id)
	if !ok {
		return domain.State{}, ErrStateNotFound
	}
	next, err := fn(e.state)
	if err != nil {
		return domain.State{}, err
	}
	e.state = next
	r.entries[id] = e
	return next, nil
}

func (r *StateRepositoryMemory) Store(_ context.Context, id string, state domain.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = stateEntry{state: state, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *StateRepositoryMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return ErrStateNotFound
	}
	delete(r.entries, id)
	return nil
}

// Sweep drops expired entries and reports how many were removed.
func (r *StateRepositoryMemory) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, e := range r.entries {
		if now.After(e.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}
