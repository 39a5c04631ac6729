package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"loan-calculator/domain"
	"loan-calculator/repository"
)

// CalculatorService manages calculator sessions. Each session is one
// calculator instance: it starts at the default state and lives until it is
// deleted or expires in the state repository.
type CalculatorService struct {
	states repository.StateRepository
	logger *slog.Logger
}

func NewCalculatorService(states repository.StateRepository, logger *slog.Logger) *CalculatorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalculatorService{states: states, logger: logger}
}

func (s *CalculatorService) load(ctx context.Context, id string) (domain.State, error) {
	state, err := s.states.Load(ctx, id)
	if errors.Is(err, repository.ErrStateNotFound) {
		return domain.State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return state, err
}

// Create starts a new session and returns its id with the initial view.
func (s *CalculatorService) Create(ctx context.Context) (string, domain.View, error) {
	id := uuid.NewString()
	state := NewState()
	if err := s.states.Store(ctx, id, state); err != nil {
		return "", domain.View{}, err
	}
	s.logger.Debug("calculator session created", "session", id)
	return id, Render(state), nil
}

func (s *CalculatorService) Get(ctx context.Context, id string) (domain.View, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return domain.View{}, err
	}
	return Render(state), nil
}

// State returns the raw state of a session.
func (s *CalculatorService) State(ctx context.Context, id string) (domain.State, error) {
	return s.load(ctx, id)
}

// Update applies one change event and returns the re-rendered view. The
// repository applies it atomically per session, so concurrent events on one
// session are serialized. A rejected change leaves the stored state untouched.
func (s *CalculatorService) Update(
	ctx context.Context,
	id string,
	change domain.FieldChange,
) (domain.View, error) {
	next, err := s.states.Update(ctx, id, func(state domain.State) (domain.State, error) {
		return Apply(state, change.Field, change.Value)
	})
	if errors.Is(err, repository.ErrStateNotFound) {
		return domain.View{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return domain.View{}, err
	}

	s.logger.Debug("calculator field updated",
		"session", id,
		"field", change.Field,
		"value", change.Value,
	)
	return Render(next), nil
}

// Delete tears a session down.
func (s *CalculatorService) Delete(ctx context.Context, id string) error {
	err := s.states.Delete(ctx, id)
	if errors.Is(err, repository.ErrStateNotFound) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err == nil {
		s.logger.Debug("calculator session deleted", "session", id)
	}
	return err
}
