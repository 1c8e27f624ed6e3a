package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/user"
)

var ErrEventDataInvalid = errors.New("event data invalid")

type Service interface {
	Create(ctx context.Context, event Event) (Event, error)
	GetAll(ctx context.Context) ([]Event, error)
	GetById(ctx context.Context, id int) (Event, error)
	GetUpcoming(ctx context.Context, limit int) ([]Event, error)
	Update(ctx context.Context, event Event) (Event, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repository Repository
	clock      utils.Clock
}

func NewService(repository Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repository: repository, clock: clock}
}

func validate(event Event) error {
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", ErrEventDataInvalid)
	}
	if event.EndTime.Before(event.StartTime) {
		return fmt.Errorf("%w: end before start", ErrEventDataInvalid)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, event Event) (Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(event); err != nil {
		return Event{}, err
	}
	return s.repository.Create(ctx, userId, event)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetById(ctx, userId, id)
}

func (s *ServiceImpl) GetUpcoming(ctx context.Context, limit int) ([]Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if limit <= 0 {
		limit = 5
	}
	return s.repository.GetUpcoming(ctx, userId, s.clock.Now(), limit)
}

func (s *ServiceImpl) Update(ctx context.Context, event Event) (Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(event); err != nil {
		return Event{}, err
	}
	return s.repository.Update(ctx, userId, event)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.Delete(ctx, userId, id)
}
