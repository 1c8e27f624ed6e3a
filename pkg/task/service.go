package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/user"
)

var ErrTaskDataInvalid = errors.New("task data invalid")

type Service interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetAll(ctx context.Context) ([]Task, error)
	GetById(ctx context.Context, id int) (Task, error)
	GetByProject(ctx context.Context, projectId int) ([]Task, error)
	GetUpcoming(ctx context.Context, limit int) ([]Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repository Repository
	clock      utils.Clock
}

func NewService(repository Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repository: repository, clock: clock}
}

func validate(task Task) error {
	if task.Title == "" {
		return fmt.Errorf("%w: title is required", ErrTaskDataInvalid)
	}
	if task.Status != "" && !task.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrTaskDataInvalid, task.Status)
	}
	if task.Priority != "" && !task.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrTaskDataInvalid, task.Priority)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, task Task) (Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Task{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(task); err != nil {
		return Task{}, err
	}
	if task.Status == "" {
		task.Status = StatusTodo
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	return s.repository.Create(ctx, userId, task)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Task{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetById(ctx, userId, id)
}

func (s *ServiceImpl) GetByProject(ctx context.Context, projectId int) ([]Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetByProject(ctx, userId, projectId)
}

func (s *ServiceImpl) GetUpcoming(ctx context.Context, limit int) ([]Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if limit <= 0 {
		limit = 5
	}
	return s.repository.GetUpcoming(ctx, userId, s.clock.Now(), limit)
}

func (s *ServiceImpl) Update(ctx context.Context, task Task) (Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Task{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(task); err != nil {
		return Task{}, err
	}
	existing, err := s.repository.GetById(ctx, userId, task.Id)
	if err != nil {
		return Task{}, err
	}
	task.CompletedAt = existing.CompletedAt
	if task.Status == StatusCompleted && existing.Status != StatusCompleted {
		now := s.clock.Now()
		task.CompletedAt = &now
	}
	return s.repository.Update(ctx, userId, task)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.Delete(ctx, userId, id)
}
