package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/user"
)

var ErrProjectDataInvalid = errors.New("project data invalid")

type Service interface {
	Create(ctx context.Context, project Project) (Project, error)
	GetAll(ctx context.Context) ([]Project, error)
	GetById(ctx context.Context, id int) (Project, error)
	GetByClient(ctx context.Context, clientId int) ([]Project, error)
	GetActive(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, project Project) (Project, error)
	Delete(ctx context.Context, id int) error
	CountActive(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repository Repository
	clock      utils.Clock
}

func NewService(repository Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repository: repository, clock: clock}
}

func validate(project Project) error {
	if project.Name == "" {
		return fmt.Errorf("%w: name is required", ErrProjectDataInvalid)
	}
	if project.ClientId == 0 {
		return fmt.Errorf("%w: client is required", ErrProjectDataInvalid)
	}
	if project.Status != "" && !project.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrProjectDataInvalid, project.Status)
	}
	if project.Progress < 0 || project.Progress > 100 {
		return fmt.Errorf("%w: progress must be between 0 and 100", ErrProjectDataInvalid)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, project Project) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(project); err != nil {
		return Project{}, err
	}
	if project.Status == "" {
		project.Status = StatusNotStarted
	}
	return s.repository.Create(ctx, userId, project)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetById(ctx, userId, id)
}

func (s *ServiceImpl) GetByClient(ctx context.Context, clientId int) ([]Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetByClient(ctx, userId, clientId)
}

func (s *ServiceImpl) GetActive(ctx context.Context) ([]Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetActive(ctx, userId)
}

func (s *ServiceImpl) Update(ctx context.Context, project Project) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(project); err != nil {
		return Project{}, err
	}
	existing, err := s.repository.GetById(ctx, userId, project.Id)
	if err != nil {
		return Project{}, err
	}
	project.CompletedAt = existing.CompletedAt
	if project.Status == StatusCompleted && existing.Status != StatusCompleted {
		now := s.clock.Now()
		project.CompletedAt = &now
	}
	return s.repository.Update(ctx, userId, project)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.Delete(ctx, userId, id)
}

// CountActive counts projects that are not_started or in_progress, the same
// rule as GetActive and Project.IsActive.
func (s *ServiceImpl) CountActive(ctx context.Context) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.CountActive(ctx, userId)
}
