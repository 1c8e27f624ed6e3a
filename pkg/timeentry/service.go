package timeentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/user"
)

var (
	ErrTimerAlreadyRunning = errors.New("a timer is already running")
	ErrInvalidTimeRange    = errors.New("end time must not be before start time")
)

type Service interface {
	Start(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	Stop(ctx context.Context, id int) (TimeEntry, error)
	Running(ctx context.Context) (*TimeEntry, error)
	CreateManual(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	GetById(ctx context.Context, id int) (TimeEntry, error)
	ListForUser(ctx context.Context) ([]TimeEntry, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]TimeEntry, error)
	Update(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repository Repository
	clock      utils.Clock
}

func NewService(repository Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repository: repository, clock: clock}
}

// Start opens a timer for the caller. Only one timer may run at a time,
// so a second start is rejected rather than silently closing the first.
func (s *ServiceImpl) Start(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	running, err := s.repository.GetRunning(ctx, userId)
	if err != nil {
		return TimeEntry{}, err
	}
	if running != nil {
		return TimeEntry{}, ErrTimerAlreadyRunning
	}
	entry.UserId = userId
	entry.StartTime = s.clock.Now()
	entry.EndTime = nil
	entry.Duration = nil
	return s.repository.Create(ctx, entry)
}

// Stop closes the given entry. Stopping an already stopped entry is a no-op.
func (s *ServiceImpl) Stop(ctx context.Context, id int) (TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	entry, err := s.repository.GetById(ctx, userId, id)
	if err != nil {
		return TimeEntry{}, err
	}
	if !entry.IsRunning() {
		return entry, nil
	}
	end := s.clock.Now()
	duration := durationHours(entry.StartTime, end)
	entry.EndTime = &end
	entry.Duration = &duration
	return s.repository.Update(ctx, userId, entry)
}

// Running returns the caller's open timer, or nil when none is running.
func (s *ServiceImpl) Running(ctx context.Context) (*TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetRunning(ctx, userId)
}

// CreateManual records a finished span with both timestamps supplied.
func (s *ServiceImpl) CreateManual(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if entry.EndTime != nil {
		if entry.EndTime.Before(entry.StartTime) {
			return TimeEntry{}, ErrInvalidTimeRange
		}
		duration := durationHours(entry.StartTime, *entry.EndTime)
		entry.Duration = &duration
	}
	entry.UserId = userId
	return s.repository.Create(ctx, entry)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetById(ctx, userId, id)
}

func (s *ServiceImpl) ListForUser(ctx context.Context) ([]TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetAll(ctx, userId)
}

func (s *ServiceImpl) ListInRange(ctx context.Context, from, to time.Time) ([]TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetInRange(ctx, userId, from, to)
}

// Update recomputes the duration whenever an end time is present.
func (s *ServiceImpl) Update(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repository.GetById(ctx, userId, entry.Id)
	if err != nil {
		return TimeEntry{}, err
	}
	if entry.StartTime.IsZero() {
		entry.StartTime = existing.StartTime
	}
	if entry.EndTime != nil {
		if entry.EndTime.Before(entry.StartTime) {
			return TimeEntry{}, ErrInvalidTimeRange
		}
		duration := durationHours(entry.StartTime, *entry.EndTime)
		entry.Duration = &duration
	} else {
		entry.Duration = nil
	}
	return s.repository.Update(ctx, userId, entry)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.Delete(ctx, userId, id)
}
