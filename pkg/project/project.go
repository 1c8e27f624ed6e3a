package project

import "time"

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusOnHold     Status = "on_hold"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusOnHold, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

type Project struct {
	Id          int
	Name        string
	Description string
	ClientId    int
	Status      Status
	StartDate   *time.Time
	Deadline    *time.Time
	CompletedAt *time.Time
	Budget      *float64
	Progress    int
	CreatedAt   time.Time
}

// IsActive reports whether the project still has work ahead of it.
func (p Project) IsActive() bool {
	return p.Status == StatusNotStarted || p.Status == StatusInProgress
}
