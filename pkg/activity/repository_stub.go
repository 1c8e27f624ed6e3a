package activity

import (
	"context"
	"time"
)

type StubRepository struct {
	activities []Activity
	nextId     int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{nextId: 1}
}

func (s *StubRepository) Create(_ context.Context, activity Activity) (Activity, error) {
	activity.Id = s.nextId
	s.nextId++
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	s.activities = append(s.activities, activity)
	return activity, nil
}

func (s *StubRepository) GetRecent(_ context.Context, userId int, limit int) ([]Activity, error) {
	recent := make([]Activity, 0, limit)
	for i := len(s.activities) - 1; i >= 0 && len(recent) < limit; i-- {
		if s.activities[i].UserId == userId {
			recent = append(recent, s.activities[i])
		}
	}
	return recent, nil
}
