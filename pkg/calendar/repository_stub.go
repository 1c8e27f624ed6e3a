package calendar

import (
	"context"
	"sort"
	"time"
)

type StubRepository struct {
	events map[int]Event
	owners map[int]int
	nextId int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{events: make(map[int]Event), owners: make(map[int]int), nextId: 1}
}

func (s *StubRepository) Create(_ context.Context, userId int, event Event) (Event, error) {
	event.Id = s.nextId
	s.nextId++
	s.events[event.Id] = event
	s.owners[event.Id] = userId
	return event, nil
}

func (s *StubRepository) GetAll(_ context.Context, userId int) ([]Event, error) {
	events := make([]Event, 0, len(s.events))
	for id, e := range s.events {
		if s.owners[id] == userId {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartTime.Before(events[j].StartTime) })
	return events, nil
}

func (s *StubRepository) GetById(_ context.Context, userId int, id int) (Event, error) {
	e, ok := s.events[id]
	if !ok || s.owners[id] != userId {
		return Event{}, ErrEventNotFound
	}
	return e, nil
}

func (s *StubRepository) GetUpcoming(ctx context.Context, userId int, after time.Time, limit int) ([]Event, error) {
	all, _ := s.GetAll(ctx, userId)
	upcoming := make([]Event, 0, len(all))
	for _, e := range all {
		if e.StartTime.After(after) {
			upcoming = append(upcoming, e)
		}
	}
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

func (s *StubRepository) Update(_ context.Context, userId int, event Event) (Event, error) {
	if _, ok := s.events[event.Id]; !ok || s.owners[event.Id] != userId {
		return Event{}, ErrEventNotFound
	}
	s.events[event.Id] = event
	return event, nil
}

func (s *StubRepository) Delete(_ context.Context, userId int, id int) error {
	if _, ok := s.events[id]; !ok || s.owners[id] != userId {
		return ErrEventNotFound
	}
	delete(s.events, id)
	delete(s.owners, id)
	return nil
}
