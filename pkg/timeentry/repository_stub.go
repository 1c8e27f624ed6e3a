package timeentry

import (
	"context"
	"sort"
	"time"
)

type StubRepository struct {
	entries map[int]TimeEntry
	nextId  int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{entries: make(map[int]TimeEntry), nextId: 1}
}

func (s *StubRepository) Create(_ context.Context, entry TimeEntry) (TimeEntry, error) {
	entry.Id = s.nextId
	s.nextId++
	s.entries[entry.Id] = entry
	return entry, nil
}

func (s *StubRepository) GetById(_ context.Context, userId int, id int) (TimeEntry, error) {
	e, ok := s.entries[id]
	if !ok || e.UserId != userId {
		return TimeEntry{}, ErrEntryNotFound
	}
	return e, nil
}

func (s *StubRepository) GetRunning(_ context.Context, userId int) (*TimeEntry, error) {
	for _, e := range s.entries {
		if e.UserId == userId && e.IsRunning() {
			running := e
			return &running, nil
		}
	}
	return nil, nil
}

func (s *StubRepository) GetAll(_ context.Context, userId int) ([]TimeEntry, error) {
	entries := make([]TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.UserId == userId {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Id < entries[j].Id })
	return entries, nil
}

func (s *StubRepository) GetInRange(ctx context.Context, userId int, from, to time.Time) ([]TimeEntry, error) {
	all, _ := s.GetAll(ctx, userId)
	entries := make([]TimeEntry, 0, len(all))
	for _, e := range all {
		if !e.StartTime.Before(from) && !e.StartTime.After(to) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *StubRepository) Update(_ context.Context, userId int, entry TimeEntry) (TimeEntry, error) {
	existing, ok := s.entries[entry.Id]
	if !ok || existing.UserId != userId {
		return TimeEntry{}, ErrEntryNotFound
	}
	entry.UserId = userId
	s.entries[entry.Id] = entry
	return entry, nil
}

func (s *StubRepository) Delete(_ context.Context, userId int, id int) error {
	e, ok := s.entries[id]
	if !ok || e.UserId != userId {
		return ErrEntryNotFound
	}
	delete(s.entries, id)
	return nil
}
