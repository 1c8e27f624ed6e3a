package task

import (
	"context"
	"sort"
	"time"
)

type StubRepository struct {
	tasks  map[int]Task
	owners map[int]int
	nextId int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{tasks: make(map[int]Task), owners: make(map[int]int), nextId: 1}
}

func (s *StubRepository) Create(_ context.Context, userId int, task Task) (Task, error) {
	task.Id = s.nextId
	s.nextId++
	s.tasks[task.Id] = task
	s.owners[task.Id] = userId
	return task, nil
}

func (s *StubRepository) GetAll(_ context.Context, userId int) ([]Task, error) {
	tasks := make([]Task, 0, len(s.tasks))
	for id, t := range s.tasks {
		if s.owners[id] == userId {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Id < tasks[j].Id })
	return tasks, nil
}

func (s *StubRepository) GetById(_ context.Context, userId int, id int) (Task, error) {
	t, ok := s.tasks[id]
	if !ok || s.owners[id] != userId {
		return Task{}, ErrTaskNotFound
	}
	return t, nil
}

func (s *StubRepository) GetByProject(ctx context.Context, userId int, projectId int) ([]Task, error) {
	all, _ := s.GetAll(ctx, userId)
	tasks := make([]Task, 0, len(all))
	for _, t := range all {
		if t.ProjectId != nil && *t.ProjectId == projectId {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *StubRepository) GetUpcoming(ctx context.Context, userId int, from time.Time, limit int) ([]Task, error) {
	all, _ := s.GetAll(ctx, userId)
	upcoming := make([]Task, 0, len(all))
	for _, t := range all {
		if t.Status == StatusCompleted {
			continue
		}
		if t.DueDate == nil || !t.DueDate.Before(from) {
			upcoming = append(upcoming, t)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].DueDate == nil {
			return false
		}
		if upcoming[j].DueDate == nil {
			return true
		}
		return upcoming[i].DueDate.Before(*upcoming[j].DueDate)
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

func (s *StubRepository) Update(_ context.Context, userId int, task Task) (Task, error) {
	if _, ok := s.tasks[task.Id]; !ok || s.owners[task.Id] != userId {
		return Task{}, ErrTaskNotFound
	}
	s.tasks[task.Id] = task
	return task, nil
}

func (s *StubRepository) Delete(_ context.Context, userId int, id int) error {
	if _, ok := s.tasks[id]; !ok || s.owners[id] != userId {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	delete(s.owners, id)
	return nil
}
