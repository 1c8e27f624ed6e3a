package project

import (
	"context"
	"sort"
)

type StubRepository struct {
	projects map[int]Project
	owners   map[int]int
	nextId   int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{projects: make(map[int]Project), owners: make(map[int]int), nextId: 1}
}

func (s *StubRepository) Create(_ context.Context, userId int, project Project) (Project, error) {
	project.Id = s.nextId
	s.nextId++
	s.projects[project.Id] = project
	s.owners[project.Id] = userId
	return project, nil
}

func (s *StubRepository) GetAll(_ context.Context, userId int) ([]Project, error) {
	projects := make([]Project, 0, len(s.projects))
	for id, p := range s.projects {
		if s.owners[id] == userId {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Id < projects[j].Id })
	return projects, nil
}

func (s *StubRepository) GetById(_ context.Context, userId int, id int) (Project, error) {
	p, ok := s.projects[id]
	if !ok || s.owners[id] != userId {
		return Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (s *StubRepository) GetByClient(ctx context.Context, userId int, clientId int) ([]Project, error) {
	all, _ := s.GetAll(ctx, userId)
	projects := make([]Project, 0, len(all))
	for _, p := range all {
		if p.ClientId == clientId {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *StubRepository) GetActive(ctx context.Context, userId int) ([]Project, error) {
	all, _ := s.GetAll(ctx, userId)
	projects := make([]Project, 0, len(all))
	for _, p := range all {
		if p.IsActive() {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *StubRepository) Update(_ context.Context, userId int, project Project) (Project, error) {
	if _, ok := s.projects[project.Id]; !ok || s.owners[project.Id] != userId {
		return Project{}, ErrProjectNotFound
	}
	s.projects[project.Id] = project
	return project, nil
}

func (s *StubRepository) Delete(_ context.Context, userId int, id int) error {
	if _, ok := s.projects[id]; !ok || s.owners[id] != userId {
		return ErrProjectNotFound
	}
	delete(s.projects, id)
	delete(s.owners, id)
	return nil
}

func (s *StubRepository) CountActive(_ context.Context, userId int) (int, error) {
	count := 0
	for id, p := range s.projects {
		if s.owners[id] == userId && p.IsActive() {
			count++
		}
	}
	return count, nil
}
