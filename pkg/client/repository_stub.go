package client

import (
	"context"
	"sort"
)

type StubRepository struct {
	clients map[int]Client
	owners  map[int]int
	nextId  int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{clients: make(map[int]Client), owners: make(map[int]int), nextId: 1}
}

func (s *StubRepository) Create(_ context.Context, userId int, client Client) (Client, error) {
	client.Id = s.nextId
	s.nextId++
	s.clients[client.Id] = client
	s.owners[client.Id] = userId
	return client, nil
}

func (s *StubRepository) GetAll(_ context.Context, userId int) ([]Client, error) {
	clients := make([]Client, 0, len(s.clients))
	for id, c := range s.clients {
		if s.owners[id] == userId {
			clients = append(clients, c)
		}
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Id < clients[j].Id })
	return clients, nil
}

func (s *StubRepository) GetById(_ context.Context, userId int, id int) (Client, error) {
	c, ok := s.clients[id]
	if !ok || s.owners[id] != userId {
		return Client{}, ErrClientNotFound
	}
	return c, nil
}

func (s *StubRepository) Update(_ context.Context, userId int, client Client) (Client, error) {
	if _, ok := s.clients[client.Id]; !ok || s.owners[client.Id] != userId {
		return Client{}, ErrClientNotFound
	}
	s.clients[client.Id] = client
	return client, nil
}

func (s *StubRepository) Delete(_ context.Context, userId int, id int) error {
	if _, ok := s.clients[id]; !ok || s.owners[id] != userId {
		return ErrClientNotFound
	}
	delete(s.clients, id)
	delete(s.owners, id)
	return nil
}

func (s *StubRepository) Count(_ context.Context, userId int) (int, error) {
	count := 0
	for id := range s.clients {
		if s.owners[id] == userId {
			count++
		}
	}
	return count, nil
}
