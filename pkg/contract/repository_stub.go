package contract

import (
	"context"
	"sort"
)

type StubRepository struct {
	contracts map[int]Contract
	owners    map[int]int
	nextId    int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{contracts: make(map[int]Contract), owners: make(map[int]int), nextId: 1}
}

func (s *StubRepository) Create(_ context.Context, userId int, contract Contract) (Contract, error) {
	contract.Id = s.nextId
	s.nextId++
	s.contracts[contract.Id] = contract
	s.owners[contract.Id] = userId
	return contract, nil
}

func (s *StubRepository) GetAll(_ context.Context, userId int) ([]Contract, error) {
	contracts := make([]Contract, 0, len(s.contracts))
	for id, c := range s.contracts {
		if s.owners[id] == userId {
			contracts = append(contracts, c)
		}
	}
	sort.Slice(contracts, func(i, j int) bool { return contracts[i].Id < contracts[j].Id })
	return contracts, nil
}

func (s *StubRepository) GetById(_ context.Context, userId int, id int) (Contract, error) {
	c, ok := s.contracts[id]
	if !ok || s.owners[id] != userId {
		return Contract{}, ErrContractNotFound
	}
	return c, nil
}

func (s *StubRepository) GetByClient(ctx context.Context, userId int, clientId int) ([]Contract, error) {
	all, _ := s.GetAll(ctx, userId)
	contracts := make([]Contract, 0, len(all))
	for _, c := range all {
		if c.ClientId == clientId {
			contracts = append(contracts, c)
		}
	}
	return contracts, nil
}

func (s *StubRepository) Update(_ context.Context, userId int, contract Contract) (Contract, error) {
	if _, ok := s.contracts[contract.Id]; !ok || s.owners[contract.Id] != userId {
		return Contract{}, ErrContractNotFound
	}
	s.contracts[contract.Id] = contract
	return contract, nil
}

func (s *StubRepository) Delete(_ context.Context, userId int, id int) error {
	if _, ok := s.contracts[id]; !ok || s.owners[id] != userId {
		return ErrContractNotFound
	}
	delete(s.contracts, id)
	delete(s.owners, id)
	return nil
}
