package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/user"
)

var ErrContractDataInvalid = errors.New("contract data invalid")

type Service interface {
	Create(ctx context.Context, contract Contract) (Contract, error)
	GetAll(ctx context.Context) ([]Contract, error)
	GetById(ctx context.Context, id int) (Contract, error)
	GetByClient(ctx context.Context, clientId int) ([]Contract, error)
	Update(ctx context.Context, contract Contract) (Contract, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repository Repository
	clock      utils.Clock
}

func NewService(repository Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repository: repository, clock: clock}
}

func validate(contract Contract) error {
	if contract.Title == "" {
		return fmt.Errorf("%w: title is required", ErrContractDataInvalid)
	}
	if contract.ClientId == 0 {
		return fmt.Errorf("%w: client is required", ErrContractDataInvalid)
	}
	if contract.Status != "" && !contract.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrContractDataInvalid, contract.Status)
	}
	if contract.StartDate != nil && contract.EndDate != nil && contract.EndDate.Before(*contract.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrContractDataInvalid)
	}
	return nil
}

// stampSigned moves the contract to signed once both parties have signed.
func (s *ServiceImpl) stampSigned(contract *Contract) {
	if contract.FullySigned() && contract.SignedAt == nil {
		now := s.clock.Now()
		contract.SignedAt = &now
		contract.Status = StatusSigned
	}
}

func (s *ServiceImpl) Create(ctx context.Context, contract Contract) (Contract, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Contract{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(contract); err != nil {
		return Contract{}, err
	}
	if contract.Status == "" {
		contract.Status = StatusDraft
	}
	s.stampSigned(&contract)
	return s.repository.Create(ctx, userId, contract)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Contract, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Contract, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Contract{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetById(ctx, userId, id)
}

func (s *ServiceImpl) GetByClient(ctx context.Context, clientId int) ([]Contract, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetByClient(ctx, userId, clientId)
}

func (s *ServiceImpl) Update(ctx context.Context, contract Contract) (Contract, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Contract{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(contract); err != nil {
		return Contract{}, err
	}
	existing, err := s.repository.GetById(ctx, userId, contract.Id)
	if err != nil {
		return Contract{}, err
	}
	contract.SignedAt = existing.SignedAt
	s.stampSigned(&contract)
	return s.repository.Update(ctx, userId, contract)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.Delete(ctx, userId, id)
}
