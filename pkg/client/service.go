package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestio-app/gestio/pkg/user"
)

var ErrClientDataInvalid = errors.New("client data invalid")

type Service interface {
	Create(ctx context.Context, client Client) (Client, error)
	GetAll(ctx context.Context) ([]Client, error)
	GetById(ctx context.Context, id int) (Client, error)
	Update(ctx context.Context, client Client) (Client, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repository Repository
}

func NewService(repository Repository) *ServiceImpl {
	return &ServiceImpl{repository: repository}
}

func (s *ServiceImpl) Create(ctx context.Context, client Client) (Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Client{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if client.Name == "" {
		return Client{}, fmt.Errorf("%w: name is required", ErrClientDataInvalid)
	}
	return s.repository.Create(ctx, userId, client)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Client{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetById(ctx, userId, id)
}

func (s *ServiceImpl) Update(ctx context.Context, client Client) (Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Client{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if client.Name == "" {
		return Client{}, fmt.Errorf("%w: name is required", ErrClientDataInvalid)
	}
	return s.repository.Update(ctx, userId, client)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.Delete(ctx, userId, id)
}

func (s *ServiceImpl) Count(ctx context.Context) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.Count(ctx, userId)
}
