package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/user"
)

var ErrInvoiceDataInvalid = errors.New("invoice data invalid")

type Service interface {
	Create(ctx context.Context, invoice Invoice) (Invoice, error)
	GetAll(ctx context.Context) ([]Invoice, error)
	GetById(ctx context.Context, id int) (Invoice, error)
	GetByClient(ctx context.Context, clientId int) ([]Invoice, error)
	GetByStatus(ctx context.Context, status Status) ([]Invoice, error)
	Update(ctx context.Context, invoice Invoice) (Invoice, error)
	Delete(ctx context.Context, id int) error
	CountPending(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repository Repository
	clock      utils.Clock
}

func NewService(repository Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repository: repository, clock: clock}
}

func validate(invoice Invoice) error {
	if invoice.InvoiceNumber == "" {
		return fmt.Errorf("%w: invoice number is required", ErrInvoiceDataInvalid)
	}
	if invoice.ClientId == 0 {
		return fmt.Errorf("%w: client is required", ErrInvoiceDataInvalid)
	}
	if invoice.Status != "" && !invoice.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvoiceDataInvalid, invoice.Status)
	}
	if invoice.DueDate.Before(invoice.IssueDate) {
		return fmt.Errorf("%w: due date before issue date", ErrInvoiceDataInvalid)
	}
	return nil
}

// stampPaid fills the payment fields on the transition into paid. The paid
// amount defaults to the invoice total when the caller did not supply one.
func (s *ServiceImpl) stampPaid(invoice *Invoice) {
	if invoice.PaidAt == nil {
		now := s.clock.Now()
		invoice.PaidAt = &now
	}
	if invoice.PaidAmount == nil {
		total := invoice.Total
		invoice.PaidAmount = &total
	}
}

func (s *ServiceImpl) Create(ctx context.Context, invoice Invoice) (Invoice, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Invoice{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(invoice); err != nil {
		return Invoice{}, err
	}
	if invoice.Status == "" {
		invoice.Status = StatusDraft
	}
	if invoice.Status == StatusPaid {
		s.stampPaid(&invoice)
	}
	return s.repository.Create(ctx, userId, invoice)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Invoice, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Invoice, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Invoice{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetById(ctx, userId, id)
}

func (s *ServiceImpl) GetByClient(ctx context.Context, clientId int) ([]Invoice, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.GetByClient(ctx, userId, clientId)
}

func (s *ServiceImpl) GetByStatus(ctx context.Context, status Status) ([]Invoice, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvoiceDataInvalid, status)
	}
	return s.repository.GetByStatus(ctx, userId, status)
}

func (s *ServiceImpl) Update(ctx context.Context, invoice Invoice) (Invoice, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Invoice{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(invoice); err != nil {
		return Invoice{}, err
	}
	existing, err := s.repository.GetById(ctx, userId, invoice.Id)
	if err != nil {
		return Invoice{}, err
	}
	invoice.PaidAt = existing.PaidAt
	invoice.PaidAmount = existing.PaidAmount
	if invoice.Status == StatusPaid && existing.Status != StatusPaid {
		s.stampPaid(&invoice)
	}
	return s.repository.Update(ctx, userId, invoice)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.Delete(ctx, userId, id)
}

func (s *ServiceImpl) CountPending(ctx context.Context) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repository.CountByStatus(ctx, userId, StatusSent)
}
