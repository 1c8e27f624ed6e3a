package invoice

import (
	"context"
	"sort"
)

type StubRepository struct {
	invoices map[int]Invoice
	owners   map[int]int
	nextId   int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{invoices: make(map[int]Invoice), owners: make(map[int]int), nextId: 1}
}

func (s *StubRepository) Create(_ context.Context, userId int, invoice Invoice) (Invoice, error) {
	invoice.Id = s.nextId
	s.nextId++
	for i := range invoice.Items {
		invoice.Items[i].InvoiceId = invoice.Id
	}
	s.invoices[invoice.Id] = invoice
	s.owners[invoice.Id] = userId
	return invoice, nil
}

func (s *StubRepository) GetAll(_ context.Context, userId int) ([]Invoice, error) {
	invoices := make([]Invoice, 0, len(s.invoices))
	for id, i := range s.invoices {
		if s.owners[id] == userId {
			invoices = append(invoices, i)
		}
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].Id < invoices[j].Id })
	return invoices, nil
}

func (s *StubRepository) GetById(_ context.Context, userId int, id int) (Invoice, error) {
	i, ok := s.invoices[id]
	if !ok || s.owners[id] != userId {
		return Invoice{}, ErrInvoiceNotFound
	}
	return i, nil
}

func (s *StubRepository) GetByClient(ctx context.Context, userId int, clientId int) ([]Invoice, error) {
	all, _ := s.GetAll(ctx, userId)
	invoices := make([]Invoice, 0, len(all))
	for _, i := range all {
		if i.ClientId == clientId {
			invoices = append(invoices, i)
		}
	}
	return invoices, nil
}

func (s *StubRepository) GetByStatus(ctx context.Context, userId int, status Status) ([]Invoice, error) {
	all, _ := s.GetAll(ctx, userId)
	invoices := make([]Invoice, 0, len(all))
	for _, i := range all {
		if i.Status == status {
			invoices = append(invoices, i)
		}
	}
	return invoices, nil
}

func (s *StubRepository) Update(_ context.Context, userId int, invoice Invoice) (Invoice, error) {
	existing, ok := s.invoices[invoice.Id]
	if !ok || s.owners[invoice.Id] != userId {
		return Invoice{}, ErrInvoiceNotFound
	}
	if invoice.Items == nil {
		invoice.Items = existing.Items
	}
	s.invoices[invoice.Id] = invoice
	return invoice, nil
}

func (s *StubRepository) Delete(_ context.Context, userId int, id int) error {
	if _, ok := s.invoices[id]; !ok || s.owners[id] != userId {
		return ErrInvoiceNotFound
	}
	delete(s.invoices, id)
	delete(s.owners, id)
	return nil
}

func (s *StubRepository) CountByStatus(ctx context.Context, userId int, status Status) (int, error) {
	matching, _ := s.GetByStatus(ctx, userId, status)
	return len(matching), nil
}
