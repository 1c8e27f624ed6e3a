package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/invoice"
	"golang.org/x/sync/errgroup"
)

// Stats are the headline numbers on the dashboard. Revenue covers money
// actually received in the current calendar month.
type Stats struct {
	ClientCount         int
	ActiveProjectCount  int
	PendingInvoiceCount int
	Revenue             float64
}

type ClientCounter interface {
	Count(ctx context.Context) (int, error)
}

type ProjectCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type InvoiceProvider interface {
	GetByStatus(ctx context.Context, status invoice.Status) ([]invoice.Invoice, error)
	CountPending(ctx context.Context) (int, error)
}

type Service interface {
	GetStats(ctx context.Context) (Stats, error)
}

type ServiceImpl struct {
	clients  ClientCounter
	projects ProjectCounter
	invoices InvoiceProvider
	clock    utils.Clock
}

func NewService(clients ClientCounter, projects ProjectCounter, invoices InvoiceProvider, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{clients: clients, projects: projects, invoices: invoices, clock: clock}
}

func (s *ServiceImpl) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.ClientCount, err = s.clients.Count(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ActiveProjectCount, err = s.projects.CountActive(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.PendingInvoiceCount, err = s.invoices.CountPending(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Revenue, err = s.monthRevenue(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return stats, nil
}

// monthRevenue sums the paid amounts of invoices settled since the start
// of the current month.
func (s *ServiceImpl) monthRevenue(ctx context.Context) (float64, error) {
	paid, err := s.invoices.GetByStatus(ctx, invoice.StatusPaid)
	if err != nil {
		return 0, err
	}
	now := s.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var revenue float64
	for _, inv := range paid {
		if inv.PaidAt == nil || inv.PaidAt.Before(monthStart) {
			continue
		}
		if inv.PaidAmount != nil {
			revenue += *inv.PaidAmount
		}
	}
	return revenue, nil
}
