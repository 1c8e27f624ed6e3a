package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/invoice"
	"github.com/gestio-app/gestio/pkg/project"
	"github.com/gestio-app/gestio/pkg/user"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type stubClients struct{ count int }

func (s *stubClients) Count(context.Context) (int, error) { return s.count, nil }

type stubProjects struct{ active int }

func (s *stubProjects) CountActive(context.Context) (int, error) { return s.active, nil }

type stubInvoices struct {
	paid    []invoice.Invoice
	pending int
}

func (s *stubInvoices) GetByStatus(_ context.Context, status invoice.Status) ([]invoice.Invoice, error) {
	if status == invoice.StatusPaid {
		return s.paid, nil
	}
	return nil, nil
}

func (s *stubInvoices) CountPending(context.Context) (int, error) { return s.pending, nil }

func paidInvoice(paidAt time.Time, amount float64) invoice.Invoice {
	return invoice.Invoice{Status: invoice.StatusPaid, PaidAt: &paidAt, PaidAmount: &amount}
}

func TestGetStats(t *testing.T) {
	// given
	clock := utils.NewMockClock()
	clock.SetNow(testNow)
	invoices := &stubInvoices{
		pending: 3,
		paid: []invoice.Invoice{
			paidInvoice(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), 500),
			paidInvoice(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), 250),
			// Previous month, must not count.
			paidInvoice(time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), 900),
		},
	}
	service := NewService(&stubClients{count: 7}, &stubProjects{active: 2}, invoices, clock)

	// when
	stats, err := service.GetStats(context.Background())

	// then
	assert.NoError(t, err)
	assert.Equal(t, 7, stats.ClientCount)
	assert.Equal(t, 2, stats.ActiveProjectCount)
	assert.Equal(t, 3, stats.PendingInvoiceCount)
	assert.Equal(t, 750.0, stats.Revenue)
}

func TestGetStatsIgnoresPaidInvoicesWithoutTimestamp(t *testing.T) {
	// given
	clock := utils.NewMockClock()
	clock.SetNow(testNow)
	amount := 100.0
	invoices := &stubInvoices{
		paid: []invoice.Invoice{{Status: invoice.StatusPaid, PaidAmount: &amount}},
	}
	service := NewService(&stubClients{}, &stubProjects{}, invoices, clock)

	// when
	stats, err := service.GetStats(context.Background())

	// then
	assert.NoError(t, err)
	assert.Equal(t, 0.0, stats.Revenue)
}

func TestGetStatsCountsNotStartedProjectsAsActive(t *testing.T) {
	// given
	clock := utils.NewMockClock()
	clock.SetNow(testNow)
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	projects := project.NewService(project.NewStubRepository(), clock)
	_, err := projects.Create(ctx, project.Project{Name: "Website", ClientId: 1, Status: project.StatusNotStarted})
	assert.NoError(t, err)
	_, err = projects.Create(ctx, project.Project{Name: "Rebranding", ClientId: 1, Status: project.StatusInProgress})
	assert.NoError(t, err)
	_, err = projects.Create(ctx, project.Project{Name: "Audit", ClientId: 1, Status: project.StatusCompleted})
	assert.NoError(t, err)
	service := NewService(&stubClients{}, projects, &stubInvoices{}, clock)

	// when
	stats, err := service.GetStats(ctx)

	// then
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.ActiveProjectCount)
}
