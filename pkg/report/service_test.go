package report

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/gestio-app/gestio/pkg/client"
	"github.com/gestio-app/gestio/pkg/invoice"
	"github.com/gestio-app/gestio/pkg/project"
	"github.com/gestio-app/gestio/pkg/timeentry"
	"github.com/stretchr/testify/assert"
)

type stubClients struct{ clients []client.Client }

func (s *stubClients) GetAll(context.Context) ([]client.Client, error) { return s.clients, nil }

type stubProjects struct{ projects []project.Project }

func (s *stubProjects) GetAll(context.Context) ([]project.Project, error) { return s.projects, nil }

type stubInvoices struct{ invoices []invoice.Invoice }

func (s *stubInvoices) GetAll(context.Context) ([]invoice.Invoice, error) { return s.invoices, nil }

type stubEntries struct{ entries []timeentry.TimeEntry }

func (s *stubEntries) ListForUser(context.Context) ([]timeentry.TimeEntry, error) {
	return s.entries, nil
}

var reportRange = DateRange{
	Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC),
}

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 12, 0, 0, 0, time.UTC)
}

func paidInvoice(id, clientId int, issued time.Time, total float64) invoice.Invoice {
	return invoice.Invoice{Id: id, ClientId: clientId, IssueDate: issued, Status: invoice.StatusPaid, Total: total}
}

func entry(id, projectId int, start time.Time, hours float64, billable bool) timeentry.TimeEntry {
	pid := projectId
	h := hours
	return timeentry.TimeEntry{Id: id, ProjectId: &pid, StartTime: start, Duration: &h, Billable: billable}
}

func newTestService(snap snapshot) *ServiceImpl {
	return NewService(
		&stubClients{clients: snap.clients},
		&stubProjects{projects: snap.projects},
		&stubInvoices{invoices: snap.invoices},
		&stubEntries{entries: snap.entries},
		50,
	)
}

func TestRevenueByMonth(t *testing.T) {
	t.Run("should keep empty months in the series", func(t *testing.T) {
		// given
		invoices := []invoice.Invoice{
			paidInvoice(1, 1, day(time.January, 10), 1000),
			paidInvoice(2, 1, day(time.March, 5), 500),
		}

		// when
		result := revenueByMonth(invoices, reportRange)

		// then
		assert.Len(t, result, 3)
		assert.Equal(t, "Jan 2025", result[0].Month)
		assert.Equal(t, 1000.0, result[0].Income)
		assert.Equal(t, 0.0, result[1].Income)
		assert.Equal(t, 500.0, result[2].Income)
	})

	t.Run("should only count paid invoices", func(t *testing.T) {
		// given
		sent := paidInvoice(1, 1, day(time.January, 10), 1000)
		sent.Status = invoice.StatusSent

		// when
		result := revenueByMonth([]invoice.Invoice{sent}, reportRange)

		// then
		assert.Equal(t, 0.0, result[0].Income)
	})

	t.Run("should ignore invoices outside the range", func(t *testing.T) {
		// given
		invoices := []invoice.Invoice{paidInvoice(1, 1, day(time.December, 10).AddDate(-1, 0, 0), 1000)}

		// when
		result := revenueByMonth(invoices, reportRange)

		// then
		for _, row := range result {
			assert.Equal(t, 0.0, row.Income)
		}
	})
}

func TestHoursByProject(t *testing.T) {
	projects := []project.Project{
		{Id: 1, Name: "Website"},
		{Id: 2, Name: "Mobile app"},
		{Id: 3, Name: "Idle"},
	}

	t.Run("should drop projects without hours and sort descending", func(t *testing.T) {
		// given
		entries := []timeentry.TimeEntry{
			entry(1, 1, day(time.January, 5), 2, true),
			entry(2, 2, day(time.January, 6), 5, true),
			entry(3, 1, day(time.February, 7), 1, false),
		}

		// when
		result := hoursByProject(projects, entries, reportRange, 50)

		// then
		assert.Len(t, result, 2)
		assert.Equal(t, "Mobile app", result[0].Name)
		assert.Equal(t, 5.0, result[0].Hours)
		assert.Equal(t, "Website", result[1].Name)
		assert.Equal(t, 3.0, result[1].Hours)
	})

	t.Run("should price only billable hours", func(t *testing.T) {
		// given
		entries := []timeentry.TimeEntry{
			entry(1, 1, day(time.January, 5), 2, true),
			entry(2, 1, day(time.January, 6), 3, false),
		}

		// when
		result := hoursByProject(projects, entries, reportRange, 50)

		// then
		assert.Equal(t, 5.0, result[0].Hours)
		assert.Equal(t, 100.0, result[0].Value)
	})

	t.Run("should skip entries referencing unknown projects", func(t *testing.T) {
		// given
		entries := []timeentry.TimeEntry{
			entry(1, 99, day(time.January, 5), 2, true),
			entry(2, 1, day(time.January, 6), 1, true),
		}

		// when
		result := hoursByProject(projects, entries, reportRange, 50)

		// then
		assert.Len(t, result, 1)
		assert.Equal(t, "Website", result[0].Name)
	})

	t.Run("should skip running entries without a duration", func(t *testing.T) {
		// given
		pid := 1
		running := timeentry.TimeEntry{Id: 1, ProjectId: &pid, StartTime: day(time.January, 5), Billable: true}

		// when
		result := hoursByProject(projects, []timeentry.TimeEntry{running}, reportRange, 50)

		// then
		assert.Empty(t, result)
	})

	t.Run("should skip entries with a negative or NaN duration", func(t *testing.T) {
		// given
		entries := []timeentry.TimeEntry{
			entry(1, 1, day(time.January, 5), 2, true),
			entry(2, 1, day(time.January, 6), -3, true),
			entry(3, 1, day(time.January, 7), math.NaN(), true),
		}

		// when
		result := hoursByProject(projects, entries, reportRange, 50)

		// then
		assert.Len(t, result, 1)
		assert.Equal(t, 2.0, result[0].Hours)
		assert.Equal(t, 100.0, result[0].Value)
	})

	t.Run("should keep fetch order for projects with equal hours", func(t *testing.T) {
		// given
		entries := []timeentry.TimeEntry{
			entry(1, 1, day(time.January, 5), 4, true),
			entry(2, 2, day(time.January, 6), 4, true),
			entry(3, 3, day(time.January, 7), 4, true),
		}

		// when
		result := hoursByProject(projects, entries, reportRange, 50)

		// then
		assert.Len(t, result, 3)
		assert.Equal(t, "Website", result[0].Name)
		assert.Equal(t, "Mobile app", result[1].Name)
		assert.Equal(t, "Idle", result[2].Name)
	})
}

func TestRevenueByClient(t *testing.T) {
	clients := []client.Client{
		{Id: 1, Name: "Acme Corp"},
		{Id: 2, Name: "Globex"},
		{Id: 3, Name: "Dormant"},
	}

	t.Run("should drop clients without revenue and sort descending", func(t *testing.T) {
		// given
		invoices := []invoice.Invoice{
			paidInvoice(1, 1, day(time.January, 10), 300),
			paidInvoice(2, 2, day(time.February, 10), 900),
			paidInvoice(3, 1, day(time.March, 10), 200),
		}

		// when
		result := revenueByClient(clients, invoices, reportRange)

		// then
		assert.Len(t, result, 2)
		assert.Equal(t, "Globex", result[0].Name)
		assert.Equal(t, 900.0, result[0].Revenue)
		assert.Equal(t, "Acme Corp", result[1].Name)
		assert.Equal(t, 500.0, result[1].Revenue)
	})

	t.Run("should skip invoices referencing unknown clients", func(t *testing.T) {
		// given
		invoices := []invoice.Invoice{paidInvoice(1, 99, day(time.January, 10), 300)}

		// when
		result := revenueByClient(clients, invoices, reportRange)

		// then
		assert.Empty(t, result)
	})

	t.Run("should keep fetch order for clients with equal revenue", func(t *testing.T) {
		// given
		invoices := []invoice.Invoice{
			paidInvoice(1, 2, day(time.January, 10), 400),
			paidInvoice(2, 1, day(time.February, 10), 400),
			paidInvoice(3, 3, day(time.March, 10), 400),
		}

		// when
		result := revenueByClient(clients, invoices, reportRange)

		// then
		assert.Len(t, result, 3)
		assert.Equal(t, "Acme Corp", result[0].Name)
		assert.Equal(t, "Globex", result[1].Name)
		assert.Equal(t, "Dormant", result[2].Name)
	})
}

func TestHoursByMonth(t *testing.T) {
	t.Run("should split billable and non-billable per month", func(t *testing.T) {
		// given
		entries := []timeentry.TimeEntry{
			entry(1, 1, day(time.January, 5), 4, true),
			entry(2, 1, day(time.January, 6), 2, false),
			entry(3, 1, day(time.March, 7), 1, true),
		}

		// when
		result := hoursByMonth(entries, reportRange)

		// then
		assert.Len(t, result, 3)
		assert.Equal(t, 4.0, result[0].Billable)
		assert.Equal(t, 2.0, result[0].NonBillable)
		assert.Equal(t, 0.0, result[1].Billable)
		assert.Equal(t, 1.0, result[2].Billable)
	})

	t.Run("billable and non-billable should add up to project hours", func(t *testing.T) {
		// given
		entries := []timeentry.TimeEntry{
			entry(1, 1, day(time.January, 5), 4, true),
			entry(2, 1, day(time.February, 6), 2, false),
			entry(3, 1, day(time.March, 7), 1.5, true),
		}
		projects := []project.Project{{Id: 1, Name: "Website"}}

		// when
		byMonth := hoursByMonth(entries, reportRange)
		byProject := hoursByProject(projects, entries, reportRange, 50)

		// then
		var monthTotal float64
		for _, row := range byMonth {
			monthTotal += row.Billable + row.NonBillable
		}
		var projectTotal float64
		for _, row := range byProject {
			projectTotal += row.Hours
		}
		assert.InDelta(t, monthTotal, projectTotal, 1e-9)
	})
}

func TestSummaryStats(t *testing.T) {
	t.Run("active clients count any in-range invoice regardless of status", func(t *testing.T) {
		// given
		sent := invoice.Invoice{Id: 1, ClientId: 2, IssueDate: day(time.January, 10), Status: invoice.StatusSent, Total: 100}
		snap := snapshot{
			invoices: []invoice.Invoice{
				paidInvoice(2, 1, day(time.February, 10), 700),
				sent,
			},
		}

		// when
		stats := summaryStats(snap, reportRange)

		// then
		assert.Equal(t, 2, stats.ActiveClientCount)
		assert.Equal(t, 700.0, stats.TotalRevenue)
	})

	t.Run("active projects are counted independently of the range", func(t *testing.T) {
		// given
		snap := snapshot{
			projects: []project.Project{
				{Id: 1, Status: project.StatusInProgress},
				{Id: 2, Status: project.StatusInProgress},
				{Id: 3, Status: project.StatusNotStarted},
				{Id: 4, Status: project.StatusCompleted},
			},
		}

		// when
		stats := summaryStats(snap, reportRange)

		// then
		assert.Equal(t, 2, stats.ActiveProjectCount)
	})

	t.Run("hours are split by the billable flag", func(t *testing.T) {
		// given
		snap := snapshot{
			entries: []timeentry.TimeEntry{
				entry(1, 1, day(time.January, 5), 4, true),
				entry(2, 1, day(time.January, 6), 2.5, false),
			},
		}

		// when
		stats := summaryStats(snap, reportRange)

		// then
		assert.Equal(t, 4.0, stats.BillableHours)
		assert.Equal(t, 2.5, stats.NonBillableHours)
	})
}

func TestGenerateReport(t *testing.T) {
	// given
	snap := snapshot{
		clients:  []client.Client{{Id: 1, Name: "Acme Corp"}},
		projects: []project.Project{{Id: 1, Name: "Website", Status: project.StatusInProgress}},
		invoices: []invoice.Invoice{paidInvoice(1, 1, day(time.January, 10), 1000)},
		entries:  []timeentry.TimeEntry{entry(1, 1, day(time.January, 5), 2, true)},
	}
	service := newTestService(snap)

	// when
	report, err := service.Generate(context.Background(), reportRange)

	// then
	assert.NoError(t, err)
	assert.Len(t, report.RevenueByMonth, 3)
	assert.Equal(t, 1000.0, report.RevenueByMonth[0].Income)
	assert.Len(t, report.HoursByProject, 1)
	assert.Equal(t, 100.0, report.HoursByProject[0].Value)
	assert.Len(t, report.RevenueByClient, 1)
	assert.Equal(t, 1000.0, report.Summary.TotalRevenue)
	assert.Equal(t, 1, report.Summary.ActiveClientCount)
	assert.Equal(t, 1, report.Summary.ActiveProjectCount)
}
