package report

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/gestio-app/gestio/pkg/client"
	"github.com/gestio-app/gestio/pkg/invoice"
	"github.com/gestio-app/gestio/pkg/project"
	"github.com/gestio-app/gestio/pkg/timeentry"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type ClientProvider interface {
	GetAll(ctx context.Context) ([]client.Client, error)
}

type ProjectProvider interface {
	GetAll(ctx context.Context) ([]project.Project, error)
}

type InvoiceProvider interface {
	GetAll(ctx context.Context) ([]invoice.Invoice, error)
}

type TimeEntryProvider interface {
	ListForUser(ctx context.Context) ([]timeentry.TimeEntry, error)
}

type Service interface {
	Generate(ctx context.Context, dateRange DateRange) (Report, error)
}

type ServiceImpl struct {
	clients    ClientProvider
	projects   ProjectProvider
	invoices   InvoiceProvider
	entries    TimeEntryProvider
	hourlyRate float64
}

func NewService(clients ClientProvider, projects ProjectProvider, invoices InvoiceProvider, entries TimeEntryProvider, hourlyRate float64) *ServiceImpl {
	return &ServiceImpl{
		clients:    clients,
		projects:   projects,
		invoices:   invoices,
		entries:    entries,
		hourlyRate: hourlyRate,
	}
}

// snapshot holds everything a report is computed from, fetched once per
// request so all aggregations see the same data.
type snapshot struct {
	clients  []client.Client
	projects []project.Project
	invoices []invoice.Invoice
	entries  []timeentry.TimeEntry
}

func (s *ServiceImpl) fetch(ctx context.Context) (snapshot, error) {
	var snap snapshot
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.clients, err = s.clients.GetAll(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.projects, err = s.projects.GetAll(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.invoices, err = s.invoices.GetAll(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.entries, err = s.entries.ListForUser(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, fmt.Errorf("failed to fetch report data: %w", err)
	}
	return snap, nil
}

func (s *ServiceImpl) Generate(ctx context.Context, dateRange DateRange) (Report, error) {
	snap, err := s.fetch(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Range:           dateRange,
		RevenueByMonth:  revenueByMonth(snap.invoices, dateRange),
		HoursByProject:  hoursByProject(snap.projects, snap.entries, dateRange, s.hourlyRate),
		RevenueByClient: revenueByClient(snap.clients, snap.invoices, dateRange),
		HoursByMonth:    hoursByMonth(snap.entries, dateRange),
		Summary:         summaryStats(snap, dateRange),
	}, nil
}

// entryHours returns the tracked duration of an entry, or false when there
// is none or it is unusable. A malformed row is skipped with a warning so
// one corrupt record cannot blank out the whole report.
func entryHours(entry timeentry.TimeEntry) (float64, bool) {
	if entry.Duration == nil {
		return 0, false
	}
	if *entry.Duration < 0 || math.IsNaN(*entry.Duration) {
		log.Warnf("time entry %d has malformed duration %v, skipping", entry.Id, *entry.Duration)
		return 0, false
	}
	return *entry.Duration, true
}

// revenueByMonth buckets paid invoice totals by issue month. Every month in
// the range appears, empty ones included.
func revenueByMonth(invoices []invoice.Invoice, dateRange DateRange) []MonthlyRevenue {
	months := monthsIn(dateRange)
	byKey := make(map[string]int, len(months))
	result := make([]MonthlyRevenue, len(months))
	for i, month := range months {
		byKey[monthKey(month)] = i
		result[i] = MonthlyRevenue{Month: monthLabel(month)}
	}
	for _, inv := range invoices {
		if inv.Status != invoice.StatusPaid || !dateRange.Contains(inv.IssueDate) {
			continue
		}
		idx, ok := byKey[monthKey(inv.IssueDate)]
		if !ok {
			log.Warnf("invoice %d issue date outside bucketed months, skipping", inv.Id)
			continue
		}
		result[idx].Income += inv.Total
	}
	return result
}

// hoursByProject sums in-range tracked time per project, pricing the
// billable share at the hourly rate. Projects without hours are dropped and
// the rest sorted by hours, highest first.
func hoursByProject(projects []project.Project, entries []timeentry.TimeEntry, dateRange DateRange, hourlyRate float64) []ProjectHours {
	type stats struct {
		name  string
		hours float64
		value float64
	}
	byId := make(map[int]*stats, len(projects))
	order := make([]int, 0, len(projects))
	for _, p := range projects {
		byId[p.Id] = &stats{name: p.Name}
		order = append(order, p.Id)
	}
	for _, entry := range entries {
		if !dateRange.Contains(entry.StartTime) || entry.ProjectId == nil {
			continue
		}
		hours, ok := entryHours(entry)
		if !ok {
			continue
		}
		p, ok := byId[*entry.ProjectId]
		if !ok {
			log.Warnf("time entry %d references unknown project %d, skipping", entry.Id, *entry.ProjectId)
			continue
		}
		p.hours += hours
		if entry.Billable {
			p.value += hours * hourlyRate
		}
	}
	result := make([]ProjectHours, 0, len(order))
	for _, id := range order {
		p := byId[id]
		if p.hours > 0 {
			result = append(result, ProjectHours{Name: p.name, Hours: p.hours, Value: p.value})
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Hours > result[j].Hours })
	return result
}

// revenueByClient sums in-range paid invoice totals per client, dropping
// clients without revenue and sorting by revenue, highest first.
func revenueByClient(clients []client.Client, invoices []invoice.Invoice, dateRange DateRange) []ClientRevenue {
	type stats struct {
		name    string
		revenue float64
	}
	byId := make(map[int]*stats, len(clients))
	order := make([]int, 0, len(clients))
	for _, c := range clients {
		byId[c.Id] = &stats{name: c.Name}
		order = append(order, c.Id)
	}
	for _, inv := range invoices {
		if inv.Status != invoice.StatusPaid || !dateRange.Contains(inv.IssueDate) {
			continue
		}
		c, ok := byId[inv.ClientId]
		if !ok {
			log.Warnf("invoice %d references unknown client %d, skipping", inv.Id, inv.ClientId)
			continue
		}
		c.revenue += inv.Total
	}
	result := make([]ClientRevenue, 0, len(order))
	for _, id := range order {
		c := byId[id]
		if c.revenue > 0 {
			result = append(result, ClientRevenue{Name: c.name, Revenue: c.revenue})
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Revenue > result[j].Revenue })
	return result
}

// hoursByMonth buckets in-range tracked time by start month, split into
// billable and non-billable. Every month in the range appears.
func hoursByMonth(entries []timeentry.TimeEntry, dateRange DateRange) []MonthlyHours {
	months := monthsIn(dateRange)
	byKey := make(map[string]int, len(months))
	result := make([]MonthlyHours, len(months))
	for i, month := range months {
		byKey[monthKey(month)] = i
		result[i] = MonthlyHours{Month: monthLabel(month)}
	}
	for _, entry := range entries {
		if !dateRange.Contains(entry.StartTime) {
			continue
		}
		hours, ok := entryHours(entry)
		if !ok {
			continue
		}
		idx, ok := byKey[monthKey(entry.StartTime)]
		if !ok {
			log.Warnf("time entry %d start outside bucketed months, skipping", entry.Id)
			continue
		}
		if entry.Billable {
			result[idx].Billable += hours
		} else {
			result[idx].NonBillable += hours
		}
	}
	return result
}

// summaryStats computes the headline figures. Active clients are those with
// any invoice issued in range, whatever its status; active projects are the
// ones currently in progress, independent of the range.
func summaryStats(snap snapshot, dateRange DateRange) SummaryStats {
	var stats SummaryStats
	for _, inv := range snap.invoices {
		if inv.Status == invoice.StatusPaid && dateRange.Contains(inv.IssueDate) {
			stats.TotalRevenue += inv.Total
		}
	}
	for _, entry := range snap.entries {
		if !dateRange.Contains(entry.StartTime) {
			continue
		}
		hours, ok := entryHours(entry)
		if !ok {
			continue
		}
		if entry.Billable {
			stats.BillableHours += hours
		} else {
			stats.NonBillableHours += hours
		}
	}
	for _, p := range snap.projects {
		if p.Status == project.StatusInProgress {
			stats.ActiveProjectCount++
		}
	}
	activeClients := make(map[int]struct{})
	for _, inv := range snap.invoices {
		if dateRange.Contains(inv.IssueDate) {
			activeClients[inv.ClientId] = struct{}{}
		}
	}
	stats.ActiveClientCount = len(activeClients)
	return stats
}
