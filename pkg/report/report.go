package report

// MonthlyRevenue is one dense bucket of the revenue chart. Months without
// paid invoices stay in the series with a zero income.
type MonthlyRevenue struct {
	Month  string
	Income float64
}

// ProjectHours aggregates tracked time per project. Value is the billable
// share priced at the configured hourly rate.
type ProjectHours struct {
	Name  string
	Hours float64
	Value float64
}

type ClientRevenue struct {
	Name    string
	Revenue float64
}

// MonthlyHours splits a month's tracked time into billable and
// non-billable hours.
type MonthlyHours struct {
	Month       string
	Billable    float64
	NonBillable float64
}

type SummaryStats struct {
	TotalRevenue       float64
	BillableHours      float64
	NonBillableHours   float64
	ActiveProjectCount int
	ActiveClientCount  int
}

// Report is the full aggregation bundle for one date range.
type Report struct {
	Range           DateRange
	RevenueByMonth  []MonthlyRevenue
	HoursByProject  []ProjectHours
	RevenueByClient []ClientRevenue
	HoursByMonth    []MonthlyHours
	Summary         SummaryStats
}
