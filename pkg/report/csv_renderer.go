package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CsvRenderer writes a full report as a single CSV document with one
// section per aggregation, separated by blank lines.
type CsvRenderer struct{}

func NewCsvRenderer() *CsvRenderer {
	return &CsvRenderer{}
}

func (r *CsvRenderer) Render(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)

	records := [][]string{
		{"Summary"},
		{"Total Revenue", money(report.Summary.TotalRevenue)},
		{"Billable Hours", hours(report.Summary.BillableHours)},
		{"Non-Billable Hours", hours(report.Summary.NonBillableHours)},
		{"Active Projects", fmt.Sprintf("%d", report.Summary.ActiveProjectCount)},
		{"Active Clients", fmt.Sprintf("%d", report.Summary.ActiveClientCount)},
		{},
		{"Revenue by Month"},
		{"Month", "Income"},
	}
	for _, row := range report.RevenueByMonth {
		records = append(records, []string{row.Month, money(row.Income)})
	}
	records = append(records, []string{}, []string{"Hours by Project"}, []string{"Project", "Hours", "Value"})
	for _, row := range report.HoursByProject {
		records = append(records, []string{row.Name, hours(row.Hours), money(row.Value)})
	}
	records = append(records, []string{}, []string{"Revenue by Client"}, []string{"Client", "Revenue"})
	for _, row := range report.RevenueByClient {
		records = append(records, []string{row.Name, money(row.Revenue)})
	}
	records = append(records, []string{}, []string{"Hours by Month"}, []string{"Month", "Billable", "Non-Billable"})
	for _, row := range report.HoursByMonth {
		records = append(records, []string{row.Month, hours(row.Billable), hours(row.NonBillable)})
	}

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func hours(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
