package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCsvRenderer(t *testing.T) {
	// given
	report := Report{
		Range: DateRange{
			Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		RevenueByMonth:  []MonthlyRevenue{{Month: "Jan 2025", Income: 1234.5}},
		HoursByProject:  []ProjectHours{{Name: "Website", Hours: 12.5, Value: 625}},
		RevenueByClient: []ClientRevenue{{Name: "Acme, Corp", Revenue: 1234.5}},
		HoursByMonth:    []MonthlyHours{{Month: "Jan 2025", Billable: 10, NonBillable: 2.5}},
		Summary: SummaryStats{
			TotalRevenue:       1234.5,
			BillableHours:      10,
			NonBillableHours:   2.5,
			ActiveProjectCount: 1,
			ActiveClientCount:  1,
		},
	}

	// when
	var out strings.Builder
	err := NewCsvRenderer().Render(&out, report)

	// then
	assert.NoError(t, err)
	csv := out.String()
	assert.Contains(t, csv, "Total Revenue,1234.50")
	assert.Contains(t, csv, "Jan 2025,1234.50")
	assert.Contains(t, csv, "Website,12.5,625.00")
	assert.Contains(t, csv, `"Acme, Corp",1234.50`)
	assert.Contains(t, csv, "Jan 2025,10.0,2.5")
}
