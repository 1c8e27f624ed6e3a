package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveRange(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		keyword   string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{RangeThisMonth, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{RangeLastMonth, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{RangeLast3Months, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{RangeLast6Months, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{RangeThisYear, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			resolved, err := ResolveRange(tt.keyword, time.Time{}, time.Time{}, now)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStart, resolved.Start)
			assert.Equal(t, tt.wantEnd, resolved.End)
		})
	}

	t.Run("empty keyword defaults to this month", func(t *testing.T) {
		resolved, err := ResolveRange("", time.Time{}, time.Time{}, now)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), resolved.Start)
	})

	t.Run("custom range uses the supplied bounds", func(t *testing.T) {
		start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
		resolved, err := ResolveRange(RangeCustom, start, end, now)
		assert.NoError(t, err)
		assert.Equal(t, start, resolved.Start)
		assert.Equal(t, end, resolved.End)
	})

	t.Run("custom range requires both bounds", func(t *testing.T) {
		_, err := ResolveRange(RangeCustom, time.Time{}, now, now)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("custom range rejects end before start", func(t *testing.T) {
		_, err := ResolveRange(RangeCustom, now, now.Add(-time.Hour), now)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("unknown keyword is rejected", func(t *testing.T) {
		_, err := ResolveRange("last-week", time.Time{}, time.Time{}, now)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestMonthsIn(t *testing.T) {
	t.Run("should include every month the range touches", func(t *testing.T) {
		r := DateRange{
			Start: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		}
		months := monthsIn(r)
		assert.Len(t, months, 3)
		assert.Equal(t, "2025-01", monthKey(months[0]))
		assert.Equal(t, "2025-03", monthKey(months[2]))
	})

	t.Run("should yield a single bucket for a range within one month", func(t *testing.T) {
		r := DateRange{
			Start: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		}
		assert.Len(t, monthsIn(r), 1)
	})
}
