package report

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("invalid report range")

// DateRange is the inclusive window a report is computed over.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

const (
	RangeThisMonth   = "this-month"
	RangeLastMonth   = "last-month"
	RangeLast3Months = "last-3-months"
	RangeLast6Months = "last-6-months"
	RangeThisYear    = "this-year"
	RangeCustom      = "custom"
)

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// ResolveRange turns a range keyword into concrete bounds. Custom ranges
// take their bounds from start and end, which must both be set and ordered.
func ResolveRange(keyword string, start, end time.Time, now time.Time) (DateRange, error) {
	switch keyword {
	case RangeThisMonth, "":
		return DateRange{Start: startOfMonth(now), End: endOfMonth(now)}, nil
	case RangeLastMonth:
		lastMonth := now.AddDate(0, -1, 0)
		return DateRange{Start: startOfMonth(lastMonth), End: endOfMonth(lastMonth)}, nil
	case RangeLast3Months:
		return DateRange{Start: startOfMonth(now.AddDate(0, -2, 0)), End: endOfMonth(now)}, nil
	case RangeLast6Months:
		return DateRange{Start: startOfMonth(now.AddDate(0, -5, 0)), End: endOfMonth(now)}, nil
	case RangeThisYear:
		return DateRange{
			Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()),
			End:   time.Date(now.Year(), 12, 31, 23, 59, 59, 0, now.Location()),
		}, nil
	case RangeCustom:
		if start.IsZero() || end.IsZero() {
			return DateRange{}, fmt.Errorf("%w: custom range requires start and end", ErrInvalidRange)
		}
		if end.Before(start) {
			return DateRange{}, fmt.Errorf("%w: end before start", ErrInvalidRange)
		}
		return DateRange{Start: start, End: end}, nil
	default:
		return DateRange{}, fmt.Errorf("%w: unknown keyword %q", ErrInvalidRange, keyword)
	}
}

// monthsIn returns the first day of every month the range touches, in order.
func monthsIn(r DateRange) []time.Time {
	months := make([]time.Time, 0, 12)
	for current := startOfMonth(r.Start); !current.After(r.End); current = current.AddDate(0, 1, 0) {
		months = append(months, current)
	}
	return months
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}
