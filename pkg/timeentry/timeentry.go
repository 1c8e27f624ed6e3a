package timeentry

import "time"

// TimeEntry is a span of tracked work. A running timer has no end time and
// no duration; stopping it stamps both. Duration is kept in hours.
type TimeEntry struct {
	Id          int
	TaskId      *int
	ProjectId   *int
	UserId      int
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	Duration    *float64
	Billable    bool
	InvoiceId   *int
	CreatedAt   time.Time
}

// IsRunning reports whether the entry is an open timer.
func (e TimeEntry) IsRunning() bool {
	return e.EndTime == nil
}

func durationHours(start, end time.Time) float64 {
	return end.Sub(start).Seconds() / 3600
}
