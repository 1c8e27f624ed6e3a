package calendar

import "time"

type Event struct {
	Id          int
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
	ClientId    *int
	ProjectId   *int
	CreatedAt   time.Time
}
