package activity

import "time"

// Activity is one line of the audit trail kept for every mutating action.
type Activity struct {
	Id          int
	UserId      int
	Action      string
	EntityType  string
	EntityId    int
	Description string
	CreatedAt   time.Time
}
