package contract

import "time"

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusSigned   Status = "signed"
	StatusExpired  Status = "expired"
	StatusCanceled Status = "canceled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusSigned, StatusExpired, StatusCanceled:
		return true
	}
	return false
}

type Contract struct {
	Id             int
	Title          string
	ClientId       int
	ProjectId      *int
	Status         Status
	StartDate      *time.Time
	EndDate        *time.Time
	Value          *float64
	Terms          string
	SignedByClient bool
	SignedByMe     bool
	SignedAt       *time.Time
	CreatedAt      time.Time
}

// FullySigned reports whether both parties have signed.
func (c Contract) FullySigned() bool {
	return c.SignedByClient && c.SignedByMe
}
