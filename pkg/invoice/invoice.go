package invoice

import "time"

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusPaid     Status = "paid"
	StatusOverdue  Status = "overdue"
	StatusCanceled Status = "canceled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCanceled:
		return true
	}
	return false
}

type Invoice struct {
	Id            int
	InvoiceNumber string
	ClientId      int
	IssueDate     time.Time
	DueDate       time.Time
	Status        Status
	Subtotal      float64
	Tax           *float64
	Discount      *float64
	Total         float64
	Notes         string
	Terms         string
	PaidAt        *time.Time
	PaidAmount    *float64
	CreatedAt     time.Time
	Items         []Item
}

type Item struct {
	Id          int
	InvoiceId   int
	Description string
	Quantity    float64
	UnitPrice   float64
	Amount      float64
	ProjectId   *int
	TaskId      *int
}
