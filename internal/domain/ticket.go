package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ValidTicketStatuses lists every accepted ticket status.
var ValidTicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusResolved,
	TicketStatusClosed,
}

// IsValid reports whether the status is one of the known values.
func (s TicketStatus) IsValid() bool {
	for _, valid := range ValidTicketStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Ticket is the aggregate for support requests raised against an order.
type Ticket struct {
	ID               int64
	OrderID          int64
	IssueDescription string
	Status           TicketStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
