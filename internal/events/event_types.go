package events

import (
	"time"

	"github.com/genesis-commerce/backend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventOrderCreated        EventType = "order_created"
	EventOrderStatusChanged  EventType = "order_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	OrderID   int64       `json:"order_id,omitempty"`
	TicketID  int64       `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	OrderID          int64  `json:"order_id"`
	IssueDescription string `json:"issue_description"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	UserID    int64              `json:"user_id"`
	ItemCount int                `json:"item_count"`
	Status    domain.OrderStatus `json:"status"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}
