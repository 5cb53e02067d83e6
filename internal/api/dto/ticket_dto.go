package dto

import (
	"time"

	"github.com/genesis-commerce/backend/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	OrderID          int64  `json:"order_id"`
	IssueDescription string `json:"issue_description"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketResponse response.
type TicketResponse struct {
	ID               int64               `json:"id"`
	OrderID          int64               `json:"order_id"`
	IssueDescription string              `json:"issue_description"`
	Status           domain.TicketStatus `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// TicketListResponse lists tickets with a count.
type TicketListResponse struct {
	TicketCount int              `json:"ticket_count"`
	Tickets     []TicketResponse `json:"tickets"`
}

// OrderTicketsResponse lists an order's tickets.
type OrderTicketsResponse struct {
	OrderID     int64            `json:"order_id"`
	TicketCount int              `json:"ticket_count"`
	Tickets     []TicketResponse `json:"tickets"`
}

// UserTicketsResponse lists tickets across a user's orders.
type UserTicketsResponse struct {
	UserID      int64            `json:"user_id"`
	TicketCount int              `json:"ticket_count"`
	Tickets     []TicketResponse `json:"tickets"`
}

// TicketFromDomain maps a domain ticket to its response shape.
func TicketFromDomain(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:               ticket.ID,
		OrderID:          ticket.OrderID,
		IssueDescription: ticket.IssueDescription,
		Status:           ticket.Status,
		CreatedAt:        ticket.CreatedAt,
		UpdatedAt:        ticket.UpdatedAt,
	}
}

// TicketsFromDomain maps a slice of domain tickets.
func TicketsFromDomain(tickets []domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		result = append(result, TicketFromDomain(&tickets[i]))
	}
	return result
}
