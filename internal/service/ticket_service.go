package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/genesis-commerce/backend/internal/domain"
	"github.com/genesis-commerce/backend/internal/events"
	"github.com/genesis-commerce/backend/internal/repository"
	apperrors "github.com/genesis-commerce/backend/pkg/util"
)

// TicketService coordinates support ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	OrderRepo  repository.OrderRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	OrderID          int64
	IssueDescription string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		orders:     deps.OrderRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket creates a ticket for an existing order.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.IssueDescription) == "" {
		return nil, apperrors.NewValidationError("issue_description required", nil)
	}

	if _, err := s.orders.GetByID(ctx, input.OrderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": input.OrderID})
		}
		return nil, err
	}

	ticket := &domain.Ticket{
		OrderID:          input.OrderID,
		IssueDescription: strings.TrimSpace(input.IssueDescription),
		Status:           domain.TicketStatusOpen,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		OrderID:  ticket.OrderID,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			OrderID:          ticket.OrderID,
			IssueDescription: ticket.IssueDescription,
		},
	})
	return ticket, nil
}

// GetTicket fetches a single ticket.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, err
	}
	return ticket, nil
}

// ListOrderTickets returns all tickets for an existing order.
func (s *TicketService) ListOrderTickets(ctx context.Context, orderID int64) ([]domain.Ticket, error) {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": orderID})
		}
		return nil, err
	}
	return s.tickets.ListByOrder(ctx, orderID)
}

// ListUserTickets returns tickets for all of the user's orders.
func (s *TicketService) ListUserTickets(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

// ListTickets returns tickets, optionally filtered by status.
func (s *TicketService) ListTickets(ctx context.Context, status *domain.TicketStatus, limit, offset int) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{Limit: limit, Offset: offset}
	if status != nil {
		if !status.IsValid() {
			return nil, invalidTicketStatusError(*status)
		}
		filter.Statuses = []domain.TicketStatus{*status}
	}
	return s.tickets.ListWithFilter(ctx, filter)
}

// UpdateStatus transitions a ticket to a new status.
func (s *TicketService) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	if !status.IsValid() {
		return nil, invalidTicketStatusError(status)
	}

	current, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.tickets.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		OrderID:  updated.OrderID,
		TicketID: id,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func invalidTicketStatusError(status domain.TicketStatus) error {
	valid := make([]string, 0, len(domain.ValidTicketStatuses))
	for _, v := range domain.ValidTicketStatuses {
		valid = append(valid, string(v))
	}
	return apperrors.NewValidationError("invalid ticket status", map[string]any{
		"status":         string(status),
		"valid_statuses": valid,
	})
}
