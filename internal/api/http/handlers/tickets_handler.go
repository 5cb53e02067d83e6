package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genesis-commerce/backend/internal/api/dto"
	"github.com/genesis-commerce/backend/internal/domain"
	"github.com/genesis-commerce/backend/internal/service"
	apperrors "github.com/genesis-commerce/backend/pkg/util"
)

// TicketsHandler manages support ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /v1/support/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.OrderID <= 0 {
		return apperrors.NewValidationError("order_id required", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		OrderID:          req.OrderID,
		IssueDescription: req.IssueDescription,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Ticket created successfully",
		"ticket":  dto.TicketFromDomain(ticket),
	})
}

// GetTicket GET /v1/support/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketFromDomain(ticket))
}

// ListTickets GET /v1/support/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	var status *domain.TicketStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.TicketStatus(raw)
		status = &s
	}
	limit, offset := parsePagination(c)

	tickets, err := h.service.ListTickets(c.UserContext(), status, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketListResponse{
		TicketCount: len(tickets),
		Tickets:     dto.TicketsFromDomain(tickets),
	})
}

// ListOrderTickets GET /v1/support/tickets/order/:order_id.
func (h *TicketsHandler) ListOrderTickets(c *fiber.Ctx) error {
	orderID, err := parseIDParam(c, "order_id")
	if err != nil {
		return err
	}
	tickets, err := h.service.ListOrderTickets(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OrderTicketsResponse{
		OrderID:     orderID,
		TicketCount: len(tickets),
		Tickets:     dto.TicketsFromDomain(tickets),
	})
}

// ListUserTickets GET /v1/support/tickets/user/:user_id.
func (h *TicketsHandler) ListUserTickets(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}
	tickets, err := h.service.ListUserTickets(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserTicketsResponse{
		UserID:      userID,
		TicketCount: len(tickets),
		Tickets:     dto.TicketsFromDomain(tickets),
	})
}

// UpdateTicketStatus PATCH /v1/support/tickets/:id/status.
func (h *TicketsHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Ticket status updated successfully",
		"ticket":  dto.TicketFromDomain(ticket),
	})
}
