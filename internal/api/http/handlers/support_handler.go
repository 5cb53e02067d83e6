package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/genesis-commerce/backend/internal/api/dto"
	"github.com/genesis-commerce/backend/internal/bot"
	"github.com/genesis-commerce/backend/internal/service"
	apperrors "github.com/genesis-commerce/backend/pkg/util"
)

// SupportHandler manages the customer support chat endpoints.
type SupportHandler struct {
	bot     *bot.SupportBot
	orders  *service.OrderService
	tickets *service.TicketService
}

// NewSupportHandler constructs handler.
func NewSupportHandler(supportBot *bot.SupportBot, orderService *service.OrderService, ticketService *service.TicketService) *SupportHandler {
	return &SupportHandler{bot: supportBot, orders: orderService, tickets: ticketService}
}

// Chat POST /v1/support/chat.
func (h *SupportHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}

	response, err := h.bot.Chat(c.UserContext(), bot.ChatInput{
		Message:  req.Message,
		OrderID:  req.OrderID,
		TicketID: req.TicketID,
		UserID:   req.UserID,
		History:  dto.HistoryToDomain(req.ConversationHistory),
	})
	if err != nil {
		return apperrors.NewUpstreamError("failed to generate support response", err)
	}
	return c.JSON(dto.ChatResponse{Response: response})
}

// ChatAboutOrder POST /v1/support/chat/order/:id?message=...
//
// Convenience endpoint that verifies the order and includes its context.
func (h *SupportHandler) ChatAboutOrder(c *fiber.Ctx) error {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	message := strings.TrimSpace(c.Query("message"))
	if message == "" {
		return apperrors.NewValidationError("message required", nil)
	}

	if _, err := h.orders.GetOrder(c.UserContext(), orderID); err != nil {
		return err
	}

	response, err := h.bot.Chat(c.UserContext(), bot.ChatInput{
		Message: message,
		OrderID: &orderID,
	})
	if err != nil {
		return apperrors.NewUpstreamError("failed to generate support response", err)
	}
	return c.JSON(dto.ChatResponse{Response: response})
}

// ChatAboutTicket POST /v1/support/chat/ticket/:id?message=...
//
// Convenience endpoint that verifies the ticket and includes its context.
func (h *SupportHandler) ChatAboutTicket(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	message := strings.TrimSpace(c.Query("message"))
	if message == "" {
		return apperrors.NewValidationError("message required", nil)
	}

	if _, err := h.tickets.GetTicket(c.UserContext(), ticketID); err != nil {
		return err
	}

	response, err := h.bot.Chat(c.UserContext(), bot.ChatInput{
		Message:  message,
		TicketID: &ticketID,
	})
	if err != nil {
		return apperrors.NewUpstreamError("failed to generate support response", err)
	}
	return c.JSON(dto.ChatResponse{Response: response})
}
