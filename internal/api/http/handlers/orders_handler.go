package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genesis-commerce/backend/internal/api/dto"
	"github.com/genesis-commerce/backend/internal/domain"
	"github.com/genesis-commerce/backend/internal/service"
	apperrors "github.com/genesis-commerce/backend/pkg/util"
)

// OrdersHandler manages order endpoints.
type OrdersHandler struct {
	service *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// CreateOrder POST /v1/orders.
func (h *OrdersHandler) CreateOrder(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID <= 0 {
		return apperrors.NewValidationError("user_id required", nil)
	}

	order, err := h.service.CreateOrder(c.UserContext(), service.OrderCreateInput{
		UserID: req.UserID,
		Items:  req.Items,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   dto.OrderFromDomain(order),
	})
}

// GetOrder GET /v1/orders/:id.
func (h *OrdersHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	order, err := h.service.GetOrder(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OrderFromDomain(order))
}

// ListOrders GET /v1/orders.
func (h *OrdersHandler) ListOrders(c *fiber.Ctx) error {
	var status *domain.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.OrderStatus(raw)
		status = &s
	}
	limit, offset := parsePagination(c)

	orders, err := h.service.ListOrders(c.UserContext(), status, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"order_count": len(orders),
		"orders":      dto.OrdersFromDomain(orders),
	})
}

// ListUserOrders GET /v1/orders/user/:user_id.
func (h *OrdersHandler) ListUserOrders(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}
	orders, err := h.service.ListUserOrders(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserOrdersResponse{
		UserID:     userID,
		OrderCount: len(orders),
		Orders:     dto.OrdersFromDomain(orders),
	})
}

// UpdateOrderStatus PATCH /v1/orders/:id/status.
func (h *OrdersHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.service.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
		"order":   dto.OrderFromDomain(order),
	})
}
