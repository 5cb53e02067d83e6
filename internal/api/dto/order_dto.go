package dto

import (
	"time"

	"github.com/genesis-commerce/backend/internal/domain"
)

// CreateOrderRequest payload.
type CreateOrderRequest struct {
	UserID int64              `json:"user_id"`
	Items  []string           `json:"items"`
	Status domain.OrderStatus `json:"status"`
}

// UpdateOrderStatusRequest payload.
type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// OrderResponse response.
type OrderResponse struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	Items     []string           `json:"items"`
	Status    domain.OrderStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// UserOrdersResponse lists a user's orders with a count, mirroring the
// orders API envelope.
type UserOrdersResponse struct {
	UserID     int64           `json:"user_id"`
	OrderCount int             `json:"order_count"`
	Orders     []OrderResponse `json:"orders"`
}

// OrderFromDomain maps a domain order to its response shape.
func OrderFromDomain(order *domain.Order) OrderResponse {
	items := order.Items
	if items == nil {
		items = []string{}
	}
	return OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		Items:     items,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

// OrdersFromDomain maps a slice of domain orders.
func OrdersFromDomain(orders []domain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, OrderFromDomain(&orders[i]))
	}
	return result
}
