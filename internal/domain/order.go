package domain

import "time"

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatuses lists every accepted order status, in lifecycle order.
var ValidOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValid reports whether the status is one of the known values.
func (s OrderStatus) IsValid() bool {
	for _, valid := range ValidOrderStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Order is the aggregate for customer purchases.
type Order struct {
	ID        int64
	UserID    int64
	Items     []string
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
