package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/genesis-commerce/backend/internal/repository"
)

// ContextRef names the entities a chat request wants context for.
type ContextRef struct {
	OrderID  *int64
	TicketID *int64
	UserID   *int64
}

// ContextResolver maps entity identifiers to descriptive text blocks.
// Lookups that fail or match nothing contribute an empty block; a
// malformed or unknown id never surfaces an error to the caller.
type ContextResolver struct {
	orders  repository.OrderRepository
	tickets repository.TicketRepository
	logger  *zap.Logger
}

// NewContextResolver constructs the resolver.
func NewContextResolver(orders repository.OrderRepository, tickets repository.TicketRepository, logger *zap.Logger) *ContextResolver {
	return &ContextResolver{orders: orders, tickets: tickets, logger: logger}
}

// Resolve fetches the referenced entities and serializes them to text.
func (r *ContextResolver) Resolve(ctx context.Context, ref ContextRef) string {
	var parts []string

	if ref.OrderID != nil {
		if block := r.orderContext(ctx, *ref.OrderID); block != "" {
			parts = append(parts, block)
		}
	}
	if ref.TicketID != nil {
		if block := r.ticketContext(ctx, *ref.TicketID); block != "" {
			parts = append(parts, block)
		}
	}
	if ref.UserID != nil {
		if block := r.userOrdersContext(ctx, *ref.UserID); block != "" {
			parts = append(parts, block)
		}
	}

	return strings.Join(parts, "\n\n")
}

func (r *ContextResolver) orderContext(ctx context.Context, orderID int64) string {
	order, err := r.orders.GetByID(ctx, orderID)
	if err != nil {
		r.logger.Debug("order context skipped", zap.Int64("order_id", orderID), zap.Error(err))
		return ""
	}

	return fmt.Sprintf(`Order Information:
- Order ID: %d
- User ID: %d
- Items: %s
- Status: %s
- Created: %s
- Last Updated: %s`,
		order.ID,
		order.UserID,
		strings.Join(order.Items, ", "),
		order.Status,
		formatTime(order.CreatedAt),
		formatTime(order.UpdatedAt),
	)
}

func (r *ContextResolver) ticketContext(ctx context.Context, ticketID int64) string {
	ticket, err := r.tickets.GetByID(ctx, ticketID)
	if err != nil {
		r.logger.Debug("ticket context skipped", zap.Int64("ticket_id", ticketID), zap.Error(err))
		return ""
	}

	orderStatus := "unknown"
	if order, err := r.orders.GetByID(ctx, ticket.OrderID); err == nil {
		orderStatus = string(order.Status)
	}

	return fmt.Sprintf(`Support Ticket Information:
- Ticket ID: %d
- Order ID: %d
- Order Status: %s
- Issue: %s
- Ticket Status: %s
- Created: %s
- Last Updated: %s`,
		ticket.ID,
		ticket.OrderID,
		orderStatus,
		ticket.IssueDescription,
		ticket.Status,
		formatTime(ticket.CreatedAt),
		formatTime(ticket.UpdatedAt),
	)
}

func (r *ContextResolver) userOrdersContext(ctx context.Context, userID int64) string {
	orders, err := r.orders.ListByUser(ctx, userID)
	if err != nil {
		r.logger.Debug("user orders context skipped", zap.Int64("user_id", userID), zap.Error(err))
		return ""
	}
	if len(orders) == 0 {
		r.logger.Debug("user has no orders", zap.Int64("user_id", userID))
		return ""
	}

	var info strings.Builder
	fmt.Fprintf(&info, "User #%d has %d order(s):\n", userID, len(orders))
	for _, order := range orders {
		fmt.Fprintf(&info, "\n- Order #%d: %s - %d item(s) - Created: %s",
			order.ID, order.Status, len(order.Items), formatTime(order.CreatedAt))
	}
	return info.String()
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
