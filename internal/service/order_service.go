package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/genesis-commerce/backend/internal/domain"
	"github.com/genesis-commerce/backend/internal/events"
	"github.com/genesis-commerce/backend/internal/repository"
	apperrors "github.com/genesis-commerce/backend/pkg/util"
)

// OrderService coordinates order workflows.
type OrderService struct {
	orders     repository.OrderRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// OrderDependencies bundles repositories for the order service.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// OrderCreateInput describes order creation payload.
type OrderCreateInput struct {
	UserID int64
	Items  []string
	Status domain.OrderStatus
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateOrder creates an order for an existing user.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderCreateInput) (*domain.Order, error) {
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": input.UserID})
		}
		return nil, err
	}

	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("items required", nil)
	}

	order := &domain.Order{
		UserID: input.UserID,
		Items:  input.Items,
		Status: input.Status,
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if !order.Status.IsValid() {
		return nil, invalidOrderStatusError(order.Status)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventOrderCreated,
		OrderID: order.ID,
		Payload: events.OrderCreatedPayload{
			UserID:    order.UserID,
			ItemCount: len(order.Items),
			Status:    order.Status,
		},
	})
	return order, nil
}

// GetOrder fetches a single order.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": id})
		}
		return nil, err
	}
	return order, nil
}

// ListUserOrders returns every order belonging to the user.
func (s *OrderService) ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListOrders returns orders, optionally filtered by status.
func (s *OrderService) ListOrders(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	filter := repository.OrderFilter{Limit: limit, Offset: offset}
	if status != nil {
		if !status.IsValid() {
			return nil, invalidOrderStatusError(*status)
		}
		filter.Statuses = []domain.OrderStatus{*status}
	}
	return s.orders.ListWithFilter(ctx, filter)
}

// UpdateStatus transitions an order to a new status.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, invalidOrderStatusError(status)
	}

	current, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": id})
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventOrderStatusChanged,
		OrderID: id,
		Payload: events.OrderStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func invalidOrderStatusError(status domain.OrderStatus) error {
	valid := make([]string, 0, len(domain.ValidOrderStatuses))
	for _, v := range domain.ValidOrderStatuses {
		valid = append(valid, string(v))
	}
	return apperrors.NewValidationError("invalid order status", map[string]any{
		"status":         string(status),
		"valid_statuses": valid,
	})
}
