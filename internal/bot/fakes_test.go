package bot

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/genesis-commerce/backend/internal/domain"
	"github.com/genesis-commerce/backend/internal/repository"
)

type fakeOrderRepo struct {
	orders map[int64]domain.Order
}

func newFakeOrderRepo(orders ...domain.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[int64]domain.Order)}
	for _, order := range orders {
		repo.orders[order.ID] = order
	}
	return repo
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &order, nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) ListWithFilter(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	if filter.UserID != nil {
		return r.ListByUser(ctx, *filter.UserID)
	}
	var result []domain.Order
	for _, order := range r.orders {
		result = append(result, order)
	}
	return result, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	order.Status = status
	r.orders[id] = order
	return &order, nil
}

type fakeTicketRepo struct {
	tickets map[int64]domain.Ticket
}

func newFakeTicketRepo(tickets ...domain.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: make(map[int64]domain.Ticket)}
	for _, ticket := range tickets {
		repo.tickets[ticket.ID] = ticket
	}
	return repo
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (r *fakeTicketRepo) ListByOrder(ctx context.Context, orderID int64) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.OrderID == orderID {
			result = append(result, ticket)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return nil, nil
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if filter.OrderID != nil {
		return r.ListByOrder(ctx, *filter.OrderID)
	}
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		result = append(result, ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket.Status = status
	r.tickets[id] = ticket
	return &ticket, nil
}
