package service

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/genesis-commerce/backend/internal/domain"
	"github.com/genesis-commerce/backend/internal/events"
	"github.com/genesis-commerce/backend/internal/repository"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{nextID: 1, users: make(map[int64]domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeOrderRepo struct {
	nextID int64
	orders map[int64]domain.Order
}

func newFakeOrderRepo(orders ...domain.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{nextID: 1, orders: make(map[int64]domain.Order)}
	for _, order := range orders {
		repo.orders[order.ID] = order
		if order.ID >= repo.nextID {
			repo.nextID = order.ID + 1
		}
	}
	return repo
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	order.ID = r.nextID
	r.nextID++
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
	var result []domain.Order
	for _, order := range r.orders {
		if filter.UserID != nil && order.UserID != *filter.UserID {
			continue
		}
		if len(filter.Statuses) > 0 && order.Status != filter.Statuses[0] {
			continue
		}
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
	nextID  int64
	tickets map[int64]domain.Ticket
	orders  *fakeOrderRepo
}

func newFakeTicketRepo(orders *fakeOrderRepo, tickets ...domain.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{nextID: 1, tickets: make(map[int64]domain.Ticket), orders: orders}
	for _, ticket := range tickets {
		repo.tickets[ticket.ID] = ticket
		if ticket.ID >= repo.nextID {
			repo.nextID = ticket.ID + 1
		}
	}
	return repo
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	ticket.ID = r.nextID
	r.nextID++
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
	if r.orders == nil {
		return nil, nil
	}
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		order, ok := r.orders.orders[ticket.OrderID]
		if ok && order.UserID == userID {
			result = append(result, ticket)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.OrderID != nil && ticket.OrderID != *filter.OrderID {
			continue
		}
		if len(filter.Statuses) > 0 && ticket.Status != filter.Statuses[0] {
			continue
		}
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

type capturingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *capturingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *capturingDispatcher) Events() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
