package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genesis-commerce/backend/internal/domain"
	"github.com/genesis-commerce/backend/internal/events"
	apperrors "github.com/genesis-commerce/backend/pkg/util"
)

func newTicketFixture(orders ...domain.Order) (*TicketService, *fakeTicketRepo, *capturingDispatcher) {
	orderRepo := newFakeOrderRepo(orders...)
	ticketRepo := newFakeTicketRepo(orderRepo)
	dispatcher := &capturingDispatcher{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: ticketRepo,
		OrderRepo:  orderRepo,
		Dispatcher: dispatcher,
	})
	return svc, ticketRepo, dispatcher
}

func TestCreateTicket(t *testing.T) {
	svc, _, dispatcher := newTicketFixture(domain.Order{ID: 7, UserID: 1, Status: domain.OrderStatusShipped})

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		OrderID:          7,
		IssueDescription: "  package arrived damaged  ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), ticket.OrderID)
	assert.Equal(t, "package arrived damaged", ticket.IssueDescription)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)

	published := dispatcher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTicketCreated, published[0].Type)
	assert.Equal(t, ticket.ID, published[0].TicketID)
}

func TestCreateTicketUnknownOrder(t *testing.T) {
	svc, _, dispatcher := newTicketFixture()

	_, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		OrderID:          404,
		IssueDescription: "never arrived",
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Empty(t, dispatcher.Events())
}

func TestCreateTicketEmptyDescription(t *testing.T) {
	svc, _, _ := newTicketFixture(domain.Order{ID: 1, UserID: 1})

	_, err := svc.CreateTicket(context.Background(), TicketCreateInput{OrderID: 1, IssueDescription: "   "})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestTicketUpdateStatus(t *testing.T) {
	svc, tickets, dispatcher := newTicketFixture(domain.Order{ID: 3, UserID: 2})
	seed := domain.Ticket{OrderID: 3, IssueDescription: "wrong size", Status: domain.TicketStatusOpen}
	require.NoError(t, tickets.Create(context.Background(), &seed))

	updated, err := svc.UpdateStatus(context.Background(), seed.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)

	published := dispatcher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTicketStatusChanged, published[0].Type)
	payload, ok := published[0].Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusOpen, payload.OldStatus)
	assert.Equal(t, domain.TicketStatusResolved, payload.NewStatus)
}

func TestTicketUpdateStatusInvalid(t *testing.T) {
	svc, _, _ := newTicketFixture()

	_, err := svc.UpdateStatus(context.Background(), 1, domain.TicketStatus("escalated"))
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, "valid_statuses")
}

func TestListTicketsStatusFilter(t *testing.T) {
	svc, tickets, _ := newTicketFixture(domain.Order{ID: 1, UserID: 1})
	for _, status := range []domain.TicketStatus{domain.TicketStatusOpen, domain.TicketStatusClosed, domain.TicketStatusOpen} {
		ticket := domain.Ticket{OrderID: 1, IssueDescription: "issue", Status: status}
		require.NoError(t, tickets.Create(context.Background(), &ticket))
	}

	open := domain.TicketStatusOpen
	result, err := svc.ListTickets(context.Background(), &open, 10, 0)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestListUserTickets(t *testing.T) {
	svc, tickets, _ := newTicketFixture(
		domain.Order{ID: 1, UserID: 10},
		domain.Order{ID: 2, UserID: 20},
	)
	first := domain.Ticket{OrderID: 1, IssueDescription: "a", Status: domain.TicketStatusOpen}
	second := domain.Ticket{OrderID: 2, IssueDescription: "b", Status: domain.TicketStatusOpen}
	require.NoError(t, tickets.Create(context.Background(), &first))
	require.NoError(t, tickets.Create(context.Background(), &second))

	result, err := svc.ListUserTickets(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].OrderID)
}
