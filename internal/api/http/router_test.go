package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/genesis-commerce/backend/internal/api/http/handlers"
	"github.com/genesis-commerce/backend/internal/auth"
	"github.com/genesis-commerce/backend/internal/bot"
	"github.com/genesis-commerce/backend/internal/config"
	"github.com/genesis-commerce/backend/internal/domain"
	"github.com/genesis-commerce/backend/internal/events"
	"github.com/genesis-commerce/backend/internal/observability"
	"github.com/genesis-commerce/backend/internal/ratelimit"
	"github.com/genesis-commerce/backend/internal/repository"
	"github.com/genesis-commerce/backend/internal/service"
)

type fakeUserRepo struct {
	users map[int64]domain.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = int64(len(r.users) + 1)
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
		if user.Email == email {
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
	orders map[int64]domain.Order
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	order.ID = int64(len(r.orders) + 1)
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

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	ticket.ID = int64(len(r.tickets) + 1)
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

type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (g *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type testFixture struct {
	app       *fiber.App
	generator *fakeGenerator
	orders    *fakeOrderRepo
	tickets   *fakeTicketRepo
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	logger := zap.NewNop()

	docsDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(docsDir, "terms_and_conditions.txt"),
		[]byte("Returns are accepted within 30 days."), 0o644))

	userRepo := &fakeUserRepo{users: map[int64]domain.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com"},
	}}
	orderRepo := &fakeOrderRepo{orders: map[int64]domain.Order{
		1: {ID: 1, UserID: 1, Items: []string{"Laptop"}, Status: domain.OrderStatusShipped},
	}}
	ticketRepo := &fakeTicketRepo{tickets: map[int64]domain.Ticket{
		1: {ID: 1, OrderID: 1, IssueDescription: "damaged screen", Status: domain.TicketStatusOpen},
	}}

	dispatcher := noopDispatcher{}
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:  orderRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		OrderRepo:  orderRepo,
		Dispatcher: dispatcher,
	})
	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 30,
		BcryptCost:            4,
	}, userRepo)

	generator := &fakeGenerator{response: "You can return your order within 30 days."}
	resolver := bot.NewContextResolver(orderRepo, ticketRepo, logger)
	supportBot := bot.NewSupportBot(config.BotConfig{
		DocumentsDir:       docsDir,
		MaxHistoryMessages: 5,
	}, resolver, generator, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("genesis-commerce", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Support:        handlers.NewSupportHandler(supportBot, orderService, ticketService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
		ChatLimiter:    ratelimit.NewLimiter(nil, 20, time.Minute, logger),
	})

	return &testFixture{app: app, generator: generator, orders: orderRepo, tickets: ticketRepo}
}

type noopDispatcher struct{}

func (noopDispatcher) Publish(ctx context.Context, event events.Event) error { return nil }

func (noopDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestChatReturnsModelResponse(t *testing.T) {
	fixture := newTestFixture(t)

	status, body := postJSON(t, fixture.app, "/v1/support/chat/", map[string]any{
		"message": "What is your return policy?",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "You can return your order within 30 days.", body["response"])
	assert.Contains(t, fixture.generator.lastPrompt, "Returns are accepted within 30 days.")
	assert.Contains(t, fixture.generator.lastPrompt, "What is your return policy?")
}

func TestChatWithOrderContext(t *testing.T) {
	fixture := newTestFixture(t)

	status, body := postJSON(t, fixture.app, "/v1/support/chat/", map[string]any{
		"message":  "Where is my order?",
		"order_id": 1,
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["response"])
	assert.Contains(t, fixture.generator.lastPrompt, "Order Information:")
	assert.Contains(t, fixture.generator.lastPrompt, "- Order ID: 1")
}

func TestChatMissingMessage(t *testing.T) {
	fixture := newTestFixture(t)

	status, body := postJSON(t, fixture.app, "/v1/support/chat/", map[string]any{
		"message": "   ",
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
}

func TestChatUpstreamFailure(t *testing.T) {
	fixture := newTestFixture(t)
	fixture.generator.err = errors.New("gemini request failed: status=500")

	status, body := postJSON(t, fixture.app, "/v1/support/chat/", map[string]any{
		"message": "Hello",
	})
	require.Equal(t, fiber.StatusBadGateway, status)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "UPSTREAM_ERROR", errBody["code"])
}

func TestChatAboutOrder(t *testing.T) {
	fixture := newTestFixture(t)

	status, body := postJSON(t, fixture.app, "/v1/support/chat/order/1?message=where+is+it", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["response"])
}

func TestChatAboutUnknownOrder(t *testing.T) {
	fixture := newTestFixture(t)

	status, body := postJSON(t, fixture.app, "/v1/support/chat/order/999?message=where+is+it", nil)
	require.Equal(t, fiber.StatusNotFound, status)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
}

func TestChatAboutUnknownTicket(t *testing.T) {
	fixture := newTestFixture(t)

	status, _ := postJSON(t, fixture.app, "/v1/support/chat/ticket/999?message=any+update", nil)
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestCreateAndFetchTicket(t *testing.T) {
	fixture := newTestFixture(t)

	status, body := postJSON(t, fixture.app, "/v1/support/tickets", map[string]any{
		"order_id":          1,
		"issue_description": "missing accessory",
	})
	require.Equal(t, fiber.StatusCreated, status)
	ticket, ok := body["ticket"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "open", ticket["status"])

	req := httptest.NewRequest(fiber.MethodGet, "/v1/support/tickets/order/1", nil)
	resp, err := fixture.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreateOrderUnknownUserReturns404(t *testing.T) {
	fixture := newTestFixture(t)

	status, body := postJSON(t, fixture.app, "/v1/orders/", map[string]any{
		"user_id": 999,
		"items":   []string{"Book"},
	})
	require.Equal(t, fiber.StatusNotFound, status)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
}

func TestRootRoute(t *testing.T) {
	fixture := newTestFixture(t)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	resp, err := fixture.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
