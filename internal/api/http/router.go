package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genesis-commerce/backend/internal/api/http/handlers"
	"github.com/genesis-commerce/backend/internal/auth"
	"github.com/genesis-commerce/backend/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Orders         *handlers.OrdersHandler
	Tickets        *handlers.TicketsHandler
	Support        *handlers.SupportHandler
	AuthMiddleware *auth.AuthMiddleware
	ChatLimiter    *ratelimit.Limiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	orders := v1.Group("/orders")
	orders.Get("/", cfg.Orders.ListOrders)
	orders.Post("/", cfg.Orders.CreateOrder)
	orders.Get("/user/:user_id", cfg.Orders.ListUserOrders)
	orders.Get("/:id", cfg.Orders.GetOrder)
	orders.Patch("/:id/status", cfg.Orders.UpdateOrderStatus)

	support := v1.Group("/support")
	support.Post("/tickets", cfg.Tickets.CreateTicket)
	support.Get("/tickets", cfg.Tickets.ListTickets)
	support.Get("/tickets/order/:order_id", cfg.Tickets.ListOrderTickets)
	support.Get("/tickets/user/:user_id", cfg.Tickets.ListUserTickets)
	support.Get("/tickets/:id", cfg.Tickets.GetTicket)
	support.Patch("/tickets/:id/status", cfg.Tickets.UpdateTicketStatus)

	chat := support.Group("/chat", ChatRateLimit(cfg.ChatLimiter))
	chat.Post("/", cfg.Support.Chat)
	chat.Post("/order/:id", cfg.Support.ChatAboutOrder)
	chat.Post("/ticket/:id", cfg.Support.ChatAboutTicket)
}
