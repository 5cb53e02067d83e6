package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/genesis-commerce/backend/internal/api/http"
	"github.com/genesis-commerce/backend/internal/api/http/handlers"
	"github.com/genesis-commerce/backend/internal/auth"
	"github.com/genesis-commerce/backend/internal/bot"
	"github.com/genesis-commerce/backend/internal/config"
	"github.com/genesis-commerce/backend/internal/events"
	"github.com/genesis-commerce/backend/internal/llm"
	"github.com/genesis-commerce/backend/internal/observability"
	"github.com/genesis-commerce/backend/internal/persistence"
	"github.com/genesis-commerce/backend/internal/ratelimit"
	"github.com/genesis-commerce/backend/internal/repository"
	"github.com/genesis-commerce/backend/internal/service"
	"github.com/genesis-commerce/backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

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
	authService := service.NewAuthService(cfg.Auth, userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	gemini := llm.NewGeminiClient(cfg.Gemini)
	resolver := bot.NewContextResolver(orderRepo, ticketRepo, logger)
	supportBot := bot.NewSupportBot(cfg.Bot, resolver, gemini, logger)

	chatLimiter := ratelimit.NewLimiter(redis.ClientHandle(), cfg.RateLimit.ChatRequests, cfg.RateLimit.ChatWindow(), logger)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Support:        handlers.NewSupportHandler(supportBot, orderService, ticketService),
		AuthMiddleware: authMiddleware,
		ChatLimiter:    chatLimiter,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
