package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/genesis-commerce/backend/internal/auth"
	"github.com/genesis-commerce/backend/internal/config"
	"github.com/genesis-commerce/backend/internal/domain"
	"github.com/genesis-commerce/backend/internal/observability"
	"github.com/genesis-commerce/backend/internal/persistence"
	"github.com/genesis-commerce/backend/internal/repository"
)

var sampleUsers = []struct {
	Username string
	Email    string
}{
	{"john_doe", "john@example.com"},
	{"jane_smith", "jane@example.com"},
	{"bob_wilson", "bob@example.com"},
	{"alice_brown", "alice@example.com"},
	{"charlie_davis", "charlie@example.com"},
}

var sampleItems = [][]string{
	{"Laptop", "Mouse", "Keyboard"},
	{"Phone", "Case", "Screen Protector"},
	{"Headphones", "USB Cable"},
	{"Monitor", "HDMI Cable", "Desk Mount"},
	{"Tablet", "Stylus"},
	{"Webcam", "Microphone"},
	{"External SSD", "USB Hub"},
	{"Gaming Chair"},
	{"Desk Lamp", "Cable Organizer"},
	{"Backpack", "Water Bottle"},
}

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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	users := repository.NewUserRepository(pg.PoolHandle())
	orders := repository.NewOrderRepository(pg.PoolHandle())

	logger.Info("creating sample users")
	created := make([]*domain.User, 0, len(sampleUsers))
	for _, sample := range sampleUsers {
		hashed, err := auth.HashPassword("password123", cfg.Auth.BcryptCost)
		if err != nil {
			logger.Fatal("failed to hash password", zap.Error(err))
		}
		user := &domain.User{
			Username:     sample.Username,
			Email:        sample.Email,
			PasswordHash: hashed,
			IsActive:     true,
		}
		if err := users.Create(ctx, user); err != nil {
			logger.Warn("skipping user", zap.String("username", sample.Username), zap.Error(err))
			continue
		}
		created = append(created, user)
	}
	logger.Info("created sample users", zap.Int("count", len(created)))

	logger.Info("creating sample orders")
	totalOrders := 0
	for _, user := range created {
		numOrders := 2 + rand.Intn(4)
		for i := 0; i < numOrders; i++ {
			order := &domain.Order{
				UserID: user.ID,
				Items:  sampleItems[rand.Intn(len(sampleItems))],
				Status: domain.ValidOrderStatuses[rand.Intn(len(domain.ValidOrderStatuses))],
			}
			if err := orders.Create(ctx, order); err != nil {
				logger.Warn("skipping order", zap.Int64("user_id", user.ID), zap.Error(err))
				continue
			}
			totalOrders++
		}
	}
	logger.Info("created sample orders", zap.Int("count", totalOrders))

	logger.Info("sample data created",
		zap.Int("users", len(created)),
		zap.Int("orders", totalOrders))
}
