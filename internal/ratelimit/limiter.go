package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter implements a fixed-window counter backed by Redis. When Redis
// is unreachable or unconfigured the limiter fails open.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewLimiter constructs the limiter.
func NewLimiter(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{client: client, limit: limit, window: window, logger: logger}
}

// Allow reports whether the caller identified by key may proceed.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil || l.limit <= 0 {
		return true
	}

	counterKey := "ratelimit:" + key
	count, err := l.client.Incr(ctx, counterKey).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, counterKey, l.window).Err(); err != nil {
			l.logger.Warn("rate limiter expire failed", zap.Error(err))
		}
	}

	return count <= int64(l.limit)
}
