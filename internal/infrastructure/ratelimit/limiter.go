// Package ratelimit provides fixed window request limiters keyed by an arbitrary string, usually the client IP.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"
)

const defaultWindow = time.Minute

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter counts hits per key within fixed windows.
type Limiter interface {
	// Allow registers one hit for key. A limit <= 0 always allows.
	Allow(ctx context.Context, key string, limit int, window time.Duration) Decision
	Close() error
}

func newDecision(count, limit int, resetAt time.Time) Decision {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// NewLimiter returns a Redis backed limiter when an address is configured, otherwise an in-memory one.
func NewLimiter(settings *config.RateLimitSettings, logger logger.Logger) (Limiter, error) {
	if settings.RedisAddr == "" {
		return NewMemoryLimiter(), nil
	}
	limiter, err := NewRedisLimiter(settings.RedisAddr, settings.RedisPassword, settings.RedisDB, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis rate limiter: %w", err)
	}
	return limiter, nil
}
