package ratelimit

import (
	"context"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "web3-invoicing:ratelimit:"
	redisTimeout   = 250 * time.Millisecond
)

// fixedWindowScript increments the window counter and arms its expiry on the first hit.
// A counter left without a TTL is re-armed, so a window can never become permanent.
// Returns {count, pttl in milliseconds}.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
local ttl = redis.call("PTTL", KEYS[1])
if count == 1 or ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

type redisLimiter struct {
	client *redis.Client
	logger logger.Logger
}

// NewRedisLimiter connects to Redis and returns a limiter shared across instances.
// Redis failures fail open.
func NewRedisLimiter(addr, password string, db int, logger logger.Logger) (Limiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	logger.Info("Connected rate limiter to redis", "addr", addr, "db", db)
	return &redisLimiter{client: client, logger: logger}, nil
}

func (l *redisLimiter) Allow(ctx context.Context, key string, limit int, period time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}
	if period <= 0 {
		period = defaultWindow
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	redisKey := redisKeyPrefix + key
	values, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, period.Milliseconds()).Int64Slice()
	if err != nil || len(values) != 2 {
		l.logger.Error("Rate limiter redis error", "key", key, "error", err)
		return Decision{Allowed: true, Limit: limit, Remaining: limit, ResetAt: time.Now().Add(period)}
	}

	remaining := time.Duration(values[1]) * time.Millisecond
	if remaining <= 0 {
		remaining = period
	}
	return newDecision(int(values[0]), limit, time.Now().Add(remaining))
}

func (l *redisLimiter) Close() error {
	return l.client.Close()
}
