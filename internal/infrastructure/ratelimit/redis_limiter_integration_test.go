//go:build integration
// +build integration

package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	limiter, err := NewRedisLimiter(redisAddr(), "", 0, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = limiter.Close() })

	ctx := context.Background()
	key := "ip:" + uuid.NewString()

	for i := 1; i <= 2; i++ {
		d := limiter.Allow(ctx, key, 2, time.Minute)
		require.True(t, d.Allowed)
		assert.Equal(t, 2-i, d.Remaining)
		assert.WithinDuration(t, time.Now().Add(time.Minute), d.ResetAt, 2*time.Second)
	}

	d := limiter.Allow(ctx, key, 2, time.Minute)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
}

func TestRedisLimiter_WindowExpires(t *testing.T) {
	limiter, err := NewRedisLimiter(redisAddr(), "", 0, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = limiter.Close() })

	ctx := context.Background()
	key := "ip:" + uuid.NewString()

	require.True(t, limiter.Allow(ctx, key, 1, 500*time.Millisecond).Allowed)
	require.False(t, limiter.Allow(ctx, key, 1, 500*time.Millisecond).Allowed)

	time.Sleep(700 * time.Millisecond)
	assert.True(t, limiter.Allow(ctx, key, 1, 500*time.Millisecond).Allowed)
}

func TestNewRedisLimiter_Unreachable(t *testing.T) {
	_, err := NewRedisLimiter("127.0.0.1:1", "", 0, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestRedisLimiter_ArmsExpiryOnCounterWithoutTTL(t *testing.T) {
	limiter, err := NewRedisLimiter(redisAddr(), "", 0, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = limiter.Close() })

	ctx := context.Background()
	key := "ip:" + uuid.NewString()
	client := limiter.(*redisLimiter).client
	t.Cleanup(func() { _ = client.Del(context.Background(), redisKeyPrefix+key).Err() })

	// a counter whose expiry was never set
	require.NoError(t, client.Set(ctx, redisKeyPrefix+key, 5, 0).Err())

	d := limiter.Allow(ctx, key, 10, time.Minute)
	assert.True(t, d.Allowed)
	assert.Equal(t, 4, d.Remaining)

	ttl, err := client.PTTL(ctx, redisKeyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
