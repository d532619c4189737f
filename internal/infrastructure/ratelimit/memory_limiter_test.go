//go:build unit
// +build unit

package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	limiter := newMemoryLimiter(clock.Now)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		d := limiter.Allow(ctx, "ip:10.0.0.1", 3, time.Minute)
		require.True(t, d.Allowed, "hit %d", i)
		assert.Equal(t, 3-i, d.Remaining)
		assert.Equal(t, 3, d.Limit)
		assert.Equal(t, clock.Now().Add(time.Minute), d.ResetAt)
	}

	d := limiter.Allow(ctx, "ip:10.0.0.1", 3, time.Minute)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	other := limiter.Allow(ctx, "ip:10.0.0.2", 3, time.Minute)
	assert.True(t, other.Allowed)

	clock.Advance(time.Minute)
	d = limiter.Allow(ctx, "ip:10.0.0.1", 3, time.Minute)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestMemoryLimiter_ZeroLimitDisables(t *testing.T) {
	limiter := newMemoryLimiter(time.Now)

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow(context.Background(), "ip:1", 0, time.Minute).Allowed)
	}
	assert.Empty(t, limiter.entries)
}

func TestMemoryLimiter_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	limiter := newMemoryLimiter(clock.Now)
	ctx := context.Background()

	limiter.Allow(ctx, "a", 5, time.Minute)
	limiter.Allow(ctx, "b", 5, 2*time.Minute)

	clock.Advance(90 * time.Second)
	assert.Equal(t, 1, limiter.sweep())
	assert.Len(t, limiter.entries, 1)
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	limiter := NewMemoryLimiter()
	defer limiter.Close()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow(context.Background(), "ip:shared", 20, time.Minute).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, allowed)
	assert.NoError(t, limiter.Close())
}
