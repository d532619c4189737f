package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

type window struct {
	count int
	end   time.Time
}

type memoryLimiter struct {
	mu      sync.Mutex
	entries map[string]window
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

// NewMemoryLimiter returns a process local limiter. Expired windows are swept periodically until Close.
func NewMemoryLimiter() Limiter {
	l := newMemoryLimiter(time.Now)
	go l.sweepLoop()
	return l
}

func newMemoryLimiter(now func() time.Time) *memoryLimiter {
	return &memoryLimiter{
		entries: make(map[string]window),
		now:     now,
		stopCh:  make(chan struct{}),
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string, limit int, period time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}
	if period <= 0 {
		period = defaultWindow
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.entries[key]
	if !ok || !now.Before(w.end) {
		w = window{end: now.Add(period)}
	}
	// rejected hits are not counted so a client cannot extend its own lockout
	if w.count >= limit {
		return newDecision(limit+1, limit, w.end)
	}
	w.count++
	l.entries[key] = w
	return newDecision(w.count, limit, w.end)
}

func (l *memoryLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stopCh:
			return
		}
	}
}

func (l *memoryLimiter) sweep() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, w := range l.entries {
		if !now.Before(w.end) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

func (l *memoryLimiter) Close() error {
	l.once.Do(func() {
		close(l.stopCh)
	})
	return nil
}
