package ratelimit

import (
	"context"
	"sync"
	"time"
)

// entry tracks the request count for one identifier.
type entry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// MemoryLimiter is the in-process backend. State is lost on restart and is
// only valid for a single-instance deployment.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	store  sync.Map // identifier -> *entry

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryLimiter creates an in-process limiter and starts a background
// sweep that drops identifiers whose window has expired.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	go l.sweepLoop(5 * time.Minute)
	return l
}

// Check admits the request when the identifier's window is fresh or its
// count is below the limit. At the limit the request is rejected without
// incrementing, so the stored count never exceeds the limit.
func (l *MemoryLimiter) Check(_ context.Context, identifier string) (Decision, error) {
	now := l.now()

	v, _ := l.store.LoadOrStore(identifier, &entry{})
	e := v.(*entry)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.count == 0 || now.After(e.resetAt) {
		e.count = 1
		e.resetAt = now.Add(l.window)
		return Decision{Admitted: true, Count: 1, Remaining: l.limit - 1, ResetAt: e.resetAt}, nil
	}

	if e.count < l.limit {
		e.count++
		return Decision{Admitted: true, Count: e.count, Remaining: l.limit - e.count, ResetAt: e.resetAt}, nil
	}

	return Decision{Admitted: false, Count: e.count, Remaining: 0, ResetAt: e.resetAt}, nil
}

func (l *MemoryLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for range ticker.C {
		l.sweep(l.now())
	}
}

// sweep drops entries whose window has expired.
func (l *MemoryLimiter) sweep(now time.Time) {
	l.store.Range(func(key, value interface{}) bool {
		e := value.(*entry)
		e.mu.Lock()
		expired := now.After(e.resetAt)
		e.mu.Unlock()
		if expired {
			l.store.Delete(key)
		}
		return true
	})
}
