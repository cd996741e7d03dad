package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(limit int, window time.Duration) (*MemoryLimiter, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := &MemoryLimiter{
		limit:  limit,
		window: window,
		now:    func() time.Time { return now },
	}
	return l, &now
}

func TestMemoryLimiterAdmitsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(5, time.Hour)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		d, err := l.Check(ctx, "203.0.113.7")
		assert.NoError(t, err)
		assert.True(t, d.Admitted, "request %d should be admitted", i)
		assert.Equal(t, i, d.Count)
		assert.Equal(t, 5-i, d.Remaining)
	}

	for i := 0; i < 3; i++ {
		d, err := l.Check(ctx, "203.0.113.7")
		assert.NoError(t, err)
		assert.False(t, d.Admitted)
		assert.Equal(t, 5, d.Count, "rejected attempts must not grow the count")
		assert.Equal(t, 0, d.Remaining)
	}
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	l, now := newTestLimiter(5, time.Hour)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, _ = l.Check(ctx, "198.51.100.2")
	}

	*now = now.Add(time.Hour + time.Second)

	d, err := l.Check(ctx, "198.51.100.2")
	assert.NoError(t, err)
	assert.True(t, d.Admitted)
	assert.Equal(t, 1, d.Count, "expired window must restart counting at 1")
	assert.Equal(t, 4, d.Remaining)
	assert.Equal(t, now.Add(time.Hour), d.ResetAt)
}

func TestMemoryLimiterIsolatesIdentifiers(t *testing.T) {
	l, _ := newTestLimiter(1, time.Hour)
	ctx := context.Background()

	d1, _ := l.Check(ctx, "a")
	d2, _ := l.Check(ctx, "b")
	d3, _ := l.Check(ctx, "a")

	assert.True(t, d1.Admitted)
	assert.True(t, d2.Admitted)
	assert.False(t, d3.Admitted)
}

func TestMemoryLimiterSweepDropsExpiredEntries(t *testing.T) {
	l, now := newTestLimiter(5, time.Hour)
	ctx := context.Background()

	_, _ = l.Check(ctx, "stale")
	l.sweep(now.Add(2 * time.Hour))

	_, ok := l.store.Load("stale")
	assert.False(t, ok, "expired entry should have been swept")
}
