package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
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

func newTestLimiter(t *testing.T, limit int, store Store) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 14, 10, 0, 5, 0, time.UTC)}
	l, err := New("default", limit, time.Minute, store)
	require.NoError(t, err)
	return l.WithClock(clock.Now), clock
}

func TestNew_RejectsNonPositiveValues(t *testing.T) {
	_, err := New("info", 0, time.Minute, NewMemoryStore())
	assert.Error(t, err)
	_, err = New("info", 10, 0, NewMemoryStore())
	assert.Error(t, err)

	l, err := New("health", 20, time.Minute, NewMemoryStore())
	require.NoError(t, err)
	assert.Equal(t, "health", l.Name())
	assert.Equal(t, 20, l.Limit())
	assert.Equal(t, time.Minute, l.Window())
}

func TestAllow_RejectsRequestOverLimitAndResetsNextWindow(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLimiter(t, 10, NewMemoryStore())

	for i := 0; i < 10; i++ {
		d, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i+1)
	}

	d, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, time.Date(2026, 10, 14, 10, 1, 0, 0, time.UTC), d.ResetAt)
	assert.Equal(t, 55*time.Second, d.RetryAfter(clock.Now()))

	clock.Advance(55 * time.Second)
	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 9, d.Remaining)
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(t, 1, NewMemoryStore())

	d, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestAllow_LimitersWithSharedStoreDoNotCollide(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	info, err := New("info", 1, time.Minute, store)
	require.NoError(t, err)
	health, err := New("health", 1, time.Minute, store)
	require.NoError(t, err)

	d, err := info.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = health.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestAllow_ConcurrentIncrementsDoNotRace(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(t, 50, NewMemoryStore())

	var allowed int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := l.Allow(ctx, "10.0.0.1")
			if err == nil && d.Allowed {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), allowed)
}

func TestMemoryStore_SweepsExpiredWindows(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	l, clock := newTestLimiter(t, 5, store)

	_, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	_, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	clock.Advance(time.Minute)
	_, err = l.Allow(ctx, "10.0.0.3")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}
