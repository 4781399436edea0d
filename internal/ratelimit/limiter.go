// Package ratelimit counts requests per client in fixed time windows.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Store increments the counter for key in the window starting at
// windowStart and returns the new count. Increment and read must be one
// atomic step for a given key.
type Store interface {
	Increment(ctx context.Context, key string, windowStart time.Time, window time.Duration) (int64, error)
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the time left until the current window closes.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if wait := d.ResetAt.Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// Limiter enforces limit requests per window for each client key.
type Limiter struct {
	name   string
	limit  int
	window time.Duration
	store  Store
	now    func() time.Time
}

func New(name string, limit int, window time.Duration, store Store) (*Limiter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("rate limit %q: limit must be positive, got %d", name, limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("rate limit %q: window must be positive, got %s", name, window)
	}
	return &Limiter{
		name:   name,
		limit:  limit,
		window: window,
		store:  store,
		now:    time.Now,
	}, nil
}

// WithClock replaces the limiter's time source.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

func (l *Limiter) Name() string          { return l.name }
func (l *Limiter) Limit() int            { return l.limit }
func (l *Limiter) Window() time.Duration { return l.window }
func (l *Limiter) Now() time.Time        { return l.now() }

// Allow records one request from client and reports whether it fits in
// the current window.
func (l *Limiter) Allow(ctx context.Context, client string) (Decision, error) {
	now := l.now()
	windowStart := now.Truncate(l.window)
	decision := Decision{
		Limit:   l.limit,
		ResetAt: windowStart.Add(l.window),
	}

	count, err := l.store.Increment(ctx, l.name+"|"+client, windowStart, l.window)
	if err != nil {
		return decision, fmt.Errorf("rate limit %q: %w", l.name, err)
	}

	decision.Allowed = count <= int64(l.limit)
	if remaining := int64(l.limit) - count; remaining > 0 {
		decision.Remaining = int(remaining)
	}
	return decision, nil
}
