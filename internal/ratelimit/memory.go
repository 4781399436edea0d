package ratelimit

import (
	"context"
	"sync"
	"time"
)

type counter struct {
	windowStart time.Time
	expiresAt   time.Time
	count       int64
}

// MemoryStore keeps counters in process memory. Expired entries are swept
// during increments once per sweepEvery.
type MemoryStore struct {
	mu         sync.Mutex
	counters   map[string]*counter
	lastSweep  time.Time
	sweepEvery time.Duration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counters:   make(map[string]*counter),
		sweepEvery: time.Minute,
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string, windowStart time.Time, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(windowStart)

	c, ok := s.counters[key]
	if !ok || !c.windowStart.Equal(windowStart) {
		c = &counter{windowStart: windowStart, expiresAt: windowStart.Add(window)}
		s.counters[key] = c
	}
	c.count++
	return c.count, nil
}

// Len reports the number of live counters.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}

// sweep must be called with mu held.
func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.sweepEvery {
		return
	}
	s.lastSweep = now
	for key, c := range s.counters {
		if !now.Before(c.expiresAt) {
			delete(s.counters, key)
		}
	}
}
