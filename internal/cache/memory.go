package cache

import (
	"context"
	"sync"
	"time"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

type entry struct {
	value    []byte
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.storedAt.Add(e.ttl))
}

// Memory is a process wide in-memory Store. Expired entries are only
// skipped on read and replaced by the next Set; nothing is ever evicted.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   Clock
}

// NewMemory creates an empty Memory store. A nil clock means SystemClock.
func NewMemory(clock Clock) *Memory {
	if clock == nil {
		clock = SystemClock
	}
	return &Memory{entries: make(map[string]entry), clock: clock}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || e.expired(m.clock.Now()) {
		return nil, false
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = entry{value: stored, storedAt: m.clock.Now(), ttl: ttl}
	m.mu.Unlock()
}

// Len returns how many entries are held, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
