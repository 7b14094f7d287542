package ratelimit

import (
	"context"
	"sync"
	"time"
)

const defaultCleanupInterval = time.Minute

// Memory is an in-process Store with periodic cleanup of expired records.
type Memory struct {
	records         map[string]Record
	maxAge          time.Duration
	cleanupInterval time.Duration
	done            chan struct{}
	mu              sync.Mutex
	closed          bool
}

// MemoryOption configures the in-memory store.
type MemoryOption func(*Memory)

// WithCleanupInterval sets how often expired records are swept.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(m *Memory) {
		if d > 0 {
			m.cleanupInterval = d
		}
	}
}

// NewMemory creates an in-memory store. Records older than maxAge (normally
// the admission window) are removed by a background janitor. Call Close to
// stop the janitor.
func NewMemory(maxAge time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		records:         make(map[string]Record),
		maxAge:          maxAge,
		cleanupInterval: defaultCleanupInterval,
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	go m.janitor()

	return m
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, identity string) (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[identity]
	return rec, ok, nil
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, identity string, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[identity] = rec
	return nil
}

// Update implements Updater. The callback runs under the store lock, so
// read-count-then-write for one identity cannot interleave with another
// request for the same identity. The callback must not block.
func (m *Memory) Update(_ context.Context, identity string, fn func(rec Record, ok bool) Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[identity]
	next := fn(rec, ok)
	m.records[identity] = next
	return next, nil
}

// Len returns the number of tracked identities.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Close stops the cleanup goroutine. The store remains usable afterwards,
// but expired records are no longer swept.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.removeExpired(time.Now())
		}
	}
}

// removeExpired deletes records whose window started more than maxAge ago.
func (m *Memory) removeExpired(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for identity, rec := range m.records {
		if now.Sub(rec.WindowStart) > m.maxAge {
			delete(m.records, identity)
		}
	}
}
