package ratelimit

import (
	"context"
	"time"
)

// Defaults applied when New receives zero values.
const (
	DefaultWindow   = 15 * time.Minute
	DefaultCapacity = 5
)

// Limiter decides whether a submission attempt is admitted.
// Fixed window per identity: the first attempt opens a window with count 1;
// attempts inside the window increment the count and are admitted while the
// count stays within capacity; once the window elapses the next attempt
// opens a fresh window.
type Limiter struct {
	store    Store
	window   time.Duration
	capacity int
	now      func() time.Time
}

// Option configures the limiter.
type Option func(*Limiter)

// WithClock injects a clock, used by tests to control window expiry.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a limiter on top of the given store.
// Zero window or capacity fall back to the defaults (15m, 5).
func New(store Store, window time.Duration, capacity int, opts ...Option) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	l := &Limiter{
		store:    store,
		window:   window,
		capacity: capacity,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Allow records one attempt for the identity and reports whether it is
// admitted. Store errors fail open: the attempt is admitted and the error
// returned for the caller to log.
func (l *Limiter) Allow(ctx context.Context, identity string) (bool, error) {
	now := l.now()

	if u, ok := l.store.(Updater); ok {
		rec, err := u.Update(ctx, identity, func(rec Record, ok bool) Record {
			return l.tick(rec, ok, now)
		})
		if err != nil {
			return true, err
		}
		return rec.Count <= l.capacity, nil
	}

	// Get/Set fallback for stores without atomic update (e.g. Redis):
	// best-effort counting, races tolerated.
	rec, ok, err := l.store.Get(ctx, identity)
	if err != nil {
		return true, err
	}

	rec = l.tick(rec, ok, now)
	if err := l.store.Set(ctx, identity, rec); err != nil {
		return true, err
	}

	return rec.Count <= l.capacity, nil
}

// tick advances the record for one attempt at the given instant.
// The count is capped at capacity+1 so sustained abuse does not grow the
// stored number unboundedly while still being distinguishable from an
// exactly-full window.
func (l *Limiter) tick(rec Record, exists bool, now time.Time) Record {
	if !exists || now.Sub(rec.WindowStart) >= l.window {
		return Record{WindowStart: now, Count: 1}
	}

	rec.Count++
	if rec.Count > l.capacity+1 {
		rec.Count = l.capacity + 1
	}
	return rec
}
