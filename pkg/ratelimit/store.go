package ratelimit

import (
	"context"
	"time"
)

// Record is the per-identity admission state.
// It is mutated only by the Limiter.
type Record struct {
	WindowStart time.Time `json:"window_start"`
	Count       int       `json:"count"`
}

// Store persists admission records keyed by source identity.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the record for an identity and whether one exists.
	Get(ctx context.Context, identity string) (Record, bool, error)

	// Set stores the record for an identity.
	Set(ctx context.Context, identity string, rec Record) error
}

// Updater is an optional Store capability for atomic read-modify-write.
// The in-process store implements it so concurrent checks for the same
// identity cannot race between read and write; distributed stores that
// cannot offer it fall back to best-effort Get/Set counting.
type Updater interface {
	Update(ctx context.Context, identity string, fn func(rec Record, ok bool) Record) (Record, error)
}
