package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "ratelimit"

// RedisStore is a Store backed by Redis, for deployments running more than
// one instance. Counting is best-effort: concurrent checks for the same
// identity may race between read and write, which is acceptable for an
// abuse brake.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures the Redis store.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the key namespace. Default: "ratelimit".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedis creates a Redis-backed store. Records expire from Redis after
// twice the window so stale identities clean themselves up.
func NewRedis(client redis.UniversalClient, window time.Duration, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
		ttl:    2 * window,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, identity string) (Record, bool, error) {
	data, err := s.client.Get(ctx, s.key(identity)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("ratelimit: redis get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("ratelimit: decode record: %w", err)
	}

	return rec, true, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, identity string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("ratelimit: encode record: %w", err)
	}

	if err := s.client.Set(ctx, s.key(identity), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("ratelimit: redis set: %w", err)
	}

	return nil
}

func (s *RedisStore) key(identity string) string {
	return s.prefix + ":" + identity
}
