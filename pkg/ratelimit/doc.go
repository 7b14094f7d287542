// Package ratelimit provides fixed-window admission control keyed by a
// source identity (typically the client IP).
//
// A [Limiter] counts submissions per identity inside a window (default 15
// minutes, capacity 5). State lives in a pluggable [Store]: the in-memory
// [Memory] store is exact within a single process, and the Redis-backed
// [RedisStore] allows the counter to be shared across instances without
// changing the pipeline logic.
//
// Store failures fail open: a contact form should stay reachable when the
// admission backend is down. The caller is expected to log the returned
// error.
package ratelimit
