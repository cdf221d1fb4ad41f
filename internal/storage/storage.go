package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found")

// KV is a flat string store shared by every client pointed at it.
type KV interface {
	// Get returns ErrNotFound if key has never been set or was deleted.
	Get(ctx context.Context, key string) (string, error)

	// GetMany reads keys in one round trip. Missing keys are left out of
	// the result.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)

	// SetMany writes every field or none of them.
	SetMany(ctx context.Context, fields map[string]string) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error

	Close() error
}

type RateLimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}
