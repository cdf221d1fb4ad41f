package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	_ KV          = (*RedisKV)(nil)
	_ RateLimiter = (*RedisRateLimiter)(nil)
)

const (
	kvKeyPrefix        = "lumen:"
	rateLimitKeyPrefix = "lumen:ratelimit:"
)

type RedisConfig struct {
	Client *redis.Client
}

type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(cfg RedisConfig) *RedisKV {
	return &RedisKV{client: cfg.Client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, kvKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, nil
}

func (r *RedisKV) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = kvKeyPrefix + k
	}

	vals, err := r.client.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}
	for i, v := range vals {
		if s, ok := v.(string); ok {
			out[keys[i]] = s
		}
	}
	return out, nil
}

func (r *RedisKV) SetMany(ctx context.Context, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	pairs := make([]any, 0, 2*len(fields))
	for k, v := range fields {
		pairs = append(pairs, kvKeyPrefix+k, v)
	}

	if err := r.client.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("failed to set keys: %w", err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = kvKeyPrefix + k
	}

	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// RedisRateLimiter is a sliding-window limiter shared across server replicas.
type RedisRateLimiter struct {
	client *redis.Client
	window slidingWindow
}

// NewRedisRateLimiter admits up to limit requests per key per second.
func NewRedisRateLimiter(cfg RedisConfig, limit int) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: cfg.Client,
		window: slidingWindow{window: time.Second, limit: limit},
	}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	allowed, err := r.window.admit(ctx, r.client, rateLimitKeyPrefix+key)
	if err != nil {
		return RateLimitResult{}, err
	}

	result := RateLimitResult{Allowed: allowed}
	if !allowed {
		result.RetryAfter = r.window.window
	}
	return result, nil
}
