package storage

import (
	"context"
	"maps"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var (
	_ KV          = (*MemoryKV)(nil)
	_ RateLimiter = (*MemoryRateLimiter)(nil)
)

type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	v, ok := m.values[key]
	m.mu.RUnlock()

	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryKV) GetMany(_ context.Context, keys ...string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if v, ok := m.values[key]; ok {
			out[key] = v
		}
	}
	return out, nil
}

func (m *MemoryKV) SetMany(_ context.Context, fields map[string]string) error {
	m.mu.Lock()
	maps.Copy(m.values, fields)
	m.mu.Unlock()
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.values, key)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryKV) Ping(_ context.Context) error { return nil }

func (m *MemoryKV) Close() error { return nil }

// MemoryRateLimiter keeps one token bucket per key. Idle buckets are swept
// every minute.
type MemoryRateLimiter struct {
	limiters  map[string]*limiterEntry
	limiterMu sync.RWMutex
	rateLimit rate.Limit
	rateBurst int

	done chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemoryRateLimiter(ratePerSec float64, burst int) *MemoryRateLimiter {
	m := &MemoryRateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rateLimit: rate.Limit(ratePerSec),
		rateBurst: burst,
		done:      make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

func (m *MemoryRateLimiter) Allow(_ context.Context, key string) (RateLimitResult, error) {
	now := time.Now()

	m.limiterMu.Lock()
	entry, exists := m.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(m.rateLimit, m.rateBurst)}
		m.limiters[key] = entry
	}
	entry.lastSeen = now
	m.limiterMu.Unlock()

	r := entry.limiter.ReserveN(now, 1)
	if !r.OK() {
		return RateLimitResult{Allowed: false, RetryAfter: time.Second}, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return RateLimitResult{Allowed: false, RetryAfter: delay}, nil
	}
	return RateLimitResult{Allowed: true}, nil
}

func (m *MemoryRateLimiter) Close() error {
	close(m.done)
	return nil
}

func (m *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.limiterMu.Lock()
			now := time.Now()
			for key, entry := range m.limiters {
				if now.Sub(entry.lastSeen) > 5*time.Minute {
					delete(m.limiters, key)
				}
			}
			m.limiterMu.Unlock()
		case <-m.done:
			return
		}
	}
}
