package storage

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed ratelimit.lua
var slidingWindowLua string

// slidingWindowScript admits a request when fewer than limit requests were
// seen for the key within the trailing window. Redis TIME is the clock, so
// replicas with skewed clocks agree.
var slidingWindowScript = redis.NewScript(slidingWindowLua)

type slidingWindow struct {
	window time.Duration
	limit  int
}

// ttl keeps an idle key just past one full window.
func (s slidingWindow) ttl() time.Duration {
	return s.window + time.Second
}

func (s slidingWindow) admit(ctx context.Context, client *redis.Client, key string) (bool, error) {
	result, err := slidingWindowScript.Run(ctx, client,
		[]string{key},
		s.window.Milliseconds(),
		s.limit,
		int(s.ttl().Seconds()),
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	return result == 1, nil
}
