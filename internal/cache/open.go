package cache

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Options selects and sizes the result cache.
type Options struct {
	RedisURL string
	Size     int
	TTL      time.Duration
	Clock    clockwork.Clock
}

// Open returns a Redis cache when RedisURL is set and an in-memory cache
// otherwise. The returned close function releases the Redis connection.
func Open(ctx context.Context, opts Options) (Cache, func() error, error) {
	if opts.RedisURL == "" {
		clock := opts.Clock
		if clock == nil {
			clock = clockwork.NewRealClock()
		}
		return NewMemory(opts.Size, opts.TTL, clock), func() error { return nil }, nil
	}

	rdb, err := NewRedisClient(ctx, opts.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return NewRedis(rdb, opts.TTL), rdb.Close, nil
}
