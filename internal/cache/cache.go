// Package cache stores computed results by key. Implementations are safe for
// concurrent use.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the key has no live entry.
var ErrMiss = errors.New("cache miss")

// Cache is a string key/value store with per-implementation expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Name() string
}
