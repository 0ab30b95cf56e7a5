package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("key not found in cache")
	ErrClosed   = errors.New("cache is closed")
)

// Cache stores rendered artefacts such as chart PNGs.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Get(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error

	Clear(ctx context.Context) error

	Close() error
}

type Options struct {
	DefaultTTL time.Duration

	CleanupInterval time.Duration

	RedisURL string

	RedisPassword string

	RedisDB int

	// KeyPrefix namespaces keys in a shared Redis.
	KeyPrefix string
}

func DefaultOptions() Options {
	return Options{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: time.Minute * 5,
		KeyPrefix:       "jadarat:",
	}
}
