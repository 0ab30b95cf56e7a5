package cache

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process Cache backed by go-cache. Expired entries are
// never returned and are swept every CleanupInterval.
type Memory struct {
	items      *gocache.Cache
	defaultTTL time.Duration
	closed     atomic.Bool
}

func NewMemory(opts Options) *Memory {
	ttl := opts.DefaultTTL
	if ttl <= 0 {
		ttl = DefaultOptions().DefaultTTL
	}
	cleanup := opts.CleanupInterval
	if cleanup <= 0 {
		cleanup = gocache.NoExpiration // no janitor
	}
	return &Memory{items: gocache.New(ttl, cleanup), defaultTTL: ttl}
}

func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	m.items.Set(key, buf, ttl)
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	v, ok := m.items.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return v.([]byte), nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.items.Flush()
	return nil
}

// Close drops all entries. The janitor goroutine stops once the cache is
// garbage collected.
func (m *Memory) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	m.items.Flush()
	return nil
}

// Len counts stored entries, including expired ones not yet swept.
func (m *Memory) Len() int {
	return m.items.ItemCount()
}
