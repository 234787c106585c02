package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. The runner falls back to it when no cache is
// configured and the CLI selects it for --no-cache, so every artifact is
// rendered fresh. Lookups still honour cancellation.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

func (NullCache) Set(ctx context.Context, _ string, _ []byte, _ time.Duration) error {
	return ctx.Err()
}

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
