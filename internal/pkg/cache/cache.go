package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cache stores JSON-encoded values under string keys.
type Cache interface {
	// GetJSON decodes the cached value into target and reports whether it was found
	GetJSON(ctx context.Context, key string, target any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	// DeletePattern removes every key matching a glob pattern such as "dashboard:*"
	DeletePattern(ctx context.Context, pattern string) error
}

// Remember returns the cached value for key or computes, stores and returns
// it. Cache failures are logged and never fail the call.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := c.GetJSON(ctx, key, &cached)
	if err != nil {
		slog.Warn("cache read failed", "key", key, "error", err)
	}
	if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.SetJSON(ctx, key, value, ttl); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
	return value, nil
}

// Forget drops every key matching pattern. Failures are logged, not returned.
func Forget(ctx context.Context, c Cache, pattern string) {
	if c == nil {
		return
	}
	if err := c.DeletePattern(ctx, pattern); err != nil {
		slog.Warn("cache invalidation failed", "pattern", pattern, "error", err)
	}
}

// Noop never stores anything. It is used when Redis is not configured.
type Noop struct{}

func (Noop) GetJSON(ctx context.Context, key string, target any) (bool, error) {
	return false, nil
}

func (Noop) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (Noop) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}
