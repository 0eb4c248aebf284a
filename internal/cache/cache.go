// Package cache provides a read-through cache for single-entity lookups.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned when a key is absent from the cache.
var ErrMiss = errors.New("cache miss")

// Cache stores JSON-encoded values under string keys. Implementations are
// best effort: callers must treat any error as a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// Noop satisfies Cache without storing anything. Used when redis is disabled.
type Noop struct{}

// Get always reports a miss.
func (Noop) Get(_ context.Context, _ string, _ any) error { return ErrMiss }

// Set discards the value.
func (Noop) Set(_ context.Context, _ string, _ any) error { return nil }

// Delete does nothing.
func (Noop) Delete(_ context.Context, _ ...string) error { return nil }
