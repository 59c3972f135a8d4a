package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is a byte-oriented key/value cache with expiry
type Store interface {
	// Get returns the cached value; found is false on a miss
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// JSON wraps a Store with typed encode/decode for one value type
type JSON[T any] struct {
	store Store
	ttl   time.Duration
}

// NewJSON creates a typed view over store; entries live for ttl
func NewJSON[T any](store Store, ttl time.Duration) *JSON[T] {
	return &JSON[T]{store: store, ttl: ttl}
}

// Get decodes the cached value. A value that no longer decodes is treated
// as a miss.
func (c *JSON[T]) Get(ctx context.Context, key string) (*T, bool, error) {
	data, found, err := c.store.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false, nil
	}
	return &v, true, nil
}

// Set encodes and stores v
func (c *JSON[T]) Set(ctx context.Context, key string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	return c.store.Set(ctx, key, data, c.ttl)
}

// Delete removes keys
func (c *JSON[T]) Delete(ctx context.Context, keys ...string) error {
	return c.store.Delete(ctx, keys...)
}
