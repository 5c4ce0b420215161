package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"ggsale/internal/kvstore"

	"go.uber.org/zap"
)

// collection persists an ordered sequence of T as one JSON array under one key.
// Every mutation rewrites the whole array.
type collection[T any] struct {
	store  kvstore.Store
	key    string
	logger *zap.Logger

	// mu serializes read-modify-write cycles of this process. Other processes
	// sharing the backend are not coordinated and the last write wins.
	mu sync.Mutex
}

func newCollection[T any](store kvstore.Store, key string, logger *zap.Logger) *collection[T] {
	return &collection[T]{
		store:  store,
		key:    key,
		logger: logger,
	}
}

// load returns the stored items. A missing, empty or malformed value reads as
// an empty sequence.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}

	items := []T{}
	if !ok || raw == "" {
		return items, nil
	}

	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.Warn("Ignoring malformed persisted data",
			zap.String("key", c.key),
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		return []T{}, nil
	}

	// a stored JSON null decodes to a nil slice
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}

	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}

	return nil
}

// update runs one full read-modify-write cycle. If fn or the write fails,
// the stored value is left as it was.
func (c *collection[T]) update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	items, err = fn(items)
	if err != nil {
		return err
	}

	return c.save(ctx, items)
}
