// Package kvstore is the only I/O boundary of the store: get/set of opaque
// text blobs under string keys.
package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrQuotaExceeded is returned when the backing medium rejects a write
	// because of its size.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store reads and writes whole values. There are no transactions and no
// atomicity across keys.
type Store interface {
	// Get returns the value under key. ok is false when the key was never written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set replaces the value under key. On error the previous value is kept.
	Set(ctx context.Context, key string, value string) error
}
