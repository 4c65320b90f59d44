// Package kv provides the durable key-value slots tasks are persisted in.
//
// A Backend stores opaque byte values under string keys. Every write replaces
// the whole value; there are no partial updates. Clear erases everything the
// backend owns (its scope), which is wider than a single key.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("kv: key not found")
	ErrInvalidKey = errors.New("kv: invalid key")
	ErrClosed     = errors.New("kv: backend closed")
)

// Backend is a durable key-value slot store.
type Backend interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear erases every key in the backend's scope.
	Clear(ctx context.Context) error
	Close() error
}

// ValidateKey rejects keys that cannot be stored safely by every backend.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
