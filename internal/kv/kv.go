package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no document behind it.
var ErrNotFound = errors.New("key not found")

// Store is the durable key-value storage boundary. Each record collection
// is serialized as one document under a fixed key.
type Store interface {
	// Get reads the document at key and unmarshals it into result.
	// Returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string, result interface{}) error

	// Put serializes value and writes it at key, replacing any previous
	// document.
	Put(ctx context.Context, key string, value interface{}) error

	// Delete removes the document at key. Returns ErrNotFound when the
	// key is absent.
	Delete(ctx context.Context, key string) error
}
