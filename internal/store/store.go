// Package store holds the key-value record store that every manager
// persists through, plus its in-memory and file-backed implementations.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// Record is one key with its raw JSON value.
type Record struct {
	Key   string
	Value []byte
}

// Store is the persistence contract. Values are opaque JSON documents.
// GetByPrefix returns records ordered by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	GetByPrefix(ctx context.Context, prefix string) ([]Record, error)
	Del(ctx context.Context, key string) error
}

// Closer is implemented by stores that hold connections or files.
type Closer interface {
	Close(ctx context.Context) error
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
