// Package kvstore is the key-value storage used for client session persistence and ticket records.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// List returns the values of every key starting with prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
