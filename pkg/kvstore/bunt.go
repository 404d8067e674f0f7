package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"
)

// Memory is the buntdb path for a store that lives only in process memory.
const Memory = ":memory:"

// Bunt is a Store backed by a buntdb file.
type Bunt struct {
	db *buntdb.DB
}

// OpenBunt opens (or creates) the buntdb file at path. Use Memory for a throwaway store.
func OpenBunt(path string) (*Bunt, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open buntdb %s: %w", path, err)
	}
	return &Bunt{db: db}, nil
}

// Get returns the value stored under key.
func (b *Bunt) Get(_ context.Context, key string) (string, error) {
	var val string
	err := b.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		val = v
		return nil
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return "", ErrNotFound
	}
	return val, err
}

// Set stores value under key, replacing any previous value.
func (b *Bunt) Set(_ context.Context, key, value string) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, value, nil)
		return err
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (b *Bunt) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil
	}
	return err
}

// List returns the values of all keys with the given prefix.
func (b *Bunt) List(_ context.Context, prefix string) ([]string, error) {
	var out []string
	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(prefix+"*", func(_, value string) bool {
			out = append(out, value)
			return true
		})
	})
	return out, err
}

// Close flushes and closes the database file.
func (b *Bunt) Close() error {
	return b.db.Close()
}
