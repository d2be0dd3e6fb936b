package ports

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("storage: key not found")

// KVStore is the durable local storage boundary. Implementations persist whole
// documents under fixed keys; there is no partial update, mirroring the
// read-all/write-all contract of the storage this design targets.
type KVStore interface {
	// Get returns the document stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the document stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Ping verifies the store is usable (readiness probe).
	Ping(ctx context.Context) error
	// Close releases any underlying resources.
	Close() error
}
