// Package storage provides the durable key-value blob store backing cart
// and wishlist persistence. Values are opaque JSON snapshots; the store
// itself knows nothing about their shape.
package storage

import "errors"

// ErrKeyNotFound is returned by Get when no value exists for the key.
var ErrKeyNotFound = errors.New("key not found")

// Store is a durable client-side blob store. Implementations must be safe
// for concurrent use. There is no cross-instance coordination: two stores
// opened on the same backing data are last-writer-wins.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Set writes the value for key, overwriting any previous value.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases the underlying resources.
	Close() error
}
