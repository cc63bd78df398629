package repository

import (
	"context"
	"time"

	"storefront/internal/errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when the key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the durable profile storage: JSON documents under named keys.
// Writes are synchronous; once Set or Delete returns nil a Get observes it.
type KeyValueStore interface {
	// Get returns the raw value under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every key currently holding a value, sorted.
	Keys(ctx context.Context) ([]string, error)
}

// Mutation is one buffered write.
type Mutation struct {
	Key    string
	Value  []byte
	Delete bool
}

// BatchWriter applies several mutations as one unit. Drivers that support
// atomic multi-key writes implement it; the store falls back to applying the
// mutations one by one otherwise.
type BatchWriter interface {
	WriteBatch(ctx context.Context, mutations []Mutation) error
}

// StoreChange describes a write observed by the store.
type StoreChange struct {
	Key     string    `json:"key"`
	Deleted bool      `json:"deleted"`
	Remote  bool      `json:"remote"` // Written by another process sharing the store.
	At      time.Time `json:"at"`
}

// ChangeNotifier is the subscribe side of store change notifications.
type ChangeNotifier interface {
	// Subscribe registers fn for changes of key, or of every key when key is "".
	// Callbacks run on the notifying goroutine and must not block.
	Subscribe(key string, fn func(StoreChange)) (unsubscribe func())
}

// TransactionManager groups store writes.
type TransactionManager interface {
	// Execute runs fn with a context bound to a transaction. Writes made with
	// that context are buffered and applied together when fn returns nil; they
	// are discarded when fn returns an error. Reads within fn see the buffered
	// writes.
	Execute(ctx context.Context, fn func(txCtx context.Context) error) error
}

// Store is the full profile store exposed to the use cases.
type Store interface {
	KeyValueStore
	ChangeNotifier
	TransactionManager

	// Close releases driver resources and stops change watchers.
	Close() error
}
