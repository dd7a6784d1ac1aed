// interfaces.go defines the storage abstraction.
//
// The interfaces are granular (Reader, Writer) so consumers only depend on the
// capabilities they need. All mutation goes through Update, which runs the
// callback inside one transaction: either every write in it becomes visible
// or none does.

package store

import "context"

// Reader defines read-only operations.
type Reader interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists checks key presence without loading the value.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns every entry whose key starts with prefix, ordered by key.
	// Matching is case-sensitive.
	List(ctx context.Context, prefix string) ([]Entry, error)

	// Keys returns the keys under prefix, ordered.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Count returns the number of keys under prefix.
	Count(ctx context.Context, prefix string) (int64, error)
}

// Writer defines operations that modify entries.
type Writer interface {
	// Put creates or replaces the value at key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every key under prefix and returns how many.
	DeletePrefix(ctx context.Context, prefix string) (int64, error)

	// CopyPrefix duplicates every key under src to the same suffix under dst.
	// Returns ErrAlreadyExists if any key under dst exists.
	CopyPrefix(ctx context.Context, src, dst string) (int64, error)

	// MovePrefix rewrites every key under src to live under dst.
	// Returns ErrAlreadyExists if any key under dst exists.
	MovePrefix(ctx context.Context, src, dst string) (int64, error)
}

// Tx is the view of the store inside Update.
type Tx interface {
	Reader
	Writer
}

// Store defines the persistence interface.
type Store interface {
	Reader

	// View runs fn against a consistent snapshot.
	View(ctx context.Context, fn func(Reader) error) error

	// Update runs fn in a transaction. If fn returns an error nothing it
	// wrote is kept.
	Update(ctx context.Context, fn func(Tx) error) error

	// Close releases resources held by the store.
	Close() error
}
