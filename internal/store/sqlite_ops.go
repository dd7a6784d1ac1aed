// sqlite_ops.go provides SQLite connection management and the transaction
// helper. This is the only file that imports the SQLite driver.
//
// WAL mode lets the MCP server read while the CLI writes; the busy timeout
// keeps short lock contention from surfacing as "database is locked".

package store

import (
	"context"
	"database/sql"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database at path. Pass ":memory:" for a throwaway
// database. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// Every connection to :memory: is a separate database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	pragmas := []struct{ stmt, what string }{
		{`PRAGMA journal_mode=WAL`, "setting WAL mode"},
		{`PRAGMA busy_timeout=5000`, "setting busy timeout"},
		{`PRAGMA synchronous=NORMAL`, "setting synchronous mode"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables if they don't exist. Safe to call multiple times.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback.
// If fn returns an error the transaction is rolled back; otherwise it is
// committed and the commit error returned.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `DELETE ...`); err != nil {
//	        return err // triggers rollback
//	    }
//	    return nil // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// View runs fn inside a transaction that is always rolled back, so fn sees
// one consistent snapshot.
func (s *SQLiteStore) View(ctx context.Context, fn func(Reader) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	return fn(&ops{q: tx})
}

// Update runs fn in a read-write transaction.
func (s *SQLiteStore) Update(ctx context.Context, fn func(Tx) error) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		return fn(&ops{q: tx})
	})
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	return (&ops{q: s.db}).Get(ctx, key)
}

func (s *SQLiteStore) Exists(ctx context.Context, key string) (bool, error) {
	return (&ops{q: s.db}).Exists(ctx, key)
}

func (s *SQLiteStore) List(ctx context.Context, prefix string) ([]Entry, error) {
	return (&ops{q: s.db}).List(ctx, prefix)
}

func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return (&ops{q: s.db}).Keys(ctx, prefix)
}

func (s *SQLiteStore) Count(ctx context.Context, prefix string) (int64, error) {
	return (&ops{q: s.db}).Count(ctx, prefix)
}
