package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so the same queries serve
// direct reads and transactional access.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ops implements Tx over a querier.
type ops struct {
	q querier
}

// Prefix filters use substr rather than LIKE: LIKE is case-insensitive for
// ASCII and treats _ and % as wildcards, both of which occur in keys.
const prefixWhere = `substr(key, 1, ?) = ?`

func prefixArgs(prefix string) []any {
	return []any{utf8.RuneCountInString(prefix), prefix}
}

func (o *ops) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := o.q.QueryRowContext(ctx, `SELECT value FROM entries WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

func (o *ops) Exists(ctx context.Context, key string) (bool, error) {
	var n int
	err := o.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE key = ?`, key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", key, err)
	}
	return n > 0, nil
}

func (o *ops) List(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := o.q.QueryContext(ctx,
		`SELECT key, value, updated_at FROM entries WHERE `+prefixWhere+` ORDER BY key`,
		prefixArgs(prefix)...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (o *ops) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := o.q.QueryContext(ctx,
		`SELECT key FROM entries WHERE `+prefixWhere+` ORDER BY key`,
		prefixArgs(prefix)...)
	if err != nil {
		return nil, fmt.Errorf("keys %s: %w", prefix, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (o *ops) Count(ctx context.Context, prefix string) (int64, error) {
	var n int64
	err := o.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE `+prefixWhere, prefixArgs(prefix)...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", prefix, err)
	}
	return n, nil
}

func (o *ops) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := o.q.ExecContext(ctx,
		`INSERT INTO entries (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (o *ops) Delete(ctx context.Context, key string) error {
	if _, err := o.q.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (o *ops) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	if prefix == "" {
		return 0, ErrInvalidPrefix
	}
	res, err := o.q.ExecContext(ctx, `DELETE FROM entries WHERE `+prefixWhere, prefixArgs(prefix)...)
	if err != nil {
		return 0, fmt.Errorf("delete prefix %s: %w", prefix, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// destFree checks the destination of a bulk copy or move.
func (o *ops) destFree(ctx context.Context, src, dst string) error {
	if err := checkPrefixes(src, dst); err != nil {
		return err
	}
	n, err := o.Count(ctx, dst)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%s: %w", dst, ErrAlreadyExists)
	}
	return nil
}

func (o *ops) CopyPrefix(ctx context.Context, src, dst string) (int64, error) {
	if err := o.destFree(ctx, src, dst); err != nil {
		return 0, err
	}
	args := []any{dst, utf8.RuneCountInString(src) + 1, time.Now().Unix()}
	res, err := o.q.ExecContext(ctx,
		`INSERT INTO entries (key, value, updated_at)
		 SELECT ? || substr(key, ?), value, ? FROM entries WHERE `+prefixWhere,
		append(args, prefixArgs(src)...)...)
	if err != nil {
		return 0, fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (o *ops) MovePrefix(ctx context.Context, src, dst string) (int64, error) {
	if err := o.destFree(ctx, src, dst); err != nil {
		return 0, err
	}
	args := []any{dst, utf8.RuneCountInString(src) + 1, time.Now().Unix()}
	res, err := o.q.ExecContext(ctx,
		`UPDATE entries SET key = ? || substr(key, ?), updated_at = ? WHERE `+prefixWhere,
		append(args, prefixArgs(src)...)...)
	if err != nil {
		return 0, fmt.Errorf("move %s to %s: %w", src, dst, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
