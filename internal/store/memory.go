// memory.go implements Store in process memory. Tests run the workspace
// against it, and it backs throwaway workspaces that never touch disk.
//
// Writes inside Update are staged in an overlay and applied only when the
// callback returns nil, which gives the same all-or-nothing behaviour as a
// SQLite transaction.

package store

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is a map-backed Store. Safe for concurrent use; Update calls
// are serialised.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Entry
}

var _ Store = (*MemoryStore)(nil)

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]Entry)}
}

func (m *MemoryStore) View(ctx context.Context, fn func(Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(&memTx{base: m.data})
}

func (m *MemoryStore) Update(ctx context.Context, fn func(Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{base: m.data, writes: make(map[string]*Entry)}
	if err := fn(tx); err != nil {
		return err
	}
	for k, e := range tx.writes {
		if e == nil {
			delete(m.data, k)
			continue
		}
		m.data[k] = *e
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := m.View(ctx, func(r Reader) error {
		var err error
		v, err = r.Get(ctx, key)
		return err
	})
	return v, err
}

func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	var ok bool
	err := m.View(ctx, func(r Reader) error {
		var err error
		ok, err = r.Exists(ctx, key)
		return err
	})
	return ok, err
}

func (m *MemoryStore) List(ctx context.Context, prefix string) ([]Entry, error) {
	var out []Entry
	err := m.View(ctx, func(r Reader) error {
		var err error
		out, err = r.List(ctx, prefix)
		return err
	})
	return out, err
}

func (m *MemoryStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	err := m.View(ctx, func(r Reader) error {
		var err error
		out, err = r.Keys(ctx, prefix)
		return err
	})
	return out, err
}

func (m *MemoryStore) Count(ctx context.Context, prefix string) (int64, error) {
	var n int64
	err := m.View(ctx, func(r Reader) error {
		var err error
		n, err = r.Count(ctx, prefix)
		return err
	})
	return n, err
}

// memTx reads through its staged writes to the base map. A nil entry in
// writes marks a staged delete. Views use a memTx with no writes map.
type memTx struct {
	base   map[string]Entry
	writes map[string]*Entry
}

func (t *memTx) lookup(key string) (Entry, bool) {
	if e, ok := t.writes[key]; ok {
		if e == nil {
			return Entry{}, false
		}
		return *e, true
	}
	e, ok := t.base[key]
	return e, ok
}

func (t *memTx) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := t.lookup(key)
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(e.Value), nil
}

func (t *memTx) Exists(_ context.Context, key string) (bool, error) {
	_, ok := t.lookup(key)
	return ok, nil
}

func (t *memTx) keys(prefix string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(k string) {
		if seen[k] || !strings.HasPrefix(k, prefix) {
			return
		}
		seen[k] = true
		if _, ok := t.lookup(k); ok {
			out = append(out, k)
		}
	}
	for k := range t.base {
		add(k)
	}
	for k := range t.writes {
		add(k)
	}
	sort.Strings(out)
	return out
}

func (t *memTx) List(_ context.Context, prefix string) ([]Entry, error) {
	keys := t.keys(prefix)
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		e, _ := t.lookup(k)
		e.Value = bytes.Clone(e.Value)
		out = append(out, e)
	}
	return out, nil
}

func (t *memTx) Keys(_ context.Context, prefix string) ([]string, error) {
	return t.keys(prefix), nil
}

func (t *memTx) Count(_ context.Context, prefix string) (int64, error) {
	return int64(len(t.keys(prefix))), nil
}

func (t *memTx) Put(_ context.Context, key string, value []byte) error {
	v := bytes.Clone(value)
	if v == nil {
		v = []byte{}
	}
	t.writes[key] = &Entry{Key: key, Value: v, UpdatedAt: time.Now().Unix()}
	return nil
}

func (t *memTx) Delete(_ context.Context, key string) error {
	t.writes[key] = nil
	return nil
}

func (t *memTx) DeletePrefix(_ context.Context, prefix string) (int64, error) {
	if prefix == "" {
		return 0, ErrInvalidPrefix
	}
	keys := t.keys(prefix)
	for _, k := range keys {
		t.writes[k] = nil
	}
	return int64(len(keys)), nil
}

func (t *memTx) destFree(src, dst string) error {
	if err := checkPrefixes(src, dst); err != nil {
		return err
	}
	if len(t.keys(dst)) > 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (t *memTx) CopyPrefix(ctx context.Context, src, dst string) (int64, error) {
	if err := t.destFree(src, dst); err != nil {
		return 0, err
	}
	keys := t.keys(src)
	for _, k := range keys {
		e, _ := t.lookup(k)
		if err := t.Put(ctx, dst+strings.TrimPrefix(k, src), e.Value); err != nil {
			return 0, err
		}
	}
	return int64(len(keys)), nil
}

func (t *memTx) MovePrefix(ctx context.Context, src, dst string) (int64, error) {
	if err := t.destFree(src, dst); err != nil {
		return 0, err
	}
	keys := t.keys(src)
	for _, k := range keys {
		e, _ := t.lookup(k)
		if err := t.Put(ctx, dst+strings.TrimPrefix(k, src), e.Value); err != nil {
			return 0, err
		}
		t.writes[k] = nil
	}
	return int64(len(keys)), nil
}
