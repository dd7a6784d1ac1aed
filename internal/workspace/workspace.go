// Package workspace is the content core of quire: pages, their navigation
// forests, versions and tabs, plus the search index over them.
//
// All state lives in a store.Store. Each operation takes the workspace mutex
// and runs inside a single store transaction, so a page record and its
// navigation node are always created and removed together, and a version
// clone, rename or delete is never observed half done.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jpl-au/quire/internal/markup"
	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/search"
	"github.com/jpl-au/quire/internal/slug"
	"github.com/jpl-au/quire/internal/store"
)

// Error kinds. Navigation errors are shared with package nav so errors.Is
// works across both.
var (
	ErrNotFound       = nav.ErrNotFound
	ErrInvalidParent  = nav.ErrInvalidParent
	ErrInvalidTarget  = nav.ErrInvalidTarget
	ErrSetMismatch    = nav.ErrSetMismatch
	ErrDuplicateSlug  = nav.ErrDuplicate
	ErrLastVersion    = errors.New("cannot delete the only version")
	ErrAlreadyExists  = errors.New("already exists")
	ErrInvalidSlug    = errors.New("invalid slug")
	ErrNotInitialised = errors.New("workspace not initialised")
)

// FallbackPage is the active page when a version has no pages left.
const FallbackPage = "intro"

// Storage keys outside the docs/ tree.
const (
	keyVersions = "meta/versions"
	keyTabs     = "meta/tabs"
	keyState    = "meta/state"
	keyRevision = "meta/revision"
)

// State is the editor selection that persists between runs.
type State struct {
	Version string `json:"version"`
	Tab     string `json:"tab"`
	Page    string `json:"page"`
}

// Limits bounds user input. Zero values disable a check.
type Limits struct {
	MaxTitle   int
	MaxPath    int
	MaxContent int64
	MaxResults int
}

// Options configures a Workspace. Zero values select defaults.
type Options struct {
	Stripper markup.Stripper
	Template Template
	Slugs    *slug.Generator
	Limits   Limits
}

// Workspace implements the page store, navigation, versions, tabs and search
// over a store.Store.
type Workspace struct {
	mu     sync.Mutex
	store  store.Store
	slugs  *slug.Generator
	tmpl   Template
	limits Limits

	index   *search.Index
	indexed corpus // what the index was last built from
}

// corpus identifies a build of the search index. The revision counter is
// bumped by every mutation, including ones made by other processes sharing
// the store.
type corpus struct {
	version  string
	revision int64
}

// New returns a Workspace over s. Call Init once on an empty store before
// using it.
func New(s store.Store, opts Options) *Workspace {
	if opts.Slugs == nil {
		opts.Slugs = slug.New()
	}
	if opts.Template == nil {
		opts.Template = MarkdownTemplate{}
	}
	return &Workspace{
		store:  s,
		slugs:  opts.Slugs,
		tmpl:   opts.Template,
		limits: opts.Limits,
		index:  search.New(opts.Stripper),
	}
}

// Store returns the underlying store.
func (w *Workspace) Store() store.Store {
	return w.store
}

// Init registers the first version and the given tabs, making the workspace
// usable. Returns ErrAlreadyExists if the store is already initialised.
func (w *Workspace) Init(ctx context.Context, version string, tabs []Tab) error {
	if err := checkVersionName(version); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.update(ctx, func(tx store.Tx) error {
		ok, err := tx.Exists(ctx, keyVersions)
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("workspace: %w", ErrAlreadyExists)
		}
		st := State{Version: version, Page: FallbackPage}
		if len(tabs) > 0 {
			st.Tab = tabs[0].ID
		}
		if tabs == nil {
			tabs = []Tab{}
		}
		if err := putJSON(ctx, tx, keyVersions, []string{version}); err != nil {
			return err
		}
		if err := putJSON(ctx, tx, keyTabs, tabs); err != nil {
			return err
		}
		return putJSON(ctx, tx, keyState, st)
	})
}

// Initialised reports whether Init has run against the store.
func (w *Workspace) Initialised(ctx context.Context) (bool, error) {
	return w.store.Exists(ctx, keyVersions)
}

// State returns the active version, tab and page.
func (w *Workspace) State(ctx context.Context) (State, error) {
	var st State
	err := w.store.View(ctx, func(r store.Reader) error {
		var err error
		st, err = loadState(ctx, r)
		return err
	})
	return st, err
}

// update runs fn in a store transaction and bumps the revision so cached
// search corpora are rebuilt. Callers hold w.mu.
func (w *Workspace) update(ctx context.Context, fn func(tx store.Tx) error) error {
	return w.store.Update(ctx, func(tx store.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		rev, err := loadRevision(ctx, tx)
		if err != nil {
			return err
		}
		return putJSON(ctx, tx, keyRevision, rev+1)
	})
}

func getJSON(ctx context.Context, r store.Reader, key string, v any) error {
	data, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func putJSON(ctx context.Context, tx store.Tx, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return tx.Put(ctx, key, data)
}

func loadState(ctx context.Context, r store.Reader) (State, error) {
	var st State
	err := getJSON(ctx, r, keyState, &st)
	if errors.Is(err, store.ErrNotFound) {
		return st, ErrNotInitialised
	}
	return st, err
}

func loadRevision(ctx context.Context, r store.Reader) (int64, error) {
	var rev int64
	err := getJSON(ctx, r, keyRevision, &rev)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	return rev, err
}

func loadVersions(ctx context.Context, r store.Reader) ([]string, error) {
	var vs []string
	err := getJSON(ctx, r, keyVersions, &vs)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotInitialised
	}
	return vs, err
}

func loadTabs(ctx context.Context, r store.Reader) ([]Tab, error) {
	var tabs []Tab
	err := getJSON(ctx, r, keyTabs, &tabs)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotInitialised
	}
	return tabs, err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, store.ErrNotFound)
}
