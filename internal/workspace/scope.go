package workspace

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/path"
	"github.com/jpl-au/quire/internal/store"
)

// location is where a slug lives inside its version.
type location struct {
	Tab  string   `json:"tab"`
	File string   `json:"file,omitempty"` // empty for folders
	Kind nav.Kind `json:"kind"`
}

// slugIndex is the per-version slug lookup stored at docs/<v>/.index.
type slugIndex map[string]location

// scope is one version loaded for an operation: its slug index plus any
// forests touched so far. Changes are written back by save.
type scope struct {
	version string
	index   slugIndex
	forests map[string]*nav.Forest
	dirty   map[string]bool // forests to write
	indexed bool            // index changed
}

func openScope(ctx context.Context, r store.Reader, version string) (*scope, error) {
	vs, err := loadVersions(ctx, r)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(vs, version) {
		return nil, fmt.Errorf("version %s: %w", version, ErrNotFound)
	}
	idx := make(slugIndex)
	err = getJSON(ctx, r, path.Index(version), &idx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return &scope{
		version: version,
		index:   idx,
		forests: make(map[string]*nav.Forest),
		dirty:   make(map[string]bool),
	}, nil
}

// forest returns the navigation forest of tab, loading it on first use.
func (s *scope) forest(ctx context.Context, r store.Reader, tab string) (*nav.Forest, error) {
	if f, ok := s.forests[tab]; ok {
		return f, nil
	}
	f := nav.New()
	err := getJSON(ctx, r, path.Nav(s.version, tab), f)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	s.forests[tab] = f
	return f, nil
}

// lookup returns the location of slug or ErrNotFound.
func (s *scope) lookup(slug string) (location, error) {
	loc, ok := s.index[slug]
	if !ok {
		return location{}, fmt.Errorf("%s in %s: %w", slug, s.version, ErrNotFound)
	}
	return loc, nil
}

func (s *scope) key(loc location) string {
	return path.Page(s.version, loc.Tab, loc.File)
}

func (s *scope) touch(tab string) { s.dirty[tab] = true }

func (s *scope) set(slug string, loc location) {
	s.index[slug] = loc
	s.indexed = true
}

func (s *scope) drop(slug string) {
	delete(s.index, slug)
	s.indexed = true
}

// save writes back every changed forest and the index.
func (s *scope) save(ctx context.Context, tx store.Tx) error {
	for tab := range s.dirty {
		if err := putJSON(ctx, tx, path.Nav(s.version, tab), s.forests[tab]); err != nil {
			return err
		}
	}
	if s.indexed {
		return putJSON(ctx, tx, path.Index(s.version), s.index)
	}
	return nil
}

// firstPage picks the page to show after the current one disappears: the
// first page of prefer in tree order, then of the other tabs in registry
// order, then FallbackPage.
func (s *scope) firstPage(ctx context.Context, r store.Reader, prefer string, tabs []Tab) (string, error) {
	order := []string{prefer}
	for _, t := range tabs {
		if t.ID != prefer {
			order = append(order, t.ID)
		}
	}
	for _, tab := range order {
		if tab == "" {
			continue
		}
		f, err := s.forest(ctx, r, tab)
		if err != nil {
			return "", err
		}
		if pages := f.Pages(); len(pages) > 0 {
			return pages[0], nil
		}
	}
	return FallbackPage, nil
}
