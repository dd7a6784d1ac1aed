package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/store"
)

// Tree returns the navigation forest of tab in the active version. An empty
// tab selects the active tab.
func (w *Workspace) Tree(ctx context.Context, tab string) ([]nav.Node, error) {
	var out []nav.Node
	err := w.store.View(ctx, func(r store.Reader) error {
		f, err := w.activeForest(ctx, r, tab)
		if err != nil {
			return err
		}
		out = f.Tree()
		return nil
	})
	return out, err
}

// Outline is Tree flattened in tree order with depths.
func (w *Workspace) Outline(ctx context.Context, tab string) ([]nav.Item, error) {
	var out []nav.Item
	err := w.store.View(ctx, func(r store.Reader) error {
		f, err := w.activeForest(ctx, r, tab)
		if err != nil {
			return err
		}
		out = f.Walk()
		return nil
	})
	return out, err
}

func (w *Workspace) activeForest(ctx context.Context, r store.Reader, tab string) (*nav.Forest, error) {
	st, err := loadState(ctx, r)
	if err != nil {
		return nil, err
	}
	if tab == "" {
		tab = st.Tab
	}
	tabs, err := loadTabs(ctx, r)
	if err != nil {
		return nil, err
	}
	if findTab(tabs, tab) < 0 {
		return nil, fmt.Errorf("tab %s: %w", tab, ErrNotFound)
	}
	sc, err := openScope(ctx, r, st.Version)
	if err != nil {
		return nil, err
	}
	return sc.forest(ctx, r, tab)
}

// Breadcrumb returns the chain of nodes from the root of slug's tab down to
// slug.
func (w *Workspace) Breadcrumb(ctx context.Context, slug string) ([]nav.Item, error) {
	var out []nav.Item
	err := w.store.View(ctx, func(r store.Reader) error {
		sc, err := w.activeScope(ctx, r)
		if err != nil {
			return err
		}
		loc, err := sc.lookup(slug)
		if err != nil {
			return err
		}
		f, err := sc.forest(ctx, r, loc.Tab)
		if err != nil {
			return err
		}
		out, err = f.Breadcrumb(slug)
		return err
	})
	return out, err
}

// Move reparents src as the last child of the folder target. Both must be in
// the same tab; a target elsewhere (or missing) is ErrInvalidTarget.
func (w *Workspace) Move(ctx context.Context, src, target string) error {
	return w.restructure(ctx, src, func(sc *scope, f *nav.Forest, loc location) error {
		if src == target {
			return nil
		}
		tl, ok := sc.index[target]
		if !ok {
			return fmt.Errorf("target %s does not exist: %w", target, ErrInvalidTarget)
		}
		if tl.Tab != loc.Tab {
			return fmt.Errorf("target %s is in tab %s: %w", target, tl.Tab, ErrInvalidTarget)
		}
		return f.Move(src, target)
	})
}

// MoveToRoot makes src the last top-level node of its tab.
func (w *Workspace) MoveToRoot(ctx context.Context, src string) error {
	return w.restructure(ctx, src, func(_ *scope, f *nav.Forest, _ location) error {
		return f.MoveToRoot(src)
	})
}

// Reorder sets the order of one sibling group. slugs must be exactly the
// current children of one parent; any other set, including one starting
// with an unknown slug, is ErrSetMismatch.
func (w *Workspace) Reorder(ctx context.Context, slugs []string) error {
	if len(slugs) == 0 {
		return fmt.Errorf("reorder: %w", ErrSetMismatch)
	}
	err := w.restructure(ctx, slugs[0], func(_ *scope, f *nav.Forest, _ location) error {
		return f.Reorder(slugs)
	})
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("reorder: %s is not a sibling: %w", slugs[0], ErrSetMismatch)
	}
	return err
}

// restructure runs fn against the forest holding slug and saves it.
func (w *Workspace) restructure(ctx context.Context, slug string, fn func(*scope, *nav.Forest, location) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.update(ctx, func(tx store.Tx) error {
		sc, err := w.activeScope(ctx, tx)
		if err != nil {
			return err
		}
		loc, err := sc.lookup(slug)
		if err != nil {
			return err
		}
		f, err := sc.forest(ctx, tx, loc.Tab)
		if err != nil {
			return err
		}
		if err := fn(sc, f, loc); err != nil {
			return err
		}
		sc.touch(loc.Tab)
		return sc.save(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("restructure %s: %w", slug, err)
	}
	return nil
}
