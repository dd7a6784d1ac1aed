package workspace

import (
	"context"
	"fmt"
	"slices"

	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/path"
	"github.com/jpl-au/quire/internal/store"
	"github.com/jpl-au/quire/internal/validate"
)

// Version describes one version namespace.
type Version struct {
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Pages   int    `json:"pages"`
	Folders int    `json:"folders"`
}

func checkVersionName(name string) error {
	return validate.Version(name)
}

// Versions lists versions in registration order.
func (w *Workspace) Versions(ctx context.Context) ([]Version, error) {
	var out []Version
	err := w.store.View(ctx, func(r store.Reader) error {
		st, err := loadState(ctx, r)
		if err != nil {
			return err
		}
		vs, err := loadVersions(ctx, r)
		if err != nil {
			return err
		}
		for _, v := range vs {
			sc, err := openScope(ctx, r, v)
			if err != nil {
				return err
			}
			info := Version{Name: v, Active: v == st.Version}
			for _, loc := range sc.index {
				if loc.Kind == nav.KindPage {
					info.Pages++
				} else {
					info.Folders++
				}
			}
			out = append(out, info)
		}
		return nil
	})
	return out, err
}

// versionOp loads the version list and state, runs fn, and saves both.
func (w *Workspace) versionOp(ctx context.Context, fn func(tx store.Tx, vs []string, st *State) ([]string, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.update(ctx, func(tx store.Tx) error {
		vs, err := loadVersions(ctx, tx)
		if err != nil {
			return err
		}
		st, err := loadState(ctx, tx)
		if err != nil {
			return err
		}
		vs, err = fn(tx, vs, &st)
		if err != nil {
			return err
		}
		if err := putJSON(ctx, tx, keyVersions, vs); err != nil {
			return err
		}
		return putJSON(ctx, tx, keyState, st)
	})
}

// CloneVersion copies every page, forest and index of src into the new
// version dst. The copy is independent: later edits to either do not
// affect the other.
func (w *Workspace) CloneVersion(ctx context.Context, src, dst string) error {
	if err := checkVersionName(dst); err != nil {
		return err
	}
	err := w.versionOp(ctx, func(tx store.Tx, vs []string, _ *State) ([]string, error) {
		if !slices.Contains(vs, src) {
			return nil, fmt.Errorf("version %s: %w", src, ErrNotFound)
		}
		if slices.Contains(vs, dst) {
			return nil, fmt.Errorf("version %s: %w", dst, ErrAlreadyExists)
		}
		if _, err := tx.CopyPrefix(ctx, path.VersionPrefix(src), path.VersionPrefix(dst)); err != nil {
			return nil, err
		}
		return append(vs, dst), nil
	})
	if err != nil {
		return fmt.Errorf("clone %s to %s: %w", src, dst, err)
	}
	return nil
}

// RenameVersion moves every key of old under new, keeping its position in
// the version list. The active version follows the rename.
func (w *Workspace) RenameVersion(ctx context.Context, old, name string) error {
	if err := checkVersionName(name); err != nil {
		return err
	}
	err := w.versionOp(ctx, func(tx store.Tx, vs []string, st *State) ([]string, error) {
		i := slices.Index(vs, old)
		if i < 0 {
			return nil, fmt.Errorf("version %s: %w", old, ErrNotFound)
		}
		if old == name {
			return vs, nil
		}
		if slices.Contains(vs, name) {
			return nil, fmt.Errorf("version %s: %w", name, ErrAlreadyExists)
		}
		if _, err := tx.MovePrefix(ctx, path.VersionPrefix(old), path.VersionPrefix(name)); err != nil {
			return nil, err
		}
		vs[i] = name
		if st.Version == old {
			st.Version = name
		}
		return vs, nil
	})
	if err != nil {
		return fmt.Errorf("rename %s to %s: %w", old, name, err)
	}
	return nil
}

// DeleteVersion removes v and everything in it. The only remaining version
// cannot be deleted. If v was active the first remaining version becomes
// active.
func (w *Workspace) DeleteVersion(ctx context.Context, v string) error {
	err := w.versionOp(ctx, func(tx store.Tx, vs []string, st *State) ([]string, error) {
		i := slices.Index(vs, v)
		if i < 0 {
			return nil, fmt.Errorf("version %s: %w", v, ErrNotFound)
		}
		if len(vs) == 1 {
			return nil, ErrLastVersion
		}
		if _, err := tx.DeletePrefix(ctx, path.VersionPrefix(v)); err != nil {
			return nil, err
		}
		vs = slices.Delete(vs, i, i+1)
		if st.Version == v {
			if err := w.switchVersion(ctx, tx, vs, st, vs[0]); err != nil {
				return nil, err
			}
		}
		return vs, nil
	})
	if err != nil {
		return fmt.Errorf("delete version %s: %w", v, err)
	}
	return nil
}

// UseVersion makes v the active version. The active page is kept when it
// exists in v.
func (w *Workspace) UseVersion(ctx context.Context, v string) error {
	err := w.versionOp(ctx, func(tx store.Tx, vs []string, st *State) ([]string, error) {
		if !slices.Contains(vs, v) {
			return nil, fmt.Errorf("version %s: %w", v, ErrNotFound)
		}
		return vs, w.switchVersion(ctx, tx, vs, st, v)
	})
	if err != nil {
		return fmt.Errorf("use version %s: %w", v, err)
	}
	return nil
}

// switchVersion points st at version v, keeping the page when v has it.
// vs is the version list as it will be saved.
func (w *Workspace) switchVersion(ctx context.Context, tx store.Tx, vs []string, st *State, v string) error {
	// openScope checks membership against the stored list, which may still
	// hold a version being deleted; stage the new list first.
	if err := putJSON(ctx, tx, keyVersions, vs); err != nil {
		return err
	}
	sc, err := openScope(ctx, tx, v)
	if err != nil {
		return err
	}
	st.Version = v
	if loc, ok := sc.index[st.Page]; ok && loc.Kind == nav.KindPage {
		st.Tab = loc.Tab
		return nil
	}
	tabs, err := loadTabs(ctx, tx)
	if err != nil {
		return err
	}
	st.Page, err = sc.firstPage(ctx, tx, st.Tab, tabs)
	return err
}
