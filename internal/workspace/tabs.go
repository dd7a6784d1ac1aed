package workspace

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/jpl-au/quire/internal/path"
	"github.com/jpl-au/quire/internal/store"
	"github.com/jpl-au/quire/internal/validate"
)

// DefaultIcon is used when a tab is added without one.
const DefaultIcon = "📄"

// Tab is a documentation area. Tabs are shared by all versions.
type Tab struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	IsCustom bool   `json:"is_custom"`
}

// DefaultTabs are the built-in tabs of a seeded workspace.
func DefaultTabs() []Tab {
	return []Tab{
		{ID: "program", Label: "Program", Icon: "🔄"},
		{ID: "api", Label: "API", Icon: "🔌"},
		{ID: "app", Label: "App", Icon: "📱"},
	}
}

func findTab(tabs []Tab, id string) int {
	return slices.IndexFunc(tabs, func(t Tab) bool { return t.ID == id })
}

// Tabs lists the registered tabs in order.
func (w *Workspace) Tabs(ctx context.Context) ([]Tab, error) {
	var out []Tab
	err := w.store.View(ctx, func(r store.Reader) error {
		var err error
		out, err = loadTabs(ctx, r)
		return err
	})
	return out, err
}

// tabOp loads the tab registry and state, runs fn, and saves both.
func (w *Workspace) tabOp(ctx context.Context, fn func(tx store.Tx, tabs []Tab, st *State) ([]Tab, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.update(ctx, func(tx store.Tx) error {
		tabs, err := loadTabs(ctx, tx)
		if err != nil {
			return err
		}
		st, err := loadState(ctx, tx)
		if err != nil {
			return err
		}
		tabs, err = fn(tx, tabs, &st)
		if err != nil {
			return err
		}
		if err := putJSON(ctx, tx, keyTabs, tabs); err != nil {
			return err
		}
		return putJSON(ctx, tx, keyState, st)
	})
}

// AddTab registers a custom tab and returns it.
func (w *Workspace) AddTab(ctx context.Context, label, icon string) (Tab, error) {
	label, err := validate.Label(label)
	if err != nil {
		return Tab{}, err
	}
	if icon == "" {
		icon = DefaultIcon
	}
	var t Tab
	err = w.tabOp(ctx, func(_ store.Tx, tabs []Tab, st *State) ([]Tab, error) {
		id := "custom-" + uuid.NewString()[:8]
		for findTab(tabs, id) >= 0 {
			id = "custom-" + uuid.NewString()[:8]
		}
		t = Tab{ID: id, Label: label, Icon: icon, IsCustom: true}
		if st.Tab == "" {
			st.Tab = id
		}
		return append(tabs, t), nil
	})
	if err != nil {
		return Tab{}, fmt.Errorf("add tab %q: %w", label, err)
	}
	return t, nil
}

// UpdateTab changes the label and icon of a tab. An empty icon keeps the
// current one.
func (w *Workspace) UpdateTab(ctx context.Context, id, label, icon string) (Tab, error) {
	label, err := validate.Label(label)
	if err != nil {
		return Tab{}, err
	}
	var t Tab
	err = w.tabOp(ctx, func(_ store.Tx, tabs []Tab, _ *State) ([]Tab, error) {
		i := findTab(tabs, id)
		if i < 0 {
			return nil, fmt.Errorf("tab %s: %w", id, ErrNotFound)
		}
		tabs[i].Label = label
		if icon != "" {
			tabs[i].Icon = icon
		}
		t = tabs[i]
		return tabs, nil
	})
	if err != nil {
		return Tab{}, fmt.Errorf("update tab %s: %w", id, err)
	}
	return t, nil
}

// RemoveTab deletes a tab with every page and folder filed under it, in
// every version, and drops it from the registry. If it was the active tab
// the first remaining tab becomes active.
func (w *Workspace) RemoveTab(ctx context.Context, id string) error {
	err := w.tabOp(ctx, func(tx store.Tx, tabs []Tab, st *State) ([]Tab, error) {
		i := findTab(tabs, id)
		if i < 0 {
			return nil, fmt.Errorf("tab %s: %w", id, ErrNotFound)
		}
		tabs = slices.Delete(tabs, i, i+1)

		vs, err := loadVersions(ctx, tx)
		if err != nil {
			return nil, err
		}
		pageGone := false
		for _, v := range vs {
			sc, err := openScope(ctx, tx, v)
			if err != nil {
				return nil, err
			}
			for s, loc := range sc.index {
				if loc.Tab != id {
					continue
				}
				sc.drop(s)
				pageGone = pageGone || (v == st.Version && s == st.Page)
			}
			if _, err := tx.DeletePrefix(ctx, path.TabPrefix(v, id)); err != nil {
				return nil, err
			}
			if err := sc.save(ctx, tx); err != nil {
				return nil, err
			}
		}

		if st.Tab == id {
			st.Tab = ""
			if len(tabs) > 0 {
				st.Tab = tabs[0].ID
			}
		}
		if pageGone {
			sc, err := openScope(ctx, tx, st.Version)
			if err != nil {
				return nil, err
			}
			if st.Page, err = sc.firstPage(ctx, tx, st.Tab, tabs); err != nil {
				return nil, err
			}
		}
		return tabs, nil
	})
	if err != nil {
		return fmt.Errorf("remove tab %s: %w", id, err)
	}
	return nil
}

// UseTab makes id the active tab.
func (w *Workspace) UseTab(ctx context.Context, id string) error {
	err := w.tabOp(ctx, func(_ store.Tx, tabs []Tab, st *State) ([]Tab, error) {
		if findTab(tabs, id) < 0 {
			return nil, fmt.Errorf("tab %s: %w", id, ErrNotFound)
		}
		st.Tab = id
		return tabs, nil
	})
	if err != nil {
		return fmt.Errorf("use tab %s: %w", id, err)
	}
	return nil
}
