package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/path"
	"github.com/jpl-au/quire/internal/slug"
	"github.com/jpl-au/quire/internal/store"
	"github.com/jpl-au/quire/internal/validate"
)

// Page is a document as returned to callers. Version and Tab are derived from
// the storage path, never stored in the record itself.
type Page struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Tab         string `json:"tab"`
	Version     string `json:"version"`
	Path        string `json:"path"`
	CreatedAt   int64  `json:"created_at,omitempty"`
	UpdatedAt   int64  `json:"updated_at,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// record is the stored form of a page.
type record struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func (r record) page(version string, loc location, key string) Page {
	return Page{
		Slug:      r.Slug,
		Title:     r.Title,
		Body:      r.Body,
		Tab:       loc.Tab,
		Version:   version,
		Path:      key,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Placeholder is shown for a selected slug whose page does not exist (yet).
func Placeholder(s string) Page {
	return Page{
		Slug:        s,
		Title:       "Page not ready",
		Body:        "This page has not been written yet.",
		Placeholder: true,
	}
}

// CreateRequest describes a new page or folder.
type CreateRequest struct {
	Title    string
	Tab      string
	Version  string   // empty means the active version
	Parent   string   // folder slug; empty appends at the root
	Kind     nav.Kind // empty means page
	FileName string   // empty means <slug>.md
	Slug     string   // empty generates one from Title
	Body     *string  // nil uses the page template
}

// Create adds a page (record plus navigation node) or a folder (node only)
// and returns its slug.
func (w *Workspace) Create(ctx context.Context, req CreateRequest) (string, error) {
	title, err := validate.Title(req.Title, w.limits.MaxTitle)
	if err != nil {
		return "", err
	}
	kind := req.Kind
	if kind == "" {
		kind = nav.KindPage
	}
	if !kind.Valid() {
		return "", fmt.Errorf("unknown kind %q", kind)
	}
	if req.Slug != "" && !slug.Valid(req.Slug) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, req.Slug)
	}
	var file string
	if kind == nav.KindPage && req.FileName != "" {
		if file, err = validate.File(req.FileName); err != nil {
			return "", err
		}
	}
	body := ""
	if kind == nav.KindPage {
		if req.Body != nil {
			body = *req.Body
		} else {
			body = w.tmpl.Body(title)
		}
		if err := validate.Content(body, w.limits.MaxContent); err != nil {
			return "", err
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var created string
	err = w.update(ctx, func(tx store.Tx) error {
		st, err := loadState(ctx, tx)
		if err != nil {
			return err
		}
		version := req.Version
		if version == "" {
			version = st.Version
		}
		sc, err := openScope(ctx, tx, version)
		if err != nil {
			return err
		}
		tabs, err := loadTabs(ctx, tx)
		if err != nil {
			return err
		}
		if findTab(tabs, req.Tab) < 0 {
			return fmt.Errorf("tab %s: %w", req.Tab, ErrNotFound)
		}

		s, err := w.pickSlug(sc, req.Slug, title)
		if err != nil {
			return err
		}
		f, err := sc.forest(ctx, tx, req.Tab)
		if err != nil {
			return err
		}
		if err := f.Insert(nav.Node{Title: title, Slug: s, Kind: kind}, req.Parent); err != nil {
			return err
		}
		sc.touch(req.Tab)

		loc := location{Tab: req.Tab, Kind: kind}
		if kind == nav.KindPage {
			loc.File = file
			if loc.File == "" {
				loc.File = path.FileName(s)
			}
			key := sc.key(loc)
			if err := validate.Key(key, w.limits.MaxPath); err != nil {
				return err
			}
			taken, err := tx.Exists(ctx, key)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%s: %w", key, ErrAlreadyExists)
			}
			now := time.Now().Unix()
			rec := record{Slug: s, Title: title, Body: body, CreatedAt: now, UpdatedAt: now}
			if err := putJSON(ctx, tx, key, rec); err != nil {
				return err
			}
		}
		sc.set(s, loc)
		created = s
		return sc.save(ctx, tx)
	})
	if err != nil {
		return "", fmt.Errorf("create %q: %w", title, err)
	}
	return created, nil
}

// pickSlug returns the requested slug if free, or a generated one. A
// generated slug that is somehow taken (a clock reset between runs) gets a
// numeric suffix until it is free.
func (w *Workspace) pickSlug(sc *scope, want, title string) (string, error) {
	if want != "" {
		if _, taken := sc.index[want]; taken {
			return "", fmt.Errorf("%s: %w", want, ErrDuplicateSlug)
		}
		return want, nil
	}
	base := w.slugs.Generate(title)
	s := base
	for n := 2; ; n++ {
		if _, taken := sc.index[s]; !taken {
			return s, nil
		}
		s = fmt.Sprintf("%s-%d", base, n)
	}
}

// Read returns the page slug in the active version.
func (w *Workspace) Read(ctx context.Context, slug string) (Page, error) {
	return w.ReadIn(ctx, "", slug)
}

// ReadIn returns the page slug in version ("" for the active version).
// Folders are not pages and report ErrNotFound.
func (w *Workspace) ReadIn(ctx context.Context, version, slug string) (Page, error) {
	var p Page
	err := w.store.View(ctx, func(r store.Reader) error {
		if version == "" {
			st, err := loadState(ctx, r)
			if err != nil {
				return err
			}
			version = st.Version
		}
		sc, err := openScope(ctx, r, version)
		if err != nil {
			return err
		}
		p, err = readPage(ctx, r, sc, slug)
		return err
	})
	return p, err
}

func readPage(ctx context.Context, r store.Reader, sc *scope, slug string) (Page, error) {
	loc, err := sc.lookup(slug)
	if err != nil {
		return Page{}, err
	}
	if loc.Kind != nav.KindPage {
		return Page{}, fmt.Errorf("%s is a folder: %w", slug, ErrNotFound)
	}
	key := sc.key(loc)
	var rec record
	if err := getJSON(ctx, r, key, &rec); err != nil {
		return Page{}, fmt.Errorf("read %s: %w", key, err)
	}
	return rec.page(sc.version, loc, key), nil
}

// ReadPath returns the page stored at a full storage key.
func (w *Workspace) ReadPath(ctx context.Context, key string) (Page, error) {
	k, err := path.Parse(key)
	if err != nil {
		return Page{}, err
	}
	var p Page
	err = w.store.View(ctx, func(r store.Reader) error {
		var rec record
		if err := getJSON(ctx, r, key, &rec); err != nil {
			return err
		}
		p = rec.page(k.Version, location{Tab: k.Tab, File: k.File, Kind: nav.KindPage}, key)
		return nil
	})
	if err != nil {
		return Page{}, fmt.Errorf("read %s: %w", key, err)
	}
	return p, nil
}

// Select makes slug the active page and returns it. A slug with no page
// yields Placeholder rather than an error, and leaves the selection alone.
func (w *Workspace) Select(ctx context.Context, slug string) (Page, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := Placeholder(slug)
	err := w.store.Update(ctx, func(tx store.Tx) error {
		st, err := loadState(ctx, tx)
		if err != nil {
			return err
		}
		sc, err := openScope(ctx, tx, st.Version)
		if err != nil {
			return err
		}
		page, err := readPage(ctx, tx, sc, slug)
		if err != nil {
			return err
		}
		p = page
		st.Page, st.Tab = page.Slug, page.Tab
		return putJSON(ctx, tx, keyState, st)
	})
	if err != nil && !isNotFound(err) {
		return Page{}, err
	}
	return p, nil
}

// Update replaces the body of a page, and its title when title is non-nil.
// The slug and storage path never change.
func (w *Workspace) Update(ctx context.Context, slug, body string, title *string) (Page, error) {
	if err := validate.Content(body, w.limits.MaxContent); err != nil {
		return Page{}, err
	}
	var newTitle string
	if title != nil {
		t, err := validate.Title(*title, w.limits.MaxTitle)
		if err != nil {
			return Page{}, err
		}
		newTitle = t
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var p Page
	err := w.update(ctx, func(tx store.Tx) error {
		sc, err := w.activeScope(ctx, tx)
		if err != nil {
			return err
		}
		cur, err := readPage(ctx, tx, sc, slug)
		if err != nil {
			return err
		}
		rec := record{Slug: cur.Slug, Title: cur.Title, Body: body, CreatedAt: cur.CreatedAt, UpdatedAt: time.Now().Unix()}
		if title != nil && newTitle != cur.Title {
			rec.Title = newTitle
			f, err := sc.forest(ctx, tx, cur.Tab)
			if err != nil {
				return err
			}
			if err := f.SetTitle(slug, newTitle); err != nil {
				return err
			}
			sc.touch(cur.Tab)
		}
		if err := putJSON(ctx, tx, cur.Path, rec); err != nil {
			return err
		}
		p = cur
		p.Title, p.Body, p.UpdatedAt = rec.Title, rec.Body, rec.UpdatedAt
		return sc.save(ctx, tx)
	})
	if err != nil {
		return Page{}, fmt.Errorf("update %s: %w", slug, err)
	}
	return p, nil
}

// Retitle changes the title of a page or folder.
func (w *Workspace) Retitle(ctx context.Context, slug, title string) error {
	t, err := validate.Title(title, w.limits.MaxTitle)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	err = w.update(ctx, func(tx store.Tx) error {
		sc, err := w.activeScope(ctx, tx)
		if err != nil {
			return err
		}
		loc, err := sc.lookup(slug)
		if err != nil {
			return err
		}
		if loc.Kind == nav.KindPage {
			var rec record
			if err := getJSON(ctx, tx, sc.key(loc), &rec); err != nil {
				return err
			}
			rec.Title, rec.UpdatedAt = t, time.Now().Unix()
			if err := putJSON(ctx, tx, sc.key(loc), rec); err != nil {
				return err
			}
		}
		f, err := sc.forest(ctx, tx, loc.Tab)
		if err != nil {
			return err
		}
		if err := f.SetTitle(slug, t); err != nil {
			return err
		}
		sc.touch(loc.Tab)
		return sc.save(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("retitle %s: %w", slug, err)
	}
	return nil
}

// Delete removes slug and, for a folder, everything beneath it. Deleting a
// missing slug succeeds. If the active page goes, the first remaining page
// becomes active, or FallbackPage when none is left. Returns the removed
// slugs in tree order.
func (w *Workspace) Delete(ctx context.Context, slug string) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var removed []string
	err := w.update(ctx, func(tx store.Tx) error {
		st, err := loadState(ctx, tx)
		if err != nil {
			return err
		}
		sc, err := openScope(ctx, tx, st.Version)
		if err != nil {
			return err
		}
		loc, ok := sc.index[slug]
		if !ok {
			return nil
		}
		f, err := sc.forest(ctx, tx, loc.Tab)
		if err != nil {
			return err
		}
		items := f.Remove(slug)
		if len(items) == 0 {
			// Indexed but missing from the tree: drop the stray entry.
			items = []nav.Item{{Slug: slug, Kind: loc.Kind}}
		}
		sc.touch(loc.Tab)

		active := false
		for _, it := range items {
			l, ok := sc.index[it.Slug]
			if ok && l.Kind == nav.KindPage {
				if err := tx.Delete(ctx, sc.key(l)); err != nil {
					return err
				}
			}
			sc.drop(it.Slug)
			removed = append(removed, it.Slug)
			active = active || it.Slug == st.Page
		}

		if active {
			tabs, err := loadTabs(ctx, tx)
			if err != nil {
				return err
			}
			if st.Page, err = sc.firstPage(ctx, tx, st.Tab, tabs); err != nil {
				return err
			}
			if err := putJSON(ctx, tx, keyState, st); err != nil {
				return err
			}
		}
		return sc.save(ctx, tx)
	})
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", slug, err)
	}
	return removed, nil
}

// Pages returns every page of the active version, tab by tab in registry
// order and in tree order within a tab.
func (w *Workspace) Pages(ctx context.Context) ([]Page, error) {
	var out []Page
	err := w.store.View(ctx, func(r store.Reader) error {
		sc, err := w.activeScope(ctx, r)
		if err != nil {
			return err
		}
		out, err = w.pagesIn(ctx, r, sc)
		return err
	})
	return out, err
}

// PagesIn is Pages for an explicit version.
func (w *Workspace) PagesIn(ctx context.Context, version string) ([]Page, error) {
	var out []Page
	err := w.store.View(ctx, func(r store.Reader) error {
		sc, err := openScope(ctx, r, version)
		if err != nil {
			return err
		}
		out, err = w.pagesIn(ctx, r, sc)
		return err
	})
	return out, err
}

func (w *Workspace) pagesIn(ctx context.Context, r store.Reader, sc *scope) ([]Page, error) {
	tabs, err := loadTabs(ctx, r)
	if err != nil {
		return nil, err
	}
	var out []Page
	for _, t := range tabs {
		f, err := sc.forest(ctx, r, t.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range f.Pages() {
			p, err := readPage(ctx, r, sc, s)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (w *Workspace) activeScope(ctx context.Context, r store.Reader) (*scope, error) {
	st, err := loadState(ctx, r)
	if err != nil {
		return nil, err
	}
	return openScope(ctx, r, st.Version)
}
