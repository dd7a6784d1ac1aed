package workspace

import (
	"context"

	"github.com/jpl-au/quire/internal/search"
	"github.com/jpl-au/quire/internal/store"
)

// SearchOptions narrows a search.
type SearchOptions struct {
	Tab   string // only this tab; empty searches every tab
	Limit int    // 0 uses the configured maximum
}

// Search queries the pages of the active version. The stripped corpus is
// cached and rebuilt when the active version or the store revision changes.
func (w *Workspace) Search(ctx context.Context, text string, opts SearchOptions) ([]search.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var want corpus
	var docs []search.Doc
	err := w.store.View(ctx, func(r store.Reader) error {
		st, err := loadState(ctx, r)
		if err != nil {
			return err
		}
		rev, err := loadRevision(ctx, r)
		if err != nil {
			return err
		}
		want = corpus{version: st.Version, revision: rev}
		if w.indexed == want {
			return nil
		}
		sc, err := openScope(ctx, r, st.Version)
		if err != nil {
			return err
		}
		pages, err := w.pagesIn(ctx, r, sc)
		if err != nil {
			return err
		}
		docs = make([]search.Doc, len(pages))
		for i, p := range pages {
			docs[i] = search.Doc{Slug: p.Slug, Title: p.Title, Tab: p.Tab, Version: p.Version, Path: p.Path, Body: p.Body}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if w.indexed != want {
		w.index.Rebuild(docs)
		w.indexed = want
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = w.limits.MaxResults
	}
	return w.index.Query(text, search.Options{Tab: opts.Tab, Limit: limit}), nil
}
