package workspace

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/path"
	"github.com/jpl-au/quire/internal/slug"
	"github.com/jpl-au/quire/internal/store"
	"github.com/jpl-au/quire/internal/validate"
)

func fixedClock() func() time.Time {
	at := time.UnixMilli(1700000000000)
	return func() time.Time { return at }
}

func newWorkspace(t *testing.T) *Workspace {
	t.Helper()
	w := New(store.NewMemory(), Options{Slugs: slug.NewWithClock(fixedClock())})
	require.NoError(t, w.Init(context.Background(), "v1", DefaultTabs()))
	return w
}

func seeded(t *testing.T) *Workspace {
	t.Helper()
	w := New(store.NewMemory(), Options{Slugs: slug.NewWithClock(fixedClock())})
	require.NoError(t, w.Seed(context.Background()))
	return w
}

func create(t *testing.T, w *Workspace, req CreateRequest) string {
	t.Helper()
	s, err := w.Create(context.Background(), req)
	require.NoError(t, err)
	return s
}

func body(s string) *string { return &s }

// consistent checks that every version's slug index, forests and page
// records agree with each other.
func consistent(t *testing.T, w *Workspace) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, w.store.View(ctx, func(r store.Reader) error {
		vs, err := loadVersions(ctx, r)
		require.NoError(t, err)
		tabs, err := loadTabs(ctx, r)
		require.NoError(t, err)
		for _, v := range vs {
			sc, err := openScope(ctx, r, v)
			require.NoError(t, err)
			seen := 0
			for _, tab := range tabs {
				f, err := sc.forest(ctx, r, tab.ID)
				require.NoError(t, err)
				require.NoError(t, f.Check())
				for _, it := range f.Walk() {
					loc, ok := sc.index[it.Slug]
					require.True(t, ok, "%s/%s missing from index", v, it.Slug)
					assert.Equal(t, tab.ID, loc.Tab)
					assert.Equal(t, it.Kind, loc.Kind)
					seen++
				}
			}
			assert.Equal(t, len(sc.index), seen, "index of %s has entries outside the forests", v)

			pages := 0
			for _, loc := range sc.index {
				if loc.Kind == nav.KindPage {
					pages++
					ok, err := r.Exists(ctx, sc.key(loc))
					require.NoError(t, err)
					assert.True(t, ok, "record %s missing", sc.key(loc))
				}
			}
			keys, err := r.Keys(ctx, path.VersionPrefix(v))
			require.NoError(t, err)
			records := 0
			for _, k := range keys {
				if _, err := path.Parse(k); err == nil {
					records++
				}
			}
			assert.Equal(t, pages, records, "orphan records in %s", v)
		}
		return nil
	}))
}

func TestInit(t *testing.T) {
	ctx := context.Background()
	w := New(store.NewMemory(), Options{})

	ok, err := w.Initialised(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = w.State(ctx)
	assert.ErrorIs(t, err, ErrNotInitialised)

	require.NoError(t, w.Init(ctx, "v1", DefaultTabs()))
	ok, err = w.Initialised(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	st, err := w.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, State{Version: "v1", Tab: "program", Page: FallbackPage}, st)

	assert.ErrorIs(t, w.Init(ctx, "v2", nil), ErrAlreadyExists)
	assert.Error(t, New(store.NewMemory(), Options{}).Init(ctx, "bad name", nil))
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	p, err := w.Read(ctx, "intro")
	require.NoError(t, err)
	assert.Equal(t, "Introduction", p.Title)
	assert.Equal(t, "docs/v1/program/introduction.md", p.Path)

	tree, err := w.Tree(ctx, "program")
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "getting-started", tree[0].Slug)
	assert.Equal(t, []string{"intro", "quick-start"}, []string{tree[0].Children[0].Slug, tree[0].Children[1].Slug})

	vs, err := w.Versions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Version{{Name: "v1", Active: true, Pages: 5, Folders: 3}}, vs)
	consistent(t, w)
}

func TestCreate_Read(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace(t)

	s := create(t, w, CreateRequest{Title: "Getting Started", Tab: "program"})
	assert.Equal(t, "getting-started-1700000000000", s)

	p, err := w.Read(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "Getting Started", p.Title)
	assert.Equal(t, "program", p.Tab)
	assert.Equal(t, "v1", p.Version)
	assert.Equal(t, "docs/v1/program/"+s+".md", p.Path)
	assert.Equal(t, MarkdownTemplate{}.Body("Getting Started"), p.Body)
	assert.NotZero(t, p.CreatedAt)

	// Same title, same millisecond: the slug still has to be unique.
	s2 := create(t, w, CreateRequest{Title: "Getting Started", Tab: "program"})
	assert.NotEqual(t, s, s2)

	byPath, err := w.ReadPath(ctx, p.Path)
	require.NoError(t, err)
	assert.Equal(t, p, byPath)
	consistent(t, w)
}

func TestCreate_ExactTitle(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace(t)

	s := create(t, w, CreateRequest{Title: " Foo ", Tab: "program"})
	p, err := w.Read(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, " Foo ", p.Title)

	require.NoError(t, w.Retitle(ctx, s, "Bar  "))
	p, err = w.Read(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "Bar  ", p.Title)

	_, err = w.Create(ctx, CreateRequest{Title: "  ", Tab: "program"})
	assert.Error(t, err)
}

func TestCreate_Options(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace(t)

	f := create(t, w, CreateRequest{Title: "Guides", Tab: "api", Kind: nav.KindFolder, Slug: "guides"})
	s := create(t, w, CreateRequest{Title: "Auth", Tab: "api", Parent: f, Slug: "auth", FileName: "auth-guide", Body: body("token")})

	p, err := w.Read(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "docs/v1/api/auth-guide.md", p.Path)
	assert.Equal(t, "token", p.Body)

	_, err = w.Read(ctx, f)
	assert.ErrorIs(t, err, ErrNotFound, "folders are not pages")

	crumbs, err := w.Breadcrumb(ctx, s)
	require.NoError(t, err)
	require.Len(t, crumbs, 2)
	assert.Equal(t, "guides", crumbs[0].Slug)
	assert.Equal(t, "auth", crumbs[1].Slug)
}

func TestCreate_Errors(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace(t)
	p := create(t, w, CreateRequest{Title: "Page", Tab: "program", Slug: "page"})

	tests := []struct {
		name string
		req  CreateRequest
		err  error
	}{
		{"empty title", CreateRequest{Title: "  ", Tab: "program"}, nil},
		{"unknown tab", CreateRequest{Title: "x", Tab: "nope"}, ErrNotFound},
		{"unknown version", CreateRequest{Title: "x", Tab: "program", Version: "v9"}, ErrNotFound},
		{"missing parent", CreateRequest{Title: "x", Tab: "program", Parent: "ghost"}, ErrNotFound},
		{"page parent", CreateRequest{Title: "x", Tab: "program", Parent: p}, ErrInvalidParent},
		{"duplicate slug", CreateRequest{Title: "x", Tab: "api", Slug: "page"}, ErrDuplicateSlug},
		{"bad slug", CreateRequest{Title: "x", Tab: "program", Slug: "a/b"}, ErrInvalidSlug},
		{"taken file", CreateRequest{Title: "x", Tab: "program", FileName: "page.md"}, ErrAlreadyExists},
		{"nested file", CreateRequest{Title: "x", Tab: "program", FileName: "a/b.md"}, validate.ErrInvalidFile},
		{"bad kind", CreateRequest{Title: "x", Tab: "program", Kind: "widget"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.Create(ctx, tt.req)
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
	consistent(t, w)

	pages, err := w.Pages(ctx)
	require.NoError(t, err)
	assert.Len(t, pages, 1, "failed creates leave nothing behind")
}

func TestCreate_HTMLTemplate(t *testing.T) {
	ctx := context.Background()
	w := New(store.NewMemory(), Options{Template: HTMLTemplate{}})
	require.NoError(t, w.Init(ctx, "v1", DefaultTabs()))

	s := create(t, w, CreateRequest{Title: "A <b> page", Tab: "app"})
	p, err := w.Read(ctx, s)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.Body, "<h1>A &lt;b&gt; page</h1>"))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace(t)
	s := create(t, w, CreateRequest{Title: "Old", Tab: "program"})
	before, err := w.Read(ctx, s)
	require.NoError(t, err)

	p, err := w.Update(ctx, s, "new body", nil)
	require.NoError(t, err)
	assert.Equal(t, "Old", p.Title)
	assert.Equal(t, "new body", p.Body)
	assert.Equal(t, before.Path, p.Path)

	p, err = w.Update(ctx, s, "newer", body("New"))
	require.NoError(t, err)
	assert.Equal(t, s, p.Slug, "slug survives a title change")
	assert.Equal(t, before.Path, p.Path)

	tree, err := w.Tree(ctx, "program")
	require.NoError(t, err)
	assert.Equal(t, "New", tree[0].Title)

	_, err = w.Update(ctx, "ghost", "x", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRetitle(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	require.NoError(t, w.Retitle(ctx, "automation", "Flows"))
	require.NoError(t, w.Retitle(ctx, "iterator", "Loops"))

	tree, err := w.Tree(ctx, "program")
	require.NoError(t, err)
	assert.Equal(t, "Flows", tree[1].Title)
	assert.Equal(t, "Loops", tree[1].Children[0].Title)

	p, err := w.Read(ctx, "iterator")
	require.NoError(t, err)
	assert.Equal(t, "Loops", p.Title)
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	p, err := w.Select(ctx, "api-intro")
	require.NoError(t, err)
	assert.False(t, p.Placeholder)
	st, err := w.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "api-intro", st.Page)
	assert.Equal(t, "api", st.Tab)

	p, err = w.Select(ctx, "not-written")
	require.NoError(t, err)
	assert.True(t, p.Placeholder)
	assert.Equal(t, "not-written", p.Slug)
	st, err = w.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "api-intro", st.Page, "selection unchanged")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	removed, err := w.Delete(ctx, "getting-started")
	require.NoError(t, err)
	assert.Equal(t, []string{"getting-started", "intro", "quick-start"}, removed)

	_, err = w.Read(ctx, "quick-start")
	assert.ErrorIs(t, err, ErrNotFound)
	ok, err := w.store.Exists(ctx, "docs/v1/program/quick-start.md")
	require.NoError(t, err)
	assert.False(t, ok)

	st, err := w.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "iterator", st.Page, "active page moves to the first remaining page")

	removed, err = w.Delete(ctx, "getting-started")
	require.NoError(t, err)
	assert.Empty(t, removed)
	consistent(t, w)
}

func TestDelete_LastPage(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace(t)
	s := create(t, w, CreateRequest{Title: "Only", Tab: "program"})
	_, err := w.Select(ctx, s)
	require.NoError(t, err)

	_, err = w.Delete(ctx, s)
	require.NoError(t, err)
	st, err := w.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, FallbackPage, st.Page)
}

func TestDelete_OtherPageKeepsSelection(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	_, err := w.Delete(ctx, "app-intro")
	require.NoError(t, err)
	st, err := w.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "intro", st.Page)
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	require.NoError(t, w.Move(ctx, "quick-start", "automation"))
	tree, err := w.Tree(ctx, "program")
	require.NoError(t, err)
	require.Len(t, tree[1].Children, 2)
	assert.Equal(t, "quick-start", tree[1].Children[1].Slug)

	p, err := w.Read(ctx, "quick-start")
	require.NoError(t, err)
	assert.Equal(t, "docs/v1/program/quick-start.md", p.Path, "moves never touch storage paths")

	require.NoError(t, w.Move(ctx, "automation", "automation"), "self move is a no-op")

	tests := []struct {
		name, src, target string
		err               error
	}{
		{"missing source", "ghost", "automation", ErrNotFound},
		{"missing target", "iterator", "ghost", ErrInvalidTarget},
		{"page target", "intro", "iterator", ErrInvalidTarget},
		{"self folder", "getting-started", "getting-started", nil},
		{"other tab", "iterator", "api-guide", ErrInvalidTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.Move(ctx, tt.src, tt.target)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}

	create(t, w, CreateRequest{Title: "Nested", Tab: "program", Parent: "automation", Kind: nav.KindFolder, Slug: "nested"})
	assert.ErrorIs(t, w.Move(ctx, "automation", "nested"), ErrInvalidTarget)

	require.NoError(t, w.MoveToRoot(ctx, "iterator"))
	tree, err = w.Tree(ctx, "program")
	require.NoError(t, err)
	assert.Equal(t, "iterator", tree[len(tree)-1].Slug)
	consistent(t, w)
}

func TestReorder(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	require.NoError(t, w.Reorder(ctx, []string{"quick-start", "intro"}))
	out, err := w.Outline(ctx, "program")
	require.NoError(t, err)
	var order []string
	for _, it := range out {
		order = append(order, it.Slug)
	}
	assert.Equal(t, []string{"getting-started", "quick-start", "intro", "automation", "iterator"}, order)

	assert.ErrorIs(t, w.Reorder(ctx, []string{"intro"}), ErrSetMismatch)
	assert.ErrorIs(t, w.Reorder(ctx, []string{"intro", "iterator"}), ErrSetMismatch)
	assert.ErrorIs(t, w.Reorder(ctx, nil), ErrSetMismatch)
	assert.ErrorIs(t, w.Reorder(ctx, []string{"bogus", "intro"}), ErrSetMismatch)
	assert.ErrorIs(t, w.Reorder(ctx, []string{"intro", "bogus"}), ErrSetMismatch)
}

func TestVersions_Clone(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	require.NoError(t, w.CloneVersion(ctx, "v1", "v2"))
	require.NoError(t, w.UseVersion(ctx, "v2"))
	_, err := w.Update(ctx, "intro", "changed in v2", nil)
	require.NoError(t, err)
	_, err = w.Delete(ctx, "app-intro")
	require.NoError(t, err)

	p, err := w.ReadIn(ctx, "v1", "intro")
	require.NoError(t, err)
	assert.NotEqual(t, "changed in v2", p.Body, "clones are independent")
	_, err = w.ReadIn(ctx, "v1", "app-intro")
	assert.NoError(t, err)

	v1, err := w.PagesIn(ctx, "v1")
	require.NoError(t, err)
	v2, err := w.PagesIn(ctx, "v2")
	require.NoError(t, err)
	assert.Len(t, v1, 5)
	assert.Len(t, v2, 4)

	assert.ErrorIs(t, w.CloneVersion(ctx, "v1", "v2"), ErrAlreadyExists)
	assert.ErrorIs(t, w.CloneVersion(ctx, "v9", "v3"), ErrNotFound)
	assert.Error(t, w.CloneVersion(ctx, "v1", "../v3"))
	consistent(t, w)
}

func TestVersions_Rename(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)
	require.NoError(t, w.CloneVersion(ctx, "v1", "v2"))

	require.NoError(t, w.RenameVersion(ctx, "v1", "legacy"))
	vs, err := w.Versions(ctx)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, "legacy", vs[0].Name, "rename keeps list position")
	assert.True(t, vs[0].Active, "active version follows the rename")

	p, err := w.Read(ctx, "intro")
	require.NoError(t, err)
	assert.Equal(t, "docs/legacy/program/introduction.md", p.Path)

	assert.ErrorIs(t, w.RenameVersion(ctx, "legacy", "v2"), ErrAlreadyExists)
	assert.ErrorIs(t, w.RenameVersion(ctx, "v1", "v3"), ErrNotFound)
	require.NoError(t, w.RenameVersion(ctx, "v2", "v2"))
	consistent(t, w)
}

func TestVersions_Delete(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	assert.ErrorIs(t, w.DeleteVersion(ctx, "v1"), ErrLastVersion)

	require.NoError(t, w.CloneVersion(ctx, "v1", "v2"))
	require.NoError(t, w.DeleteVersion(ctx, "v1"))

	st, err := w.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2", st.Version)
	assert.Equal(t, "intro", st.Page, "page kept when it exists in the new version")

	n, err := w.store.Count(ctx, path.VersionPrefix("v1"))
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, w.DeleteVersion(ctx, "v1"), ErrNotFound)
	assert.ErrorIs(t, w.UseVersion(ctx, "v1"), ErrNotFound)
	consistent(t, w)
}

func TestUseVersion_MissingPage(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)
	require.NoError(t, w.CloneVersion(ctx, "v1", "v2"))
	require.NoError(t, w.UseVersion(ctx, "v2"))
	_, err := w.Delete(ctx, "getting-started")
	require.NoError(t, err)

	require.NoError(t, w.UseVersion(ctx, "v1"))
	_, err = w.Select(ctx, "quick-start")
	require.NoError(t, err)
	require.NoError(t, w.UseVersion(ctx, "v2"))

	st, err := w.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "iterator", st.Page)
}

func TestTabs(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	tab, err := w.AddTab(ctx, "  Guides ", "")
	require.NoError(t, err)
	assert.Equal(t, "Guides", tab.Label)
	assert.Equal(t, DefaultIcon, tab.Icon)
	assert.True(t, tab.IsCustom)
	assert.True(t, strings.HasPrefix(tab.ID, "custom-"))

	tab, err = w.UpdateTab(ctx, tab.ID, "How-to", "")
	require.NoError(t, err)
	assert.Equal(t, "How-to", tab.Label)
	assert.Equal(t, DefaultIcon, tab.Icon)

	_, err = w.UpdateTab(ctx, "nope", "x", "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = w.AddTab(ctx, " ", "")
	assert.Error(t, err)

	require.NoError(t, w.UseTab(ctx, tab.ID))
	assert.ErrorIs(t, w.UseTab(ctx, "nope"), ErrNotFound)

	tabs, err := w.Tabs(ctx)
	require.NoError(t, err)
	assert.Len(t, tabs, 4)
}

func TestRemoveTab(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)
	require.NoError(t, w.CloneVersion(ctx, "v1", "v2"))

	require.NoError(t, w.RemoveTab(ctx, "program"))

	tabs, err := w.Tabs(ctx)
	require.NoError(t, err)
	assert.Len(t, tabs, 2)

	for _, v := range []string{"v1", "v2"} {
		n, err := w.store.Count(ctx, path.TabPrefix(v, "program"))
		require.NoError(t, err)
		assert.Zero(t, n, v)
		_, err = w.ReadIn(ctx, v, "intro")
		assert.ErrorIs(t, err, ErrNotFound, v)
	}

	st, err := w.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "api", st.Tab)
	assert.Equal(t, "api-intro", st.Page)

	assert.ErrorIs(t, w.RemoveTab(ctx, "program"), ErrNotFound)
	_, err = w.Tree(ctx, "program")
	assert.ErrorIs(t, err, ErrNotFound)
	consistent(t, w)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)

	res, err := w.Search(ctx, "iterator", SearchOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, res)
	assert.Equal(t, "iterator", res[0].Slug)
	assert.InDelta(t, 1.0, res[0].Score, 1e-9)

	res, err = w.Search(ctx, "i", SearchOptions{})
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)

	// Edits are visible to the next search.
	_, err = w.Update(ctx, "app-intro", "now mentions zeppelins", nil)
	require.NoError(t, err)
	res, err = w.Search(ctx, "zeppelin", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "app-intro", res[0].Slug)

	res, err = w.Search(ctx, "zeppelin", SearchOptions{Tab: "api"})
	require.NoError(t, err)
	assert.Empty(t, res)

	// Search only sees the active version.
	require.NoError(t, w.CloneVersion(ctx, "v1", "v2"))
	require.NoError(t, w.UseVersion(ctx, "v2"))
	_, err = w.Update(ctx, "app-intro", "nothing here", nil)
	require.NoError(t, err)
	res, err = w.Search(ctx, "zeppelin", SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSearch_SharedStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	a := New(s, Options{})
	require.NoError(t, a.Seed(ctx))
	b := New(s, Options{})

	_, err := b.Search(ctx, "quick", SearchOptions{})
	require.NoError(t, err)

	_, err = a.Update(ctx, "intro", "quicksilver", nil)
	require.NoError(t, err)

	res, err := b.Search(ctx, "quicksilver", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, res, 1, "a write through another workspace invalidates the cache")
	assert.Equal(t, "intro", res[0].Slug)
}

func TestRandomOperations(t *testing.T) {
	ctx := context.Background()
	w := seeded(t)
	rng := rand.New(rand.NewPCG(3, 4))
	tabs := []string{"program", "api", "app"}

	slugs := func() []string {
		var out []string
		for _, tab := range tabs {
			items, err := w.Outline(ctx, tab)
			require.NoError(t, err)
			for _, it := range items {
				out = append(out, it.Slug)
			}
		}
		return out
	}
	pick := func(s []string) string {
		if len(s) == 0 {
			return "none"
		}
		return s[rng.IntN(len(s))]
	}

	for i := range 300 {
		all := slugs()
		switch rng.IntN(5) {
		case 0, 1:
			kind := nav.KindPage
			if rng.IntN(3) == 0 {
				kind = nav.KindFolder
			}
			parent := ""
			if rng.IntN(2) == 0 {
				parent = pick(all)
			}
			_, _ = w.Create(ctx, CreateRequest{Title: fmt.Sprintf("Node %d", i), Tab: pick(tabs), Parent: parent, Kind: kind})
		case 2:
			_, err := w.Delete(ctx, pick(all))
			require.NoError(t, err)
		case 3:
			_ = w.Move(ctx, pick(all), pick(all))
		case 4:
			_ = w.MoveToRoot(ctx, pick(all))
		}
	}
	consistent(t, w)
}

func TestSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "quire.db")
	s, err := store.Open(file)
	require.NoError(t, err)
	require.NoError(t, s.Init())

	w := New(s, Options{})
	require.NoError(t, w.Seed(ctx))
	require.NoError(t, w.CloneVersion(ctx, "v1", "v2"))
	require.NoError(t, w.RenameVersion(ctx, "v2", "next"))
	_, err = w.Delete(ctx, "automation")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(file)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	w = New(s, Options{})

	vs, err := w.Versions(ctx)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, "next", vs[1].Name)
	assert.Equal(t, 5, vs[1].Pages)
	assert.Equal(t, 4, vs[0].Pages)
	consistent(t, w)
}
