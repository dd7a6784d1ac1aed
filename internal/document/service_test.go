package document_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/quire/internal/diff"
	"github.com/jpl-au/quire/internal/document"
	"github.com/jpl-au/quire/internal/repo"
	"github.com/jpl-au/quire/internal/service"
	"github.com/jpl-au/quire/internal/workspace"
)

// setupService initialises a seeded repository in a temp directory and
// opens it. The working directory moves there for the test so config
// lookups stay local.
func setupService(t *testing.T, opts document.InitOptions) service.Service {
	t.Helper()
	tmpDir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	require.NoError(t, document.Init(context.Background(), "", opts))
	svc, err := document.New(document.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestService_Seeded(t *testing.T) {
	svc := setupService(t, document.InitOptions{})
	ctx := context.Background()

	p, err := svc.Select(ctx, "intro")
	require.NoError(t, err)
	assert.Equal(t, "Introduction", p.Title)

	st, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, workspace.State{Version: "v1", Tab: "program", Page: "intro"}, st)
	assert.Equal(t, repo.Dir, filepath.Base(svc.Dir()))
}

func TestService_Empty(t *testing.T) {
	svc := setupService(t, document.InitOptions{Empty: true})
	ctx := context.Background()

	pages, err := svc.Pages(ctx)
	require.NoError(t, err)
	assert.Empty(t, pages)

	tabs, err := svc.Tabs(ctx)
	require.NoError(t, err)
	assert.Len(t, tabs, 3)

	p, err := svc.Select(ctx, "intro")
	require.NoError(t, err)
	assert.True(t, p.Placeholder)
}

func TestService_Diff(t *testing.T) {
	svc := setupService(t, document.InitOptions{})
	ctx := context.Background()

	require.NoError(t, svc.CloneVersion(ctx, "v1", "v2"))
	require.NoError(t, svc.UseVersion(ctx, "v2"))
	_, err := svc.Update(ctx, "app-intro", "# App introduction\n\nRewritten for v2.\n", nil)
	require.NoError(t, err)

	r, err := svc.Diff(ctx, "app-intro", diff.Options{From: "v1"})
	require.NoError(t, err)
	assert.Equal(t, "v1/app-intro", r.Old)
	assert.Equal(t, "v2/app-intro", r.New)
	assert.Contains(t, r.Diff, "+ Rewritten for v2.")
	assert.False(t, r.Empty())

	r, err = svc.Diff(ctx, "intro", diff.Options{From: "v1", To: "v2"})
	require.NoError(t, err)
	assert.True(t, r.Empty())

	_, err = svc.Diff(ctx, "intro", diff.Options{})
	assert.Error(t, err)
	_, err = svc.Diff(ctx, "ghost", diff.Options{From: "v1"})
	assert.ErrorIs(t, err, workspace.ErrNotFound)
}

func TestService_Vacuum(t *testing.T) {
	svc := setupService(t, document.InitOptions{})
	ctx := context.Background()

	require.NoError(t, svc.CloneVersion(ctx, "v1", "v2"))
	require.NoError(t, svc.DeleteVersion(ctx, "v2"))

	r, err := svc.Vacuum(ctx)
	require.NoError(t, err)
	assert.Positive(t, r.After)
	require.NoError(t, svc.Checkpoint(ctx))
}

func TestNew_NotInitialised(t *testing.T) {
	_, err := document.New(document.Options{Dir: t.TempDir()})
	assert.True(t, document.IsNotInitialised(err))
}

func TestNew_ExplicitDir(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	require.NoError(t, document.Init(context.Background(), dir, document.InitOptions{}))
	svc, err := document.New(document.Options{Dir: dir})
	require.NoError(t, err)
	defer svc.Close()

	vs, err := svc.Versions(context.Background())
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "v1", vs[0].Name)
}

func TestNew_NamedDB(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, document.Init(context.Background(), dir, document.InitOptions{DB: "docs", Empty: true}))

	_, err := document.New(document.Options{Dir: dir})
	assert.True(t, document.IsNotInitialised(err))

	svc, err := document.New(document.Options{Dir: dir, DB: "docs"})
	require.NoError(t, err)
	defer svc.Close()
	assert.Equal(t, "quire-docs.db", filepath.Base(svc.DBPath()))
}
