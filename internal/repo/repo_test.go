package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	p, err := Init(dir, InitOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Dir, DBFile), p)
	assert.FileExists(t, p)
	assert.FileExists(t, filepath.Join(dir, Dir, ".gitignore"))

	_, err = Init(dir, InitOptions{})
	assert.Error(t, err, "second init without force")

	_, err = Init(dir, InitOptions{Force: true})
	assert.NoError(t, err)
}

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	_, err := Init(dir, InitOptions{Local: true})
	require.NoError(t, err)
	quireDir := filepath.Join(dir, Dir)

	local, err := IsLocal(quireDir, "")
	require.NoError(t, err)
	assert.True(t, local)

	require.NoError(t, SetLocal(quireDir, "", true), "idempotent")
	content, err := os.ReadFile(filepath.Join(quireDir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, 1, countLines(string(content), DBFile))

	require.NoError(t, SetLocal(quireDir, "", false))
	local, err = IsLocal(quireDir, "")
	require.NoError(t, err)
	assert.False(t, local)

	content, err = os.ReadFile(filepath.Join(quireDir, ".gitignore"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), localHeader)
	assert.Contains(t, string(content), "config.yaml", "other entries kept")
}

func countLines(s, line string) int {
	n := 0
	for _, l := range strings.Split(s, "\n") {
		if l == line {
			n++
		}
	}
	return n
}

func TestDiscover(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	_, err = Init(dir, InitOptions{})
	require.NoError(t, err)

	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))
	chdir(t, sub)

	p, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Dir, DBFile), p)

	d, err := DiscoverDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Dir), d)
}

func TestNamedDB(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "quire-docs.db", DBName("docs"))

	p, err := Init(dir, InitOptions{DB: "docs", Local: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Dir, "quire-docs.db"), p)

	local, err := IsLocal(filepath.Join(dir, Dir), "docs")
	require.NoError(t, err)
	assert.True(t, local)

	chdir(t, dir)
	_, err = Discover("")
	assert.ErrorIs(t, err, ErrNotInitialised, "default database was never created")
	got, err := Discover("docs")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestDiscover_NotInitialised(t *testing.T) {
	dir := t.TempDir()
	// A bare .quire directory without a database does not count.
	require.NoError(t, os.Mkdir(filepath.Join(dir, Dir), 0755))
	chdir(t, dir)

	_, err := Discover("")
	assert.ErrorIs(t, err, ErrNotInitialised)
}

func TestListDBs(t *testing.T) {
	dir := t.TempDir()
	_, err := Init(dir, InitOptions{})
	require.NoError(t, err)
	_, err = Init(dir, InitOptions{DB: "notes", Local: true})
	require.NoError(t, err)

	dbs, err := ListDBs(filepath.Join(dir, Dir))
	require.NoError(t, err)
	assert.Equal(t, []DBInfo{
		{Name: "notes", File: "quire-notes.db", Local: true},
		{Name: "", File: "quire.db", Local: false},
	}, dbs)
}
