package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	dst := filepath.Join(t.TempDir(), "site")

	out := env.run("export", dst)
	env.contains(out, "Exported 5 page(s) from v1")

	data, err := os.ReadFile(filepath.Join(dst, "v1", "program", "introduction.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "---\ntitle: Introduction\nslug: intro\n---\n# Introduction\n")
	assert.FileExists(t, filepath.Join(dst, "v1", "api", "api-intro.md"))
	assert.FileExists(t, filepath.Join(dst, "v1", "app", "app-intro.md"))

	_, err = env.runErr("export", dst)
	assert.Error(t, err, "existing files need --force")
	env.run("export", dst, "--force")
}

func TestExport_HTMLAndRaw(t *testing.T) {
	env := newTestEnv(t)
	env.run("write", "app-intro", "<p>Offline <strong>sync</strong> works</p>")

	dst := t.TempDir()
	env.run("export", dst)
	data, err := os.ReadFile(filepath.Join(dst, "v1", "app", "app-intro.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Offline **sync** works")
	assert.NotContains(t, string(data), "<strong>")

	raw := t.TempDir()
	env.run("export", raw, "--raw")
	data, err = os.ReadFile(filepath.Join(raw, "v1", "app", "app-intro.md"))
	require.NoError(t, err)
	assert.Equal(t, "<p>Offline <strong>sync</strong> works</p>", string(data))
}

func TestExport_Version(t *testing.T) {
	env := newTestEnv(t)
	env.run("versions", "clone", "v1", "v2")

	var r struct {
		Version  string   `json:"version"`
		Exported int      `json:"exported"`
		Paths    []string `json:"paths"`
	}
	dst := t.TempDir()
	env.runJSON(&r, "export", dst, "--version", "v2")
	assert.Equal(t, "v2", r.Version)
	assert.Equal(t, 5, r.Exported)
	assert.Len(t, r.Paths, 5)
	assert.DirExists(t, filepath.Join(dst, "v2"))
	assert.NoDirExists(t, filepath.Join(dst, "v1"))
}

func TestImport(t *testing.T) {
	env := newTestEnv(t)
	src := filepath.Join(t.TempDir(), "notes")
	writeFiles(t, src, map[string]string{
		"alpha.md":        "# Alpha\n\nFirst note.\n",
		"sub/beta.md":     "No heading here.\n",
		".hidden/skip.md": "# Hidden\n",
		"readme.txt":      "not markdown",
	})

	out := env.run("import", src, "--tab", "api")
	env.contains(out, "Imported 2 page(s) and 1 folder(s) into api")

	api := env.tree("api")
	require.Len(t, api, 3)
	assert.Equal(t, "api-guide", api[0].Slug)
	assert.Equal(t, "Alpha", api[1].Title)
	assert.Equal(t, "sub", api[2].Title)
	assert.Equal(t, "folder", api[2].Kind)
	require.Len(t, api[2].Children, 1)
	assert.Equal(t, "beta", api[2].Children[0].Title)

	p := env.page(api[1].Slug)
	assert.Equal(t, "# Alpha\n\nFirst note.\n", p.Body)
	assert.Equal(t, "docs/v1/api/alpha.md", p.Path)
}

func TestImport_Options(t *testing.T) {
	env := newTestEnv(t)
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"one.md":         "# One\n",
		".drafts/two.md": "# Two\n",
	})

	out := env.run("import", src, "--dry-run")
	env.contains(out, "Would import:")
	assert.Len(t, env.tree("program"), 2, "dry run creates nothing")

	var r struct {
		Imported int      `json:"imported"`
		Folders  int      `json:"folders"`
		Slugs    []string `json:"slugs"`
	}
	env.runJSON(&r, "import", src, "-H", "--parent", "automation")
	assert.Equal(t, 2, r.Imported)
	assert.Equal(t, 1, r.Folders)
	require.Len(t, r.Slugs, 2)

	program := env.tree("program")
	require.Len(t, program, 2, "defaults to the active tab")
	assert.Len(t, program[1].Children, 3)

	// A single file.
	env.runJSON(&r, "import", filepath.Join(src, "one.md"), "--tab", "app")
	assert.Equal(t, 1, r.Imported)

	empty := t.TempDir()
	out = env.run("import", empty)
	env.contains(out, "No markdown files found")

	_, err := env.runErr("import", filepath.Join(src, "missing"))
	assert.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestEnv(t)
	dst := t.TempDir()
	src.run("export", dst)

	target := newBareEnv(t)
	target.run("init", "--empty")
	target.run("config", "author.name", "Tester")
	target.run("import", filepath.Join(dst, "v1", "program"), "--tab", "program")

	for _, slug := range []string{"intro", "quick-start", "iterator"} {
		want := src.page(slug)
		got := target.page(slug)
		assert.Equal(t, want.Title, got.Title, slug)
		assert.Equal(t, want.Body, got.Body, slug)
		assert.Equal(t, want.Path, got.Path, slug)
	}
}
