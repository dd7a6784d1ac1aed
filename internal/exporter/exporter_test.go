package exporter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/quire/internal/frontmatter"
	"github.com/jpl-au/quire/internal/service/servicetest"
	"github.com/jpl-au/quire/internal/workspace"
)

func TestRun(t *testing.T) {
	svc := servicetest.New(t)
	ctx := context.Background()
	dst := t.TempDir()

	var buf bytes.Buffer
	res, err := Run(ctx, &buf, svc, dst, Options{})
	require.NoError(t, err)
	assert.Equal(t, "v1", res.Version)
	assert.Equal(t, 5, res.Exported)
	assert.Len(t, res.Paths, 5)

	for _, rel := range []string{
		"v1/program/introduction.md",
		"v1/program/quick-start.md",
		"v1/program/iterator.md",
		"v1/api/api-intro.md",
		"v1/app/app-intro.md",
	} {
		assert.FileExists(t, filepath.Join(dst, filepath.FromSlash(rel)))
	}

	data, err := os.ReadFile(filepath.Join(dst, "v1", "program", "introduction.md"))
	require.NoError(t, err)
	meta, body, err := frontmatter.Parse(string(data))
	require.NoError(t, err)
	assert.Equal(t, "Introduction", meta.Title)
	assert.Equal(t, "intro", meta.Slug)

	page, err := svc.Read(ctx, "intro")
	require.NoError(t, err)
	assert.Equal(t, page.Body, body)
	assert.Contains(t, buf.String(), "Exported: intro -> ")
}

func TestRun_Exists(t *testing.T) {
	svc := servicetest.New(t)
	ctx := context.Background()
	dst := t.TempDir()

	_, err := Run(ctx, &bytes.Buffer{}, svc, dst, Options{})
	require.NoError(t, err)

	_, err = Run(ctx, &bytes.Buffer{}, svc, dst, Options{})
	assert.ErrorContains(t, err, "file exists")

	_, err = Run(ctx, &bytes.Buffer{}, svc, dst, Options{Force: true})
	assert.NoError(t, err)
}

func TestRun_HTML(t *testing.T) {
	svc := servicetest.NewEmpty(t)
	ctx := context.Background()
	html := "<h1>Hello</h1><p>World</p>"
	_, err := svc.Create(ctx, workspace.CreateRequest{Title: "Hello", Tab: "app", Slug: "hello", Body: &html})
	require.NoError(t, err)

	dst := t.TempDir()
	_, err = Run(ctx, &bytes.Buffer{}, svc, dst, Options{})
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dst, "v1", "app", "hello.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Hello")
	assert.Contains(t, string(data), "World")
	assert.NotContains(t, string(data), "<h1>")

	raw := t.TempDir()
	_, err = Run(ctx, &bytes.Buffer{}, svc, raw, Options{Raw: true})
	require.NoError(t, err)
	data, err = os.ReadFile(filepath.Join(raw, "v1", "app", "hello.md"))
	require.NoError(t, err)
	assert.Equal(t, html, string(data))
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Run(ctx, &bytes.Buffer{}, servicetest.NewEmpty(t), t.TempDir(), Options{})
	assert.ErrorContains(t, err, "no pages")

	_, err = Run(ctx, &bytes.Buffer{}, servicetest.New(t), t.TempDir(), Options{Version: "v9"})
	assert.ErrorIs(t, err, workspace.ErrNotFound)
}
