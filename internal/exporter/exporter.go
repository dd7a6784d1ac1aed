// Package exporter writes the pages of a version to the filesystem as
// markdown files laid out like their storage keys.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/jpl-au/quire/internal/frontmatter"
	"github.com/jpl-au/quire/internal/markup"
	"github.com/jpl-au/quire/internal/progress"
	"github.com/jpl-au/quire/internal/service"
)

// Options configures an export operation.
type Options struct {
	Version string // version to export (empty = active)
	Force   bool   // overwrite existing files
	Raw     bool   // keep HTML bodies and omit front matter
}

// Result contains the outcome of an export operation.
type Result struct {
	Version  string   `json:"version"`  // version that was exported
	Exported int      `json:"exported"` // number of files written
	Paths    []string `json:"paths"`    // filesystem paths that were written
}

// Run exports every page of a version to dst/<version>/<tab>/<file>.
// Uses os.Root so a page file name can never escape dst.
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	var result Result

	version := opts.Version
	if version == "" {
		st, err := svc.State(ctx)
		if err != nil {
			return result, err
		}
		version = st.Version
	}
	result.Version = version

	pages, err := svc.PagesIn(ctx, version)
	if err != nil {
		return result, err
	}
	if len(pages) == 0 {
		return result, fmt.Errorf("no pages in version %s", version)
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return result, fmt.Errorf("creating destination directory: %w", err)
	}
	root, err := os.OpenRoot(dst)
	if err != nil {
		return result, fmt.Errorf("opening destination root: %w", err)
	}
	defer root.Close()

	prog := progress.New("Exporting", len(pages))
	defer prog.Done()

	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		rel := relPath(p.Path)
		content, err := render(p.Title, p.Slug, p.Body, opts.Raw)
		if err != nil {
			return result, fmt.Errorf("rendering %s: %w", p.Slug, err)
		}
		if err := writeFileInRoot(root, rel, content, opts.Force); err != nil {
			return result, err
		}

		prog.Increment()
		out := filepath.Join(dst, rel)
		result.Paths = append(result.Paths, out)
		result.Exported++
		fmt.Fprintf(w, "Exported: %s -> %s\n", p.Slug, out)
	}
	return result, nil
}

// relPath turns docs/<version>/<tab>/<file> into <version>/<tab>/<file>.
func relPath(key string) string {
	return filepath.FromSlash(strings.TrimPrefix(key, "docs/"))
}

// render converts an HTML body to markdown and prefixes the title and slug.
func render(title, slug, body string, raw bool) (string, error) {
	if raw {
		return body, nil
	}
	if markup.IsHTML(body) {
		md, err := htmltomarkdown.ConvertString(body)
		if err != nil {
			return "", fmt.Errorf("converting html: %w", err)
		}
		body = md
	}
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return frontmatter.Render(frontmatter.Meta{Title: title, Slug: slug}, body)
}

// writeFileInRoot writes content to a file within an os.Root, creating
// parent directories as needed.
func writeFileInRoot(root *os.Root, name, content string, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		}
	}

	dir := filepath.Dir(name)
	if dir != "." && dir != "" {
		if err := mkdirAllInRoot(root, dir); err != nil {
			return err
		}
	}

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}

// mkdirAllInRoot creates a directory and all parents within an os.Root.
func mkdirAllInRoot(root *os.Root, path string) error {
	parts := strings.Split(filepath.Clean(path), string(filepath.Separator))
	for i := range parts {
		dir := filepath.Join(parts[:i+1]...)
		if err := root.Mkdir(dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	return nil
}
