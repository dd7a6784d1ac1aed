// Package importer brings a directory of markdown files into a tab.
// Subdirectories become folders and .md files become pages.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jpl-au/quire/internal/frontmatter"
	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/progress"
	"github.com/jpl-au/quire/internal/service"
	"github.com/jpl-au/quire/internal/validate"
	"github.com/jpl-au/quire/internal/workspace"
)

// Options configures an import operation.
type Options struct {
	Tab     string // target tab (required)
	Parent  string // folder slug to import under; empty is the tab root
	Version string // target version (empty = active)
	Hidden  bool   // include hidden files and directories
	DryRun  bool   // show what would be imported without importing
}

// Result contains the outcome of an import operation.
type Result struct {
	Imported int      `json:"imported"` // pages created
	Folders  int      `json:"folders"`  // folders created
	Slugs    []string `json:"slugs"`    // slugs of created pages, in import order
}

// entry is one markdown file or directory found under the source.
type entry struct {
	rel string
	dir bool
}

// Run imports src, a directory or a single .md file.
// Uses os.Root for safe traversal within the source directory.
func Run(ctx context.Context, w io.Writer, svc service.Service, src string, opts Options) (Result, error) {
	var result Result
	if opts.Tab == "" {
		return result, errors.New("import: tab is required")
	}

	info, err := os.Stat(src)
	if err != nil {
		return result, err
	}

	dir, entries := src, []entry(nil)
	if info.IsDir() {
		root, err := os.OpenRoot(src)
		if err != nil {
			return result, fmt.Errorf("opening source root: %w", err)
		}
		defer root.Close()
		if entries, err = scanRoot(root, "", opts.Hidden); err != nil {
			return result, fmt.Errorf("scanning %s: %w", src, err)
		}
	} else {
		if !isMarkdown(src) {
			return result, fmt.Errorf("%s: not a markdown file", src)
		}
		dir = filepath.Dir(src)
		entries = []entry{{rel: filepath.Base(src)}}
	}
	if len(entries) == 0 {
		return result, nil
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return result, fmt.Errorf("opening source root: %w", err)
	}
	defer root.Close()

	prog := progress.New("Importing", len(entries))
	defer prog.Done()

	// parents maps a relative directory to the folder slug created for it.
	parents := map[string]string{".": opts.Parent}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		parent := parents[filepath.Dir(e.rel)]
		display := filepath.Join(src, e.rel)
		if !info.IsDir() {
			display = src
		}

		if opts.DryRun {
			fmt.Fprintf(w, "Would import: %s\n", display)
			prog.Increment()
			continue
		}

		if e.dir {
			s, err := svc.Create(ctx, workspace.CreateRequest{
				Title:   filepath.Base(e.rel),
				Tab:     opts.Tab,
				Version: opts.Version,
				Parent:  parent,
				Kind:    nav.KindFolder,
			})
			if err != nil {
				return result, fmt.Errorf("creating folder for %s: %w", e.rel, err)
			}
			parents[e.rel] = s
			result.Folders++
			fmt.Fprintf(w, "Imported: %s -> %s/\n", display, s)
			prog.Increment()
			continue
		}

		content, err := readFileInRoot(root, e.rel)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", e.rel, err)
		}
		s, err := importPage(ctx, svc, e.rel, content, parent, opts)
		if err != nil {
			return result, fmt.Errorf("importing %s: %w", e.rel, err)
		}
		result.Imported++
		result.Slugs = append(result.Slugs, s)
		fmt.Fprintf(w, "Imported: %s -> %s\n", display, s)
		prog.Increment()
	}
	return result, nil
}

// importPage creates one page. The front matter slug and the source file
// name are kept when free; otherwise the workspace picks new ones.
func importPage(ctx context.Context, svc service.Service, rel, content, parent string, opts Options) (string, error) {
	meta, body, err := frontmatter.Parse(content)
	if err != nil {
		return "", err
	}
	name := filepath.Base(rel)
	title := meta.Title
	if title == "" {
		title = frontmatter.Heading(body)
	}
	if title == "" {
		title = strings.TrimSuffix(name, filepath.Ext(name))
	}

	req := workspace.CreateRequest{
		Title:   title,
		Tab:     opts.Tab,
		Version: opts.Version,
		Parent:  parent,
		Slug:    meta.Slug,
		Body:    &body,
	}
	if _, err := validate.File(name); err == nil {
		req.FileName = name
	}

	for {
		s, err := svc.Create(ctx, req)
		switch {
		case err == nil:
			return s, nil
		case req.Slug != "" && (errors.Is(err, workspace.ErrDuplicateSlug) || errors.Is(err, workspace.ErrInvalidSlug)):
			req.Slug = ""
		case req.FileName != "" && errors.Is(err, workspace.ErrAlreadyExists):
			req.FileName = ""
		default:
			return "", err
		}
	}
}

// scanRoot lists directories and markdown files within an os.Root, parents
// before their contents.
func scanRoot(root *os.Root, dir string, includeHidden bool) ([]entry, error) {
	path := dir
	if path == "" {
		path = "."
	}
	f, err := root.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	list, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(list, func(a, b fs.DirEntry) int { return strings.Compare(a.Name(), b.Name()) })

	var out []entry
	for _, de := range list {
		name := de.Name()
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		rel := name
		if dir != "" {
			rel = filepath.Join(dir, name)
		}
		switch {
		case de.IsDir():
			sub, err := scanRoot(root, rel, includeHidden)
			if err != nil {
				return nil, err
			}
			if len(sub) == 0 {
				continue
			}
			out = append(out, entry{rel: rel, dir: true})
			out = append(out, sub...)
		case isMarkdown(name):
			out = append(out, entry{rel: rel})
		}
	}
	return out, nil
}

func isMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}

// readFileInRoot reads a file's content within an os.Root.
func readFileInRoot(root *os.Root, name string) (string, error) {
	f, err := root.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
