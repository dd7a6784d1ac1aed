// Package ls lists the pages of the active version, as a flat list, a long
// table or the navigation tree of one tab.
package ls

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/quire/internal/format"
	"github.com/jpl-au/quire/internal/glob"
	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/service"
	"github.com/jpl-au/quire/internal/workspace"
)

// Options configures a list operation.
type Options struct {
	Tab  string // only this tab; with Tree, empty is the active tab
	Tree bool   // print the navigation tree
	Long bool   // include storage path, size and update time
	Glob string // only pages whose "<tab>/<slug>" matches, see package glob
}

// Result holds whichever form was requested.
type Result struct {
	Pages []workspace.Page `json:"pages,omitempty"`
	Tree  []nav.Node       `json:"tree,omitempty"`
}

// Run lists pages and writes them to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result
	if opts.Tree {
		tree, err := svc.Tree(ctx, opts.Tab)
		if err != nil {
			return result, err
		}
		result.Tree = tree
		return result, format.Tree(w, tree)
	}

	pages, err := svc.Pages(ctx)
	if err != nil {
		return result, err
	}
	if opts.Glob != "" && !glob.Valid(opts.Glob) {
		return result, fmt.Errorf("invalid pattern %q", opts.Glob)
	}
	kept := pages[:0]
	for _, p := range pages {
		if opts.Tab != "" && p.Tab != opts.Tab {
			continue
		}
		if opts.Glob != "" {
			if m, _ := glob.Match(opts.Glob, p.Tab, p.Slug); !m {
				continue
			}
		}
		kept = append(kept, p)
	}
	pages = kept
	result.Pages = pages
	if opts.Long {
		return result, format.Long(w, pages)
	}
	return result, format.Pages(w, pages)
}
