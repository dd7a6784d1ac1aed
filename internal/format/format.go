// Package format renders quire data for the terminal: page lists, the
// navigation tree, version and tab tables, and search hits.
package format

import (
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/search"
	"github.com/jpl-au/quire/internal/workspace"
)

// HumanSize formats a byte count as human-readable (e.g. "1.2K", "3.4M").
func HumanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// Pages prints one page per line: slug, tab and title.
func Pages(w io.Writer, pages []workspace.Page) error {
	width := 4
	for _, p := range pages {
		width = max(width, len(p.Slug))
	}
	for _, p := range pages {
		fmt.Fprintf(w, "%-*s  %-10s  %s\n", width, p.Slug, p.Tab, p.Title)
	}
	return nil
}

// Long prints pages with their storage path and last update.
func Long(w io.Writer, pages []workspace.Page) error {
	if len(pages) == 0 {
		return nil
	}
	width := 4
	for _, p := range pages {
		width = max(width, len(p.Slug))
	}
	fmt.Fprintf(w, "%-*s  %-16s  %6s  %s\n", width, "SLUG", "UPDATED", "SIZE", "PATH")
	for _, p := range pages {
		updated := "-"
		if p.UpdatedAt > 0 {
			updated = time.Unix(p.UpdatedAt, 0).Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%-*s  %-16s  %6s  %s\n", width, p.Slug, updated, HumanSize(int64(len(p.Body))), p.Path)
	}
	return nil
}

// Tree prints a navigation forest with box-drawing connectors. Folders get a
// trailing "/".
func Tree(w io.Writer, nodes []nav.Node) error {
	var printNodes func(nodes []nav.Node, prefix string)
	printNodes = func(nodes []nav.Node, prefix string) {
		for i, n := range nodes {
			last := i == len(nodes)-1

			connector := "├── "
			if last {
				connector = "└── "
			}
			suffix := ""
			if n.Kind == nav.KindFolder {
				suffix = "/"
			}
			fmt.Fprintf(w, "%s%s%s%s  (%s)\n", prefix, connector, n.Title, suffix, n.Slug)

			pfx := prefix
			if last {
				pfx += "    "
			} else {
				pfx += "│   "
			}
			if len(n.Children) > 0 {
				printNodes(n.Children, pfx)
			}
		}
	}
	printNodes(nodes, "")
	return nil
}

// Versions prints the version list, marking the active one.
func Versions(w io.Writer, vs []workspace.Version) error {
	for _, v := range vs {
		mark := " "
		if v.Active {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-16s  %d pages, %d folders\n", mark, v.Name, v.Pages, v.Folders)
	}
	return nil
}

// Tabs prints the tab registry, marking the active tab.
func Tabs(w io.Writer, tabs []workspace.Tab, active string) error {
	width := 2
	for _, t := range tabs {
		width = max(width, len(t.ID))
	}
	for _, t := range tabs {
		mark := " "
		if t.ID == active {
			mark = "*"
		}
		custom := ""
		if t.IsCustom {
			custom = "  (custom)"
		}
		fmt.Fprintf(w, "%s %-*s  %s %s%s\n", mark, width, t.ID, t.Icon, t.Label, custom)
	}
	return nil
}

// SearchResults prints each hit as a heading line and its snippet.
func SearchResults(w io.Writer, results []search.Result) error {
	for _, r := range results {
		fmt.Fprintf(w, "%s  %s  [%s] %.1f\n", r.Slug, r.Title, r.Tab, r.Score)
		if r.Snippet != "" {
			fmt.Fprintf(w, "    %s\n", r.Snippet)
		}
	}
	return nil
}

// Breadcrumb prints the chain of titles from the tab root to a page.
func Breadcrumb(w io.Writer, items []nav.Item) error {
	for i, it := range items {
		if i > 0 {
			fmt.Fprint(w, " › ")
		}
		fmt.Fprint(w, it.Title)
	}
	if len(items) > 0 {
		fmt.Fprintln(w)
	}
	return nil
}
