// Package search ranks pages against a free-text query.
//
// Matching is case-insensitive substring containment on the title and on the
// markup-free body. A title hit scores TitleWeight, a body hit BodyWeight, and
// a page matching both scores their sum. There is no stemming or tokenising.
package search

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/jpl-au/quire/internal/markup"
)

const (
	TitleWeight   = 0.7
	BodyWeight    = 0.3
	MinQueryLen   = 2   // shorter queries return nothing
	MaxResults    = 10  // default result cap
	SnippetRadius = 40  // characters kept either side of a body match
	PreviewLen    = 120 // body prefix shown for title-only matches
	Ellipsis      = "..."
)

// Doc is a page as the index sees it.
type Doc struct {
	Slug    string
	Title   string
	Tab     string
	Version string
	Path    string
	Body    string
}

// Result is one ranked match.
type Result struct {
	Slug    string  `json:"slug"`
	Title   string  `json:"title"`
	Tab     string  `json:"tab"`
	Version string  `json:"version"`
	Path    string  `json:"path"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// Options narrows a query.
type Options struct {
	Tab   string // only pages in this tab; empty means all
	Limit int    // 0 means MaxResults
}

type entry struct {
	doc   Doc
	text  []rune // stripped body
	title string // lowercased title
	lower string // lowercased stripped body, rune-aligned with text
}

// Index holds the stripped corpus of one version. Safe for concurrent use.
type Index struct {
	mu       sync.RWMutex
	stripper markup.Stripper
	entries  []entry
}

// New returns an empty index using s to strip bodies. A nil s uses
// markup.Default.
func New(s markup.Stripper) *Index {
	if s == nil {
		s = markup.Default
	}
	return &Index{stripper: s}
}

// Rebuild replaces the indexed corpus.
func (x *Index) Rebuild(docs []Doc) {
	entries := make([]entry, 0, len(docs))
	for _, d := range docs {
		text := []rune(x.stripper.Strip(d.Body))
		entries = append(entries, entry{
			doc:   d,
			text:  text,
			title: lowerRunes([]rune(d.Title)),
			lower: lowerRunes(text),
		})
	}
	x.mu.Lock()
	x.entries = entries
	x.mu.Unlock()
}

// Len returns the number of indexed pages.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// lowerRunes lowercases rune by rune so positions in the result line up with
// positions in the input. strings.ToLower may change the rune count.
func lowerRunes(rs []rune) string {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return string(out)
}

// Query returns matches for text ordered by descending score, then title,
// then slug. Queries shorter than MinQueryLen after trimming return an empty
// (non-nil) slice.
func (x *Index) Query(text string, opts Options) []Result {
	results := []Result{}
	q := strings.TrimSpace(text)
	if utf8.RuneCountInString(q) < MinQueryLen {
		return results
	}
	needle := lowerRunes([]rune(q))
	qlen := utf8.RuneCountInString(needle)

	x.mu.RLock()
	for _, e := range x.entries {
		if opts.Tab != "" && e.doc.Tab != opts.Tab {
			continue
		}
		var score float64
		inTitle := strings.Contains(e.title, needle)
		if inTitle {
			score += TitleWeight
		}
		at := runeIndex(e.lower, needle)
		if at >= 0 {
			score += BodyWeight
		}
		if score == 0 {
			continue
		}
		var snippet string
		if at >= 0 {
			snippet = around(e.text, at, qlen)
		} else {
			snippet = preview(e.text)
		}
		results = append(results, Result{
			Slug:    e.doc.Slug,
			Title:   e.doc.Title,
			Tab:     e.doc.Tab,
			Version: e.doc.Version,
			Path:    e.doc.Path,
			Snippet: snippet,
			Score:   score,
		})
	}
	x.mu.RUnlock()

	slices.SortFunc(results, func(a, b Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = MaxResults
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// runeIndex is strings.Index reported in runes.
func runeIndex(s, sub string) int {
	i := strings.Index(s, sub)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}

// around cuts SnippetRadius runes either side of the match at [at, at+n).
func around(text []rune, at, n int) string {
	start := max(0, at-SnippetRadius)
	end := min(len(text), at+n+SnippetRadius)
	var b strings.Builder
	if start > 0 {
		b.WriteString(Ellipsis)
	}
	b.WriteString(string(text[start:end]))
	if end < len(text) {
		b.WriteString(Ellipsis)
	}
	return b.String()
}

// preview returns the first PreviewLen runes of text.
func preview(text []rune) string {
	if len(text) <= PreviewLen {
		return string(text)
	}
	return string(text[:PreviewLen]) + Ellipsis
}
