// Package slug turns page titles into URL-safe identifiers.
//
// A slug is the title's readable base followed by a numeric suffix drawn from
// a strictly increasing millisecond clock, so two calls never produce the
// same value within one process even for identical titles.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spaces  = regexp.MustCompile(`\s+`)
	invalid = regexp.MustCompile(`[^a-z0-9_-]`)
	hyphens = regexp.MustCompile(`-{2,}`)
	valid   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Generator produces unique slugs. The zero value is not usable; call New.
type Generator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// New returns a Generator backed by the wall clock.
func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock returns a Generator using the given clock. Tests use this to
// pin the suffix.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Generate returns Base(title) joined with a fresh suffix. A title that
// reduces to nothing yields the suffix alone.
func (g *Generator) Generate(title string) string {
	suffix := strconv.FormatInt(g.next(), 10)
	base := Base(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// next returns the current unix millisecond, bumped past the previous value
// when the clock has not advanced (or went backwards).
func (g *Generator) next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return ms
}

// Base is the deterministic part of a slug: accents folded, lowercased,
// whitespace runs replaced by a hyphen, everything outside [a-z0-9_-]
// dropped and repeated hyphens collapsed.
func Base(title string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}
	s := strings.ToLower(strings.TrimSpace(folded))
	s = spaces.ReplaceAllString(s, "-")
	s = invalid.ReplaceAllString(s, "")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s has the shape of a slug.
func Valid(s string) bool {
	return valid.MatchString(s)
}
