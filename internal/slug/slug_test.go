package slug_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jpl-au/quire/internal/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Quick Start", "quick-start"},
		{"whitespace runs", "Hello   \t World", "hello-world"},
		{"punctuation", "What's new? (2024)", "whats-new-2024"},
		{"accents", "Café Déjà Vu", "cafe-deja-vu"},
		{"underscore kept", "snake_case name", "snake_case-name"},
		{"hyphen runs", "a - b -- c", "a-b-c"},
		{"only symbols", "!!! ???", ""},
		{"empty", "", ""},
		{"leading trailing space", "  Intro  ", "intro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Base(tt.title))
		})
	}
}

func TestGenerate_Shape(t *testing.T) {
	g := slug.New()
	for _, title := range []string{"Getting Started", "", "!!!", "Ünïcödé", "a/b\\c"} {
		s := g.Generate(title)
		require.NotEmpty(t, s, "title %q", title)
		assert.True(t, slug.Valid(s), "slug %q for %q", s, title)
	}
}

func TestGenerate_Unique(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := slug.NewWithClock(func() time.Time { return fixed })

	seen := make(map[string]bool)
	for range 1000 {
		s := g.Generate("Same Title")
		require.False(t, seen[s], "duplicate slug %s", s)
		seen[s] = true
		assert.True(t, strings.HasPrefix(s, "same-title-"))
	}
}

func TestGenerate_SuffixOnly(t *testing.T) {
	g := slug.NewWithClock(func() time.Time { return time.UnixMilli(42) })
	assert.Equal(t, "42", g.Generate("???"))
	assert.Equal(t, "43", g.Generate(""))
}

func TestGenerate_ClockBackwards(t *testing.T) {
	ms := int64(1000)
	g := slug.NewWithClock(func() time.Time {
		ms -= 10
		return time.UnixMilli(ms)
	})
	a := g.Generate("x")
	b := g.Generate("x")
	assert.Equal(t, "x-990", a)
	assert.Equal(t, "x-991", b)
}

func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("intro"))
	assert.True(t, slug.Valid("a_b-1"))
	assert.False(t, slug.Valid(""))
	assert.False(t, slug.Valid("a b"))
	assert.False(t, slug.Valid("a/b"))
}
