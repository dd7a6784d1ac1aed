package markup_test

import (
	"testing"

	"github.com/jpl-au/quire/internal/markup"
	"github.com/stretchr/testify/assert"
)

func TestStrip_Markdown(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"heading and paragraph", "# Title\n\nSome **bold** text.", "Title Some bold text."},
		{"link keeps label", "See [the docs](https://example.com/x) now", "See the docs now"},
		{"list", "- one\n- two\n", "one two"},
		{"code block", "```go\nfmt.Println(1)\n```\n", "fmt.Println(1)"},
		{"inline code", "Use `quire init` first", "Use quire init first"},
		{"soft break", "line one\nline two", "line one line two"},
		{"inline html dropped", "a <span>b</span> c", "a b c"},
		{"empty", "   \n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markup.Strip(tt.body))
		})
	}
}

func TestStrip_HTML(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"paragraphs", "<h1>Iterator</h1><p>Walks a collection.</p>", "Iterator Walks a collection."},
		{"inline tags join", "<p>Hel<b>lo</b> world</p>", "Hello world"},
		{"entities", "<p>a &amp; b &lt;c&gt;</p>", "a & b <c>"},
		{"script skipped", "<div>x<script>var y = 1;</script>z</div>", "xz"},
		{"style skipped", "<style>p{color:red}</style><p>shown</p>", "shown"},
		{"line breaks", "<p>one<br/>two</p>", "one two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markup.Strip(tt.body))
		})
	}
}

func TestIsHTML(t *testing.T) {
	assert.True(t, markup.IsHTML("<h1>x</h1>"))
	assert.True(t, markup.IsHTML("  <p>x"))
	assert.True(t, markup.IsHTML("<!-- c -->"))
	assert.False(t, markup.IsHTML("# Heading"))
	assert.False(t, markup.IsHTML("a < b"))
	assert.False(t, markup.IsHTML("<3 love"))
}

func TestStripperFunc(t *testing.T) {
	s := markup.StripperFunc(func(string) string { return "fixed" })
	assert.Equal(t, "fixed", s.Strip("anything"))
	assert.Equal(t, "x", markup.Default.Strip("*x*"))
}
