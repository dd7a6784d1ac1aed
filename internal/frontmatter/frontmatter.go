// Package frontmatter reads and writes the YAML header that exported pages
// carry, so an export can be imported back with titles and slugs intact.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Meta is the header of an exported page.
type Meta struct {
	Title string `yaml:"title"`
	Slug  string `yaml:"slug,omitempty"`
	Tab   string `yaml:"tab,omitempty"`
}

// Render prefixes body with m as a YAML header.
func Render(m Meta, body string) (string, error) {
	var b bytes.Buffer
	b.WriteString(fence + "\n")
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	b.WriteString(fence + "\n")
	b.WriteString(body)
	return b.String(), nil
}

// Parse splits a header off content. Content without one returns a zero
// Meta and the content unchanged.
func Parse(content string) (Meta, string, error) {
	var m Meta
	c := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(c, fence+"\n") {
		return m, content, nil
	}
	rest := c[len(fence)+1:]
	end := strings.Index(rest, "\n"+fence+"\n")
	header := ""
	switch {
	case strings.HasPrefix(rest, fence+"\n"):
		rest = rest[len(fence)+1:]
	case end >= 0:
		header = rest[:end+1]
		rest = rest[end+len(fence)+2:]
	default:
		return m, content, nil
	}
	if err := yaml.Unmarshal([]byte(header), &m); err != nil {
		return Meta{}, content, fmt.Errorf("parse front matter: %w", err)
	}
	return m, rest, nil
}

// Heading returns the text of the first level-one markdown heading, or "".
func Heading(body string) string {
	for line := range strings.Lines(body) {
		line = strings.TrimSpace(line)
		if t, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return ""
}
