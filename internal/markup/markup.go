// Package markup reduces page bodies to plain text for searching.
//
// Bodies are opaque strings: the editor may store HTML, while pages written
// from the CLI are usually markdown. Strip detects which one it was given.
package markup

import (
	"regexp"
	"strings"
)

// Stripper removes markup from a page body.
type Stripper interface {
	Strip(body string) string
}

// StripperFunc adapts a function to Stripper.
type StripperFunc func(body string) string

func (f StripperFunc) Strip(body string) string { return f(body) }

// Default strips both markdown and HTML.
var Default Stripper = StripperFunc(Strip)

var htmlStart = regexp.MustCompile(`^\s*<(?:[a-zA-Z][a-zA-Z0-9]*[\s/>]|!--|!DOCTYPE)`)

// IsHTML reports whether body starts with an HTML tag or comment.
func IsHTML(body string) bool {
	return htmlStart.MatchString(body)
}

// Strip returns the readable text of body with all whitespace runs collapsed
// to single spaces.
func Strip(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	var text string
	if IsHTML(body) {
		text = stripHTML(body)
	} else {
		text = stripMarkdown(body)
	}
	return collapse(text)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
