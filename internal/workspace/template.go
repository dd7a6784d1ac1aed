package workspace

import (
	"fmt"
	"html"
)

// Template produces the initial body of a page created without one.
type Template interface {
	Body(title string) string
}

// MarkdownTemplate is the default page template.
type MarkdownTemplate struct{}

func (MarkdownTemplate) Body(title string) string {
	return fmt.Sprintf("# %s\n\nThis page was just created. Write your content here...\n\n## Get started\n\nUse the editor to write your content.\n", title)
}

// HTMLTemplate matches what a rich-text editor stores.
type HTMLTemplate struct{}

func (HTMLTemplate) Body(title string) string {
	return fmt.Sprintf("<h1>%s</h1><p>This page was just created. Write your content here...</p><h2>Get started</h2><p>Use the editor to write your content.</p>", html.EscapeString(title))
}

// TemplateFunc adapts a function to Template.
type TemplateFunc func(title string) string

func (f TemplateFunc) Body(title string) string { return f(title) }
