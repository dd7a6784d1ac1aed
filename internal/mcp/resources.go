// resources.go serves pages as MCP resources.
//
// URIs are quire://pages/{slug} for the active version and
// quire://versions/{version}/pages/{slug} for a specific one. Reading a
// resource never changes the selection.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/markup"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptySlug indicates a resource URI without a slug.
	ErrEmptySlug = errors.New("empty page slug")
)

const (
	pagesPrefix    = "quire://pages/"
	versionsPrefix = "quire://versions/"
)

func (h *handlers) readPageResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	svc := h.service()
	if svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}
	uri := req.Params.URI
	version, slug, err := parsePageURI(uri)
	if err != nil {
		return nil, err
	}

	p, err := svc.ReadIn(ctx, version, slug)
	log.Event("mcp:resource", "read").Author(defaultAuthor).Slug(slug).Version(p.Version).Path(p.Path).Write(err)
	if err != nil {
		return nil, err
	}

	mime := "text/markdown"
	if markup.IsHTML(p.Body) {
		mime = "text/html"
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: mime, Text: p.Body},
	}, nil
}

// parsePageURI returns the version ("" for active) and slug of a page URI.
func parsePageURI(uri string) (version, slug string, err error) {
	switch {
	case strings.HasPrefix(uri, pagesPrefix):
		slug = strings.TrimPrefix(uri, pagesPrefix)
	case strings.HasPrefix(uri, versionsPrefix):
		rest := strings.TrimPrefix(uri, versionsPrefix)
		var ok bool
		version, slug, ok = strings.Cut(rest, "/pages/")
		if !ok || version == "" {
			return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
		}
	default:
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	if slug == "" {
		return "", "", ErrEmptySlug
	}
	if strings.Contains(slug, "/") {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return version, slug, nil
}
