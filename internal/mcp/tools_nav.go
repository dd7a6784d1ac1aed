// tools_nav.go implements the read-only navigation tools: tree, breadcrumb,
// search and diff.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/quire/internal/diff"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/search"
	"github.com/jpl-au/quire/internal/workspace"
)

func (h *handlers) tree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	tab := getString(req, "tab", "")
	nodes, err := svc.Tree(ctx, tab)
	if err != nil {
		return errResult(err)
	}
	if nodes == nil {
		nodes = []nav.Node{}
	}
	return jsonResult(nodes)
}

func (h *handlers) breadcrumb(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil
	}
	items, err := svc.Breadcrumb(ctx, slug)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(items)
}

func (h *handlers) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil
	}
	opts := workspace.SearchOptions{
		Tab:   getString(req, "tab", ""),
		Limit: getInt(req, "limit", 0),
	}

	results, err := svc.Search(ctx, query, opts)
	log.Event("mcp:quire_search", "search").Author(defaultAuthor).Detail("query", query).
		Detail("tab", opts.Tab).Detail("count", len(results)).Write(err)
	if err != nil {
		return errResult(err)
	}
	if results == nil {
		results = []search.Result{}
	}
	return jsonResult(results)
}

func (h *handlers) diff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil
	}
	from, err := req.RequireString("from")
	if err != nil {
		return mcp.NewToolResultError("from is required"), nil
	}
	opts := diff.Options{From: from, To: getString(req, "to", "")}

	r, err := svc.Diff(ctx, slug, opts)
	log.Event("mcp:quire_diff", "diff").Author(defaultAuthor).Slug(slug).
		Detail("from", opts.From).Detail("to", opts.To).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(r)
}
