// tools_pages.go implements the page tools. Each one is an editor intent:
// select, commit a body, create, delete, move and reorder.
//
// Failures come back as tool error results rather than protocol errors, so
// the agent sees the message and can retry.

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/workspace"
)

func (h *handlers) state(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	st, err := svc.State(ctx)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(st)
}

// readPage selects a page, or reads another version without selecting.
// A missing slug selects a placeholder rather than failing.
func (h *handlers) readPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil
	}
	version := getString(req, "version", "")

	var p workspace.Page
	if version != "" {
		p, err = svc.ReadIn(ctx, version, slug)
	} else {
		p, err = svc.Select(ctx, slug)
	}
	log.Event("mcp:quire_read", "read").Author(author(req)).Slug(slug).Version(p.Version).Path(p.Path).
		Detail("placeholder", p.Placeholder).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(p)
}

func (h *handlers) writePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil
	}
	body, err := req.RequireString("body")
	if err != nil {
		return mcp.NewToolResultError("body is required"), nil
	}
	title := getOptString(req, "title")

	p, err := svc.Update(ctx, slug, body, title)
	l := log.Event("mcp:quire_write", "write").Author(author(req)).Slug(slug).Version(p.Version).Path(p.Path).
		Detail("bytes", len(body))
	if title != nil {
		l.Detail("title", *title)
	}
	l.Write(err)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("wrote %s (%s)", slug, p.Path)), nil
}

func (h *handlers) createPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil
	}
	r := workspace.CreateRequest{
		Title:    title,
		Tab:      getString(req, "tab", ""),
		Parent:   getString(req, "parent", ""),
		FileName: getString(req, "file", ""),
		Slug:     getString(req, "slug", ""),
		Body:     getOptString(req, "body"),
	}
	if getBool(req, "folder", false) {
		r.Kind = nav.KindFolder
	}
	if r.Tab == "" {
		st, err := svc.State(ctx)
		if err != nil {
			return errResult(err)
		}
		r.Tab = st.Tab
	}

	slug, err := svc.Create(ctx, r)
	log.Event("mcp:quire_create", "create").Author(author(req)).Slug(slug).
		Detail("tab", r.Tab).Detail("parent", r.Parent).Detail("kind", string(r.Kind)).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(map[string]string{"slug": slug})
}

func (h *handlers) deletePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil
	}

	removed, err := svc.Delete(ctx, slug)
	log.Event("mcp:quire_delete", "delete").Author(author(req)).Slug(slug).Detail("count", len(removed)).Write(err)
	if err != nil {
		return errResult(err)
	}
	if removed == nil {
		removed = []string{}
	}
	return jsonResult(map[string][]string{"deleted": removed})
}

func (h *handlers) movePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil
	}
	target := getString(req, "target", "")
	root := getBool(req, "root", false)

	switch {
	case root && target != "":
		err = errors.New("target and root are mutually exclusive")
	case root:
		err = svc.MoveToRoot(ctx, slug)
	case target == "":
		err = errors.New("target is required (or set root)")
	default:
		err = svc.Move(ctx, slug, target)
	}
	log.Event("mcp:quire_move", "move").Author(author(req)).Slug(slug).Detail("target", target).Detail("root", root).Write(err)
	if err != nil {
		return errResult(err)
	}
	if root {
		return mcp.NewToolResultText(fmt.Sprintf("moved %s to the tab root", slug)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("moved %s into %s", slug, target)), nil
}

func (h *handlers) reorder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	slugs := getStrings(req, "slugs")
	if len(slugs) == 0 {
		return mcp.NewToolResultError("slugs is required"), nil
	}

	err := svc.Reorder(ctx, slugs)
	log.Event("mcp:quire_reorder", "reorder").Author(author(req)).Detail("slugs", slugs).Write(err)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("reordered %d items", len(slugs))), nil
}
