// tools_versions.go implements version management tools.

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/quire/internal/log"
)

func (h *handlers) versions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	vs, err := svc.Versions(ctx)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(vs)
}

// fromTo reads the from/to pair shared by clone and rename.
func fromTo(req mcp.CallToolRequest) (string, string, *mcp.CallToolResult) {
	from, err := req.RequireString("from")
	if err != nil {
		return "", "", mcp.NewToolResultError("from is required")
	}
	to, err := req.RequireString("to")
	if err != nil {
		return "", "", mcp.NewToolResultError("to is required")
	}
	return from, to, nil
}

func (h *handlers) cloneVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	from, to, res := fromTo(req)
	if res != nil {
		return res, nil
	}

	err := svc.CloneVersion(ctx, from, to)
	log.Event("mcp:quire_version_clone", "clone").Author(author(req)).Version(to).Detail("from", from).Write(err)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("cloned %s to %s", from, to)), nil
}

func (h *handlers) renameVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	from, to, res := fromTo(req)
	if res != nil {
		return res, nil
	}

	err := svc.RenameVersion(ctx, from, to)
	log.Event("mcp:quire_version_rename", "rename").Author(author(req)).Version(to).Detail("from", from).Write(err)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("renamed %s to %s", from, to)), nil
}

func (h *handlers) deleteVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	err = svc.DeleteVersion(ctx, name)
	log.Event("mcp:quire_version_delete", "delete").Author(author(req)).Version(name).Write(err)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted version %s", name)), nil
}

func (h *handlers) useVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	err = svc.UseVersion(ctx, name)
	log.Event("mcp:quire_version_use", "select").Author(defaultAuthor).Version(name).Write(err)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("active version is %s", name)), nil
}
