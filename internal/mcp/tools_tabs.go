// tools_tabs.go implements tab registry tools.

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/workspace"
)

// tabList is the quire_tabs response.
type tabList struct {
	Active string          `json:"active"`
	Tabs   []workspace.Tab `json:"tabs"`
}

func (h *handlers) tabs(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	tabs, err := svc.Tabs(ctx)
	if err != nil {
		return errResult(err)
	}
	st, err := svc.State(ctx)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(tabList{Active: st.Tab, Tabs: tabs})
}

func (h *handlers) addTab(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	label, err := req.RequireString("label")
	if err != nil {
		return mcp.NewToolResultError("label is required"), nil
	}

	t, err := svc.AddTab(ctx, label, getString(req, "icon", ""))
	log.Event("mcp:quire_tab_add", "create").Author(author(req)).Detail("tab", t.ID).Detail("label", label).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(t)
}

func (h *handlers) updateTab(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	label, err := req.RequireString("label")
	if err != nil {
		return mcp.NewToolResultError("label is required"), nil
	}

	t, err := svc.UpdateTab(ctx, id, label, getString(req, "icon", ""))
	log.Event("mcp:quire_tab_update", "update").Author(author(req)).Detail("tab", id).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(t)
}

func (h *handlers) removeTab(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	err = svc.RemoveTab(ctx, id)
	log.Event("mcp:quire_tab_remove", "delete").Author(author(req)).Detail("tab", id).Write(err)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed tab %s", id)), nil
}

func (h *handlers) useTab(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	err = svc.UseTab(ctx, id)
	log.Event("mcp:quire_tab_use", "select").Author(defaultAuthor).Detail("tab", id).Write(err)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("active tab is %s", id)), nil
}
