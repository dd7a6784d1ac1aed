// tools_init.go creates a repository from an MCP client. It is the only
// tool that works before one exists.

package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/quire/internal/document"
	"github.com/jpl-au/quire/internal/log"
)

func (h *handlers) initRepo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.svc != nil {
		return mcp.NewToolResultError("quire already initialised"), nil
	}

	empty := getBool(req, "empty", false)
	local := getBool(req, "local", false)

	err := document.Init(ctx, h.dir, document.InitOptions{Empty: empty, Local: local, DB: h.db})
	log.Event("mcp:quire_init", "init").Author(defaultAuthor).Detail("empty", empty).Detail("local", local).Write(err)
	if err != nil {
		return errResult(err)
	}

	svc, err := document.New(document.Options{Dir: h.dir, DB: h.db})
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open repository: " + err.Error()), nil
	}
	h.svc = svc
	slog.Info("repository initialised", "empty", empty, "local", local)

	if local {
		return mcp.NewToolResultText("quire initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("quire initialised"), nil
}
