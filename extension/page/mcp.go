// mcp.go exposes partial edits to MCP clients as quire_edit, so an agent can
// change a sentence without sending the whole page back.

package page

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/cat"
	"github.com/jpl-au/quire/internal/edit"
	"github.com/jpl-au/quire/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

func editTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("quire_edit",
			mcp.WithDescription("Replace text (the first occurrence unless all is set), or a line range, in a page of the active version."),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Page slug")),
			mcp.WithString("old", mcp.Description("Text to find")),
			mcp.WithString("new", mcp.Description("Replacement for old")),
			mcp.WithBoolean("ignore_case", mcp.Description("Case-insensitive match for old")),
			mcp.WithBoolean("all", mcp.Description("Replace every occurrence of old")),
			mcp.WithString("lines", mcp.Description("Line range to replace, e.g. 10:20 (instead of old)")),
			mcp.WithString("replacement", mcp.Description("New content for lines")),
			mcp.WithString("author", mcp.Description("Author recorded in the audit log")),
		),
		Handler: handleEdit,
	}
}

func handleEdit(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	old := req.GetString("old", "")
	lines := req.GetString("lines", "")
	svc := extCtx.Service()

	var result edit.Result
	switch {
	case old != "" && lines != "":
		return mcp.NewToolResultError("give old or lines, not both"), nil
	case lines != "":
		start, end, perr := cat.ParseLineRange(lines)
		if perr != nil {
			return mcp.NewToolResultError(perr.Error()), nil
		}
		result, err = edit.RunLineRange(ctx, io.Discard, svc, s, req.GetString("replacement", ""),
			edit.LineRangeOptions{Start: start, End: end})
	case old != "":
		result, err = edit.Run(ctx, io.Discard, svc, s, edit.Options{
			Old:             old,
			New:             req.GetString("new", ""),
			CaseInsensitive: req.GetBool("ignore_case", false),
			All:             req.GetBool("all", false),
		})
	default:
		return mcp.NewToolResultError("old or lines is required"), nil
	}

	log.Event("mcp:quire_edit", "edit").
		Author(editAuthor(extCtx, req)).
		Slug(s).
		Version(result.Version).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Edited %s in %s", s, result.Version)), nil
}

// editAuthor is the author argument, else the configured author, else "mcp".
func editAuthor(extCtx extension.Context, req mcp.CallToolRequest) string {
	if a := req.GetString("author", ""); a != "" {
		return a
	}
	if cfg := extCtx.Config(); cfg != nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return "mcp"
}
