// tools_transfer.go implements export and import. Both delegate to the same
// packages as the CLI so the two surfaces behave identically; the text
// output is discarded and the structured result returned.

package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/quire/internal/exporter"
	"github.com/jpl-au/quire/internal/importer"
	"github.com/jpl-au/quire/internal/log"
)

func (h *handlers) exportPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	dest, err := req.RequireString("dest")
	if err != nil {
		return mcp.NewToolResultError("dest is required"), nil
	}
	opts := exporter.Options{
		Version: getString(req, "version", ""),
		Force:   getBool(req, "force", false),
	}

	r, err := exporter.Run(ctx, io.Discard, svc, dest, opts)
	log.Event("mcp:quire_export", "export").Author(defaultAuthor).Version(r.Version).
		Detail("dest", dest).Detail("count", r.Exported).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(map[string]any{"version": r.Version, "exported": r.Exported, "paths": r.Paths})
}

func (h *handlers) importPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	src, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil
	}
	tab, err := req.RequireString("tab")
	if err != nil {
		return mcp.NewToolResultError("tab is required"), nil
	}
	opts := importer.Options{
		Tab:    tab,
		Parent: getString(req, "parent", ""),
		Hidden: getBool(req, "hidden", false),
		DryRun: getBool(req, "dry_run", false),
	}

	r, err := importer.Run(ctx, io.Discard, svc, src, opts)
	log.Event("mcp:quire_import", "import").Author(author(req)).Detail("path", src).Detail("tab", tab).
		Detail("dry_run", opts.DryRun).Detail("count", r.Imported).Write(err)
	if err != nil {
		return errResult(err)
	}
	slugs := r.Slugs
	if slugs == nil {
		slugs = []string{}
	}
	return jsonResult(map[string]any{"imported": r.Imported, "folders": r.Folders, "slugs": slugs, "dry_run": opts.DryRun})
}
