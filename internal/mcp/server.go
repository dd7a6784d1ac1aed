// Package mcp implements the Model Context Protocol server, exposing quire
// to editors and LLM agents. Each tool maps onto one editor intent (select a
// page, commit a body, create, delete, move, search) or onto version and tab
// management.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/config"
	"github.com/jpl-au/quire/internal/document"
	"github.com/jpl-au/quire/internal/service"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when there is no repository yet.
const ErrNotInitialised = "quire not initialised - call quire_init first"

// Options configures Serve.
type Options struct {
	Dir   string              // project directory; empty walks up from the working directory
	DB    string              // database name, see repo.DBName
	Tools []extension.MCPTool // extra tools contributed by extensions
}

// Serve starts the MCP server over stdio.
//
// The server starts even if no repository exists, so a client can call
// quire_init. Tools that need a repository report ErrNotInitialised until
// then.
func Serve(opts Options) error {
	// stdout carries JSON-RPC
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	h := &handlers{dir: opts.Dir, db: opts.DB}
	// quire_init may open the service after startup
	defer func() {
		if svc := h.service(); svc != nil {
			svc.Close()
		}
	}()

	svc, err := document.New(document.Options{Dir: opts.Dir, DB: opts.DB})
	switch {
	case err == nil:
		h.svc = svc
	case document.IsNotInitialised(err):
		slog.Info("quire not initialised, starting in uninitialised mode - call quire_init to create a repository")
	default:
		slog.Error("failed to open repository", "error", err)
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	h.cfg = cfg

	s := newServer(h, opts.Tools...)
	slog.Info("quire MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds an MCP server with quire's resources and tools, plus any
// extension tools.
func newServer(h *handlers, extra ...extension.MCPTool) *server.MCPServer {
	s := server.NewMCPServer(
		"quire",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	for _, t := range extra {
		s.AddTool(t.Tool, h.extensionHandler(t.Handler))
	}
	return s
}

// handlers provides MCP request handlers with access to the repository.
type handlers struct {
	dir string
	db  string
	cfg *config.Config

	mu  sync.RWMutex
	svc service.Service // nil until a repository exists
}

// newHandlers wraps an open service. Used by tests and by callers that
// manage the service lifecycle themselves.
func newHandlers(svc service.Service, cfg *config.Config) *handlers {
	return &handlers{svc: svc, cfg: cfg}
}

func (h *handlers) service() service.Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc
}

// requireInit returns the service, or an error result when there is none.
func (h *handlers) requireInit() (service.Service, *mcp.CallToolResult) {
	svc := h.service()
	if svc == nil {
		return nil, mcp.NewToolResultError(ErrNotInitialised)
	}
	return svc, nil
}

// extensionHandler adapts an extension tool to a server handler.
func (h *handlers) extensionHandler(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		svc, res := h.requireInit()
		if res != nil {
			return res, nil
		}
		return fn(ctx, extension.NewContext(svc, h.cfg), req)
	}
}

// registerResources adds URI-based read access to pages.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"quire://pages/{slug}",
			"Page",
			mcp.WithTemplateDescription("Read a page of the active version by slug"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readPageResource,
	)
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"quire://versions/{version}/pages/{slug}",
			"Page in version",
			mcp.WithTemplateDescription("Read a page of a specific version"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readPageResource,
	)
}

// registerTools exposes quire operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("quire_init",
			mcp.WithDescription("Initialise a quire repository. Call this first if other tools return 'quire not initialised'."),
			mcp.WithBoolean("empty", mcp.Description("Create version v1 and the built-in tabs without starter pages")),
			mcp.WithBoolean("local", mcp.Description("If true, the database is gitignored")),
		),
		h.initRepo,
	)

	s.AddTool(
		mcp.NewTool("quire_state",
			mcp.WithDescription("Get the active version, tab and page"),
		),
		h.state,
	)

	s.AddTool(
		mcp.NewTool("quire_read",
			mcp.WithDescription("Select a page and return it. A slug with no page returns a placeholder page. With version, reads that version without changing the selection."),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Page slug")),
			mcp.WithString("version", mcp.Description("Read from this version instead of the active one")),
		),
		h.readPage,
	)

	s.AddTool(
		mcp.NewTool("quire_write",
			mcp.WithDescription("Commit a new body (and optionally a new title) to an existing page. The slug and storage path never change."),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Page slug")),
			mcp.WithString("body", mcp.Required(), mcp.Description("New page body (markdown or HTML)")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.writePage,
	)

	s.AddTool(
		mcp.NewTool("quire_create",
			mcp.WithDescription("Create a page or folder and return its slug"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Title")),
			mcp.WithString("tab", mcp.Description("Tab id (default: active tab)")),
			mcp.WithString("parent", mcp.Description("Folder slug to create under (default: tab root)")),
			mcp.WithBoolean("folder", mcp.Description("Create a folder instead of a page")),
			mcp.WithString("file", mcp.Description("Storage file name (default: <slug>.md)")),
			mcp.WithString("slug", mcp.Description("Explicit slug (default: generated from title)")),
			mcp.WithString("body", mcp.Description("Initial body (default: page template)")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.createPage,
	)

	s.AddTool(
		mcp.NewTool("quire_delete",
			mcp.WithDescription("Delete a page, or a folder with everything beneath it. Deleting a missing slug succeeds."),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Page or folder slug")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.deletePage,
	)

	s.AddTool(
		mcp.NewTool("quire_move",
			mcp.WithDescription("Move a page or folder into a folder of the same tab, or to the tab root"),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Slug to move")),
			mcp.WithString("target", mcp.Description("Target folder slug")),
			mcp.WithBoolean("root", mcp.Description("Move to the tab root instead of a folder")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.movePage,
	)

	s.AddTool(
		mcp.NewTool("quire_reorder",
			mcp.WithDescription("Set the order of one sibling group. The slugs must be exactly the current siblings."),
			mcp.WithArray("slugs", mcp.Required(), mcp.Description("Sibling slugs in the new order"), mcp.WithStringItems()),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.reorder,
	)

	s.AddTool(
		mcp.NewTool("quire_tree",
			mcp.WithDescription("Get a tab's navigation tree"),
			mcp.WithString("tab", mcp.Description("Tab id (default: active tab)")),
		),
		h.tree,
	)

	s.AddTool(
		mcp.NewTool("quire_breadcrumb",
			mcp.WithDescription("Get the chain of folders from the tab root down to a page"),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Page or folder slug")),
		),
		h.breadcrumb,
	)

	s.AddTool(
		mcp.NewTool("quire_search",
			mcp.WithDescription("Search titles and bodies of the active version. Results are ranked with title matches first and carry a snippet."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
			mcp.WithString("tab", mcp.Description("Only search this tab")),
			mcp.WithNumber("limit", mcp.Description("Maximum results")),
		),
		h.search,
	)

	s.AddTool(
		mcp.NewTool("quire_diff",
			mcp.WithDescription("Show how a page differs between two versions"),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Page slug")),
			mcp.WithString("from", mcp.Required(), mcp.Description("Old version")),
			mcp.WithString("to", mcp.Description("New version (default: active version)")),
		),
		h.diff,
	)

	s.AddTool(
		mcp.NewTool("quire_versions",
			mcp.WithDescription("List versions with page counts"),
		),
		h.versions,
	)

	s.AddTool(
		mcp.NewTool("quire_version_clone",
			mcp.WithDescription("Copy every page and tree of a version into a new version"),
			mcp.WithString("from", mcp.Required(), mcp.Description("Source version")),
			mcp.WithString("to", mcp.Required(), mcp.Description("New version name")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.cloneVersion,
	)

	s.AddTool(
		mcp.NewTool("quire_version_rename",
			mcp.WithDescription("Rename a version"),
			mcp.WithString("from", mcp.Required(), mcp.Description("Current name")),
			mcp.WithString("to", mcp.Required(), mcp.Description("New name")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.renameVersion,
	)

	s.AddTool(
		mcp.NewTool("quire_version_delete",
			mcp.WithDescription("Delete a version and all of its pages. The last version cannot be deleted."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Version name")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.deleteVersion,
	)

	s.AddTool(
		mcp.NewTool("quire_version_use",
			mcp.WithDescription("Make a version active"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Version name")),
		),
		h.useVersion,
	)

	s.AddTool(
		mcp.NewTool("quire_tabs",
			mcp.WithDescription("List tabs and the active tab"),
		),
		h.tabs,
	)

	s.AddTool(
		mcp.NewTool("quire_tab_add",
			mcp.WithDescription("Add a custom tab"),
			mcp.WithString("label", mcp.Required(), mcp.Description("Tab label")),
			mcp.WithString("icon", mcp.Description("Tab icon")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.addTab,
	)

	s.AddTool(
		mcp.NewTool("quire_tab_update",
			mcp.WithDescription("Change a tab's label or icon"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Tab id")),
			mcp.WithString("label", mcp.Required(), mcp.Description("New label")),
			mcp.WithString("icon", mcp.Description("New icon (default: keep)")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.updateTab,
	)

	s.AddTool(
		mcp.NewTool("quire_tab_remove",
			mcp.WithDescription("Remove a tab and its pages from every version"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Tab id")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.removeTab,
	)

	s.AddTool(
		mcp.NewTool("quire_tab_use",
			mcp.WithDescription("Make a tab active"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Tab id")),
		),
		h.useTab,
	)

	s.AddTool(
		mcp.NewTool("quire_export",
			mcp.WithDescription("Export a version to markdown files under a directory"),
			mcp.WithString("dest", mcp.Required(), mcp.Description("Filesystem destination")),
			mcp.WithString("version", mcp.Description("Version (default: active)")),
			mcp.WithBoolean("force", mcp.Description("Overwrite existing files")),
		),
		h.exportPages,
	)

	s.AddTool(
		mcp.NewTool("quire_import",
			mcp.WithDescription("Import a directory of markdown files into a tab. Subdirectories become folders."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Filesystem path to import from")),
			mcp.WithString("tab", mcp.Required(), mcp.Description("Target tab id")),
			mcp.WithString("parent", mcp.Description("Folder slug to import under")),
			mcp.WithBoolean("hidden", mcp.Description("Include hidden files and directories")),
			mcp.WithBoolean("dry_run", mcp.Description("Show what would be imported without importing")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.importPages,
	)

	s.AddTool(
		mcp.NewTool("quire_guide",
			mcp.WithDescription("Get help content for quire"),
			mcp.WithString("topic", mcp.Description("Guide topic, or empty for the index")),
		),
		h.getGuide,
	)
}
