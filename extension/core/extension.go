// Package core provides the core extension for quire.
// It registers commands: init, config, serve, guide, vacuum, db, version.
package core

import (
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the shared service for vacuum.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the repository management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		e.newVacuumCmd(),
		newDBCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil; the built-in tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that do not need the shared service.
// serve: runs for as long as the client and opens the repository itself.
// db: manages gitignore entries, not database contents.
// version: build info only.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "db", "version"}
}
