// Package extension provides the plugin architecture for quire. Extensions
// group related functionality (CLI commands, MCP tools) and register at init
// time, so features are added without touching the root command.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for quire extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns tools to register with the MCP server in addition
	// to the built-in ones.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context once the repository
// is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require an open repository. Commands named by NoStoreCommands do not
// trigger repository discovery in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before a repository exists
// 2. Commands that manage their own service lifecycle (serve)
// 3. Utility commands that don't touch pages (version)
type Storeless interface {
	NoStoreCommands() []string
}
