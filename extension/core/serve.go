// serve.go implements "quire serve", the MCP server over stdio.
//
// serve blocks until the client disconnects, so it opens the repository
// itself rather than using the service managed by the root command. It also
// starts without a repository; quire_init creates one.

package core

import (
	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for editors and agents.

  quire serve              # serve .quire/quire.db
  quire serve --db docs    # serve .quire/quire-docs.db`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(mcp.Options{
		Dir:   cmd.Dir(),
		DB:    cmd.DB(),
		Tools: extension.Tools(),
	})
}
