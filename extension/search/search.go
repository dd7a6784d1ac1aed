// Package search provides the search extension: full-text search over the
// titles and bodies of the active version.
// Registers commands: search.
package search

import (
	"fmt"
	"strings"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/format"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/search"
	"github.com/jpl-au/quire/internal/service"
	"github.com/jpl-au/quire/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "search <text>...",
		Short: "Search pages",
		Long: `Search the titles and bodies of the active version. Markdown and HTML are
stripped before matching; title matches rank above body matches.

  quire search iterator
  quire search rate limit --tab api
  quire search automation --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().StringP(extension.FlagTab, "t", "", "Only this tab")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum results (default: search.max_results)")
	return []*cobra.Command{c}
}

// MCPTools returns nil; quire_search is built into internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	var opts workspace.SearchOptions
	opts.Tab, _ = c.Flags().GetString(extension.FlagTab)
	opts.Limit, _ = c.Flags().GetInt(extension.FlagLimit)
	if opts.Limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("limit must be >= 0, got %d", opts.Limit))
	}

	results, err := e.svc.Search(c.Context(), text, opts)

	log.Event("search:search", "search").
		Author(cmd.Author()).
		Detail("query", text).
		Detail("tab", opts.Tab).
		Detail("count", len(results)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", text, err))
	}
	if cmd.JSON() {
		if results == nil {
			results = []search.Result{}
		}
		return cmd.PrintJSON(results)
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.Out(), "No matches")
		return nil
	}
	return format.SearchResults(cmd.Out(), results)
}
