// ls.go implements "quire ls".

package page

import (
	"fmt"
	"io"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/ls"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List pages",
		Long: `List the pages of the active version in navigation order.

  quire ls                   # every page
  quire ls --tab api         # one tab
  quire ls --tree            # navigation tree of the active tab
  quire ls -l                # storage path, size and update time
  quire ls --glob '*intro*'  # pages whose slug matches
  quire ls --glob 'api/*'    # pages whose tab/slug matches`,
		Args: cobra.NoArgs,
		RunE: e.runLs,
	}
	c.Flags().StringP(extension.FlagTab, "t", "", "Only this tab")
	c.Flags().Bool(extension.FlagTree, false, "Show the navigation tree")
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format")
	c.Flags().StringP(extension.FlagGlob, "g", "", "Only pages matching a pattern")
	c.MarkFlagsMutuallyExclusive(extension.FlagTree, extension.FlagGlob)
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	opts := ls.Options{}
	opts.Tab, _ = c.Flags().GetString(extension.FlagTab)
	opts.Tree, _ = c.Flags().GetBool(extension.FlagTree)
	opts.Long, _ = c.Flags().GetBool(extension.FlagLong)
	opts.Glob, _ = c.Flags().GetString(extension.FlagGlob)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := ls.Run(c.Context(), w, e.svc, opts)

	log.Event("page:ls", "list").
		Author(cmd.Author()).
		Detail("tab", opts.Tab).
		Detail("tree", opts.Tree).
		Detail("count", len(result.Pages)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls: %w", err))
	}
	if opts.Tree {
		return cmd.PrintJSON(result.Tree)
	}
	return cmd.PrintJSON(result.Pages)
}
