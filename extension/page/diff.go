// diff.go implements "quire diff", comparing a page across versions.

package page

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/diff"
	"github.com/jpl-au/quire/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <slug> <from> [to]",
		Short: "Compare a page between versions",
		Long: `Show how a page differs between two versions. <to> defaults to the
active version.

  quire diff quick-start v1 v2
  quire diff quick-start v1`,
		Args: cobra.RangeArgs(2, 3),
		RunE: e.runDiff,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output without colour")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	s := args[0]
	opts := diff.Options{From: args[1]}
	if len(args) == 3 {
		opts.To = args[2]
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	colour := !raw && term.IsTerminal(int(os.Stdout.Fd()))

	result, err := diff.Run(c.Context(), w, e.svc, s, opts, colour)

	log.Event("page:diff", "diff").
		Author(cmd.Author()).
		Slug(s).
		Detail("from", opts.From).
		Detail("to", opts.To).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff %q: %w", s, err))
	}
	return cmd.PrintJSON(result)
}
