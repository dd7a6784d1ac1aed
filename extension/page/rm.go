// rm.go implements "quire rm".
//
// Deletion is permanent. A folder goes with everything beneath it, and a
// slug that does not exist is not an error.

package page

import (
	"fmt"
	"io"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <slug>...",
		Short: "Delete pages or folders",
		Long: `Delete pages or folders from the active version. Deleting a folder deletes
every page and folder beneath it. If the active page goes, another page
becomes active.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	results, err := rm.Run(c.Context(), w, e.svc, args)

	for _, r := range results {
		log.Event("page:rm", "delete").
			Author(cmd.Author()).
			Slug(r.Slug).
			Detail("count", len(r.Deleted)).
			Write(nil)
	}
	if err != nil {
		log.Event("page:rm", "delete").Author(cmd.Author()).Detail("slugs", args).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("rm: %w", err))
	}
	return cmd.PrintJSON(results)
}
