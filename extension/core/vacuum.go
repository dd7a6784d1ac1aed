// vacuum.go implements "quire vacuum".
//
// Deleting a version or tab frees pages inside the database file; vacuum
// rebuilds the file so the space returns to the filesystem.

package core

import (
	"fmt"
	"io"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/vacuum"
	"github.com/spf13/cobra"
)

func (e *Extension) newVacuumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vacuum",
		Short: "Reclaim space in the database file",
		Long: `Rebuild the database file to reclaim space after deleting versions,
tabs or many pages. Page contents are unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			w := cmd.Out()
			if cmd.JSON() {
				w = io.Discard
			}
			r, err := vacuum.Run(c.Context(), w, e.svc)

			log.Event("core:vacuum", "vacuum").
				Author(cmd.Author()).
				Detail("before", r.Before).
				Detail("after", r.After).
				Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
			}
			return cmd.PrintJSON(r)
		},
	}
}
