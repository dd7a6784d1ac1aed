// nav.go implements the commands that read or change the editor selection:
// breadcrumb, open and status.

package page

import (
	"fmt"
	"io"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/internal/format"
	"github.com/jpl-au/quire/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newBreadcrumbCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breadcrumb <slug>",
		Short: "Show the path from the tab root to a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			items, err := e.svc.Breadcrumb(c.Context(), args[0])

			log.Event("page:breadcrumb", "read").Author(cmd.Author()).Slug(args[0]).Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("breadcrumb %q: %w", args[0], err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(items)
			}
			return format.Breadcrumb(cmd.Out(), items)
		},
	}
}

func (e *Extension) newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <slug>",
		Short: "Make a page the active page",
		Long: `Select a page as the editor would. The active tab follows the page. A slug
with no page shows a placeholder and leaves the selection unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, err := e.svc.Select(c.Context(), args[0])

			log.Event("page:open", "select").
				Author(cmd.Author()).
				Slug(args[0]).
				Version(p.Version).
				Detail("placeholder", p.Placeholder).
				Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("open %q: %w", args[0], err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(p)
			}
			if p.Placeholder {
				fmt.Fprintf(cmd.Out(), "%s: %s\n", p.Title, p.Slug)
				return nil
			}
			fmt.Fprintf(cmd.Out(), "Opened %s (%s)\n", p.Slug, p.Title)
			return nil
		},
	}
}

func (e *Extension) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active version, tab and page",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			st, err := e.svc.State(c.Context())
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("status: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(st)
			}
			return writeState(cmd.Out(), st.Version, st.Tab, st.Page)
		},
	}
}

func writeState(w io.Writer, version, tab, page string) error {
	_, err := fmt.Fprintf(w, "version: %s\ntab:     %s\npage:    %s\n", version, tab, page)
	return err
}
