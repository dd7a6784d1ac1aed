// mv.go implements "quire mv" and "quire reorder", which rearrange the
// navigation tree of a tab without touching page contents or slugs.

package page

import (
	"fmt"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/log"
	"github.com/spf13/cobra"
)

type mvResult struct {
	Slug   string `json:"slug"`
	Target string `json:"target,omitempty"`
	Root   bool   `json:"root,omitempty"`
}

func (e *Extension) newMvCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "mv <slug> [folder]",
		Short: "Move a page or folder",
		Long: `Move a page or folder under another folder of the same tab, or to the top
level with --root. It becomes the last child of its new parent.

  quire mv iterator getting-started
  quire mv iterator --root

A folder cannot be moved into itself or one of its descendants.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runMv,
	}
	c.Flags().Bool(extension.FlagRoot, false, "Move to the top level of the tab")
	return c
}

func (e *Extension) runMv(c *cobra.Command, args []string) error {
	ctx := c.Context()
	root, _ := c.Flags().GetBool(extension.FlagRoot)
	src := args[0]

	var target string
	switch {
	case root && len(args) == 2:
		return cmd.PrintJSONError(fmt.Errorf("mv %q: give a folder or --root, not both", src))
	case root:
	case len(args) == 2:
		target = args[1]
	default:
		return cmd.PrintJSONError(fmt.Errorf("mv %q: a target folder or --root is required", src))
	}

	var err error
	if root {
		err = e.svc.MoveToRoot(ctx, src)
	} else {
		err = e.svc.Move(ctx, src, target)
	}

	log.Event("page:mv", "move").
		Author(cmd.Author()).
		Slug(src).
		Detail("target", target).
		Detail("root", root).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("mv %q: %w", src, err))
	}
	if !cmd.JSON() {
		if root {
			fmt.Fprintf(cmd.Out(), "Moved %s to the top level\n", src)
		} else {
			fmt.Fprintf(cmd.Out(), "Moved %s into %s\n", src, target)
		}
	}
	return cmd.PrintJSON(mvResult{Slug: src, Target: target, Root: root})
}

func (e *Extension) newReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <slug>...",
		Short: "Reorder siblings",
		Long: `Set the order of one sibling group. The slugs must be exactly the
children of one folder (or the top level of one tab), in their new order.

  quire reorder quick-start intro`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			err := e.svc.Reorder(c.Context(), args)

			log.Event("page:reorder", "reorder").
				Author(cmd.Author()).
				Detail("slugs", args).
				Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("reorder: %w", err))
			}
			if !cmd.JSON() {
				fmt.Fprintf(cmd.Out(), "Reordered %d items\n", len(args))
			}
			return cmd.PrintJSON(map[string][]string{"order": args})
		},
	}
}
