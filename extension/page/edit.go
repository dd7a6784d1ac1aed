// edit.go implements "quire edit": replace text or a line range in a page
// without rewriting the whole body.

package page

import (
	"fmt"
	"io"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/cat"
	"github.com/jpl-au/quire/internal/edit"
	"github.com/jpl-au/quire/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newEditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "edit <slug> [replacement]",
		Short: "Edit part of a page",
		Long: `Replace the first occurrence of text, or a range of lines, in a page.

  quire edit iterator --old "1000 items" --new "500 items"
  quire edit iterator -e 's/items/entries/g'
  quire edit iterator -l 3:4 "New paragraph."
  echo "New paragraph." | quire edit iterator -l 3:4`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runEdit,
	}
	c.Flags().String(extension.FlagOld, "", "Text to find")
	c.Flags().String(extension.FlagNew, "", "Replacement text")
	c.Flags().BoolP(extension.FlagIgnoreCase, "i", false, "Case-insensitive match")
	c.Flags().StringP(extension.FlagLines, "l", "", "Line range to replace (e.g., 10:20)")
	c.Flags().StringP(extension.FlagExpr, "e", "", "Substitution expression, s/old/new/[gi]")
	c.MarkFlagsMutuallyExclusive(extension.FlagOld, extension.FlagLines, extension.FlagExpr)
	return c
}

func (e *Extension) runEdit(c *cobra.Command, args []string) error {
	ctx := c.Context()
	s := args[0]
	old, _ := c.Flags().GetString(extension.FlagOld)
	newStr, _ := c.Flags().GetString(extension.FlagNew)
	ci, _ := c.Flags().GetBool(extension.FlagIgnoreCase)
	lines, _ := c.Flags().GetString(extension.FlagLines)
	expr, _ := c.Flags().GetString(extension.FlagExpr)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	var result edit.Result
	var err error
	switch {
	case lines != "":
		start, end, perr := cat.ParseLineRange(lines)
		if perr != nil {
			return cmd.PrintJSONError(perr)
		}
		replacement, rerr := readBody(args[1:], "")
		if rerr != nil {
			return cmd.PrintJSONError(rerr)
		}
		result, err = edit.RunLineRange(ctx, w, e.svc, s, replacement, edit.LineRangeOptions{Start: start, End: end})
	case expr != "":
		opts, perr := edit.ParseExpr(expr)
		if perr != nil {
			return cmd.PrintJSONError(perr)
		}
		result, err = edit.Run(ctx, w, e.svc, s, opts)
	case old != "":
		result, err = edit.Run(ctx, w, e.svc, s, edit.Options{Old: old, New: newStr, CaseInsensitive: ci})
	default:
		return cmd.PrintJSONError(fmt.Errorf("edit %q: --old, --expr or --lines is required", s))
	}

	log.Event("page:edit", "edit").
		Author(cmd.Author()).
		Slug(s).
		Version(result.Version).
		Detail("lines", lines).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("edit %q: %w", s, err))
	}
	return cmd.PrintJSON(result)
}
