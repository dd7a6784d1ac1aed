// write.go implements "quire write", replacing a page body.
//
// Content comes from an argument, a file (-f) or stdin, in that order.

package page

import (
	"fmt"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/log"
	"github.com/spf13/cobra"
)

type writeResult struct {
	Slug    string `json:"slug"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

func (e *Extension) newWriteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "write <slug> [content]",
		Short: "Write a page",
		Long: `Replace the body of an existing page. The slug and storage path never
change; --title renames the page as well.

  quire write quick-start "# Quick start"
  quire write quick-start -f quick-start.md
  cat quick-start.md | quire write quick-start`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runWrite,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read content from file")
	c.Flags().String(extension.FlagTitle, "", "New title")
	return c
}

func (e *Extension) runWrite(c *cobra.Command, args []string) error {
	ctx := c.Context()
	s := args[0]
	file, _ := c.Flags().GetString(extension.FlagFile)

	body, err := readBody(args[1:], file)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	var title *string
	if c.Flags().Changed(extension.FlagTitle) {
		t, _ := c.Flags().GetString(extension.FlagTitle)
		title = &t
	}

	p, err := e.svc.Update(ctx, s, body, title)

	log.Event("page:write", "write").
		Author(cmd.Author()).
		Slug(s).
		Version(p.Version).
		Detail("retitle", title != nil).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("write %q: %w", s, err))
	}

	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Wrote %s\n", s)
	}
	return cmd.PrintJSON(writeResult{Slug: p.Slug, Version: p.Version, Path: p.Path})
}
