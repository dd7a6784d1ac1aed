// cat.go implements "quire cat".
//
// A terminal gets glamour rendering; a pipe gets the raw body. The -l flag
// uses colon syntax (10:20) like sed and awk.

package page

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/cat"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/markup"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newCatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "cat <slug>",
		Short: "Read a page",
		Long: `Output the body of a page.

  quire cat quick-start              # active version
  quire cat quick-start --version v1 # another version
  quire cat quick-start -n -l 10:20  # numbered lines 10 to 20`,
		Args: cobra.ExactArgs(1),
		RunE: e.runCat,
	}
	c.Flags().String(extension.FlagVersion, "", "Read from this version")
	c.Flags().BoolP(extension.FlagNumber, "n", false, "Number all output lines")
	c.Flags().StringP(extension.FlagLines, "l", "", "Line range (e.g., 10:20, 5:, :15)")
	c.Flags().Bool(extension.FlagRaw, false, "Output the body without rendering")
	return c
}

func (e *Extension) runCat(c *cobra.Command, args []string) error {
	ctx := c.Context()
	version, _ := c.Flags().GetString(extension.FlagVersion)
	lineNums, _ := c.Flags().GetBool(extension.FlagNumber)
	lineRange, _ := c.Flags().GetString(extension.FlagLines)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	opts := cat.Options{
		Version:     version,
		LineNumbers: lineNums,
	}
	if lineRange != "" {
		start, end, err := cat.ParseLineRange(lineRange)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.StartLine, opts.EndLine = start, end
	}

	s := args[0]
	var result cat.Result
	var err error

	defer func() {
		log.Event("page:cat", "read").
			Author(cmd.Author()).
			Slug(s).
			Version(result.Page.Version).
			Write(err)
	}()

	if cmd.JSON() {
		result, err = cat.Run(ctx, io.Discard, e.svc, s, opts)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", s, err))
		}
		return cmd.PrintJSON(result.Page)
	}

	// Glamour renders markdown only; HTML bodies go out as stored.
	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		var buf bytes.Buffer
		result, err = cat.Run(ctx, &buf, e.svc, s, opts)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", s, err))
		}
		if !markup.IsHTML(result.Page.Body) {
			if rendered, renderErr := glamour.Render(buf.String(), "dark"); renderErr == nil {
				fmt.Fprint(cmd.Out(), rendered)
				return nil
			}
		}
		fmt.Fprint(cmd.Out(), buf.String())
		return nil
	}

	result, err = cat.Run(ctx, cmd.Out(), e.svc, s, opts)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", s, err))
	}
	return nil
}
