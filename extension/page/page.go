// Package page provides the page extension: reading, writing and arranging
// pages and folders in the active version.
// Registers commands: cat, new, write, edit, rm, mv, reorder, ls, diff,
// breadcrumb, open, status.
package page

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the page extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "page".
func (e *Extension) Name() string { return "page" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the page commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newCatCmd(),
		e.newNewCmd(),
		e.newWriteCmd(),
		e.newEditCmd(),
		e.newRmCmd(),
		e.newMvCmd(),
		e.newReorderCmd(),
		e.newLsCmd(),
		e.newDiffCmd(),
		e.newBreadcrumbCmd(),
		e.newOpenCmd(),
		e.newStatusCmd(),
	}
}

// MCPTools returns quire_edit. The other page tools are built into
// internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{editTool()}
}

// stdinPiped reports whether stdin is a pipe or file rather than a terminal
// or /dev/null.
func stdinPiped() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice == 0
}

// readBody returns page content from, in order: an argument, a file named
// by -f, or stdin.
func readBody(args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read file %q: %w", file, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}
