// Package versions provides the versions extension. A version is an
// independent copy of every page, folder and tab tree; editing one never
// changes another.
// Registers commands: versions [ls|clone|rename|rm|use].
package versions

import (
	"fmt"
	"io"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/format"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the versions extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "versions".
func (e *Extension) Name() string { return "versions" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the versions command and its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "versions",
		Short: "Manage documentation versions",
		Long: `List, clone, rename, delete and switch documentation versions.

  quire versions                 # list
  quire versions clone v1 v2     # copy v1 to a new version v2
  quire versions rename v2 v2.0
  quire versions use v2.0        # make v2.0 active
  quire versions rm v1           # the last version cannot be deleted`,
		Args: cobra.NoArgs,
		RunE: e.runList,
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List versions",
			Args:  cobra.NoArgs,
			RunE:  e.runList,
		},
		&cobra.Command{
			Use:   "clone <src> <dst>",
			Short: "Copy a version",
			Args:  cobra.ExactArgs(2),
			RunE: func(c *cobra.Command, args []string) error {
				err := e.svc.CloneVersion(c.Context(), args[0], args[1])
				return done("clone", err, fmt.Sprintf("Cloned %s to %s", args[0], args[1]),
					map[string]string{"from": args[0], "to": args[1]})
			},
		},
		&cobra.Command{
			Use:   "rename <old> <new>",
			Short: "Rename a version",
			Args:  cobra.ExactArgs(2),
			RunE: func(c *cobra.Command, args []string) error {
				err := e.svc.RenameVersion(c.Context(), args[0], args[1])
				return done("rename", err, fmt.Sprintf("Renamed %s to %s", args[0], args[1]),
					map[string]string{"from": args[0], "to": args[1]})
			},
		},
		&cobra.Command{
			Use:   "rm <version>",
			Short: "Delete a version and all its pages",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				err := e.svc.DeleteVersion(c.Context(), args[0])
				return done("delete", err, "Deleted version "+args[0],
					map[string]string{"deleted": args[0]})
			},
		},
		&cobra.Command{
			Use:   "use <version>",
			Short: "Make a version active",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				err := e.svc.UseVersion(c.Context(), args[0])
				return done("use", err, "Using version "+args[0],
					map[string]string{"active": args[0]})
			},
		},
	)
	return []*cobra.Command{c}
}

// MCPTools returns nil; version tools are built into internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) runList(c *cobra.Command, _ []string) error {
	vs, err := e.svc.Versions(c.Context())

	log.Event("versions:ls", "list").Author(cmd.Author()).Detail("count", len(vs)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("versions: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(vs)
	}
	return format.Versions(cmd.Out(), vs)
}

// done logs a version change and reports it.
func done(action string, err error, msg string, result map[string]string) error {
	b := log.Event("versions:"+action, action).Author(cmd.Author())
	for k, v := range result {
		b = b.Detail(k, v)
	}
	b.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("versions %s: %w", action, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	_, err = io.WriteString(cmd.Out(), msg+"\n")
	return err
}
