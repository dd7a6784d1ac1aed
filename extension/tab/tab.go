// Package tab provides the tab extension. Tabs are the top-level sections
// of the documentation (program, api, app, ...); every version has its own
// navigation tree per tab.
// Registers commands: tab [ls|add|edit|rm|use].
package tab

import (
	"fmt"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/format"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/service"
	"github.com/jpl-au/quire/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tab extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "tab".
func (e *Extension) Name() string { return "tab" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the tab command and its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "tab",
		Short: "Manage tabs",
		Long: `List, add, edit, remove and switch tabs.

  quire tab                          # list
  quire tab add "Guides" --icon 📘   # custom tab, id generated
  quire tab edit <id> "How-to"       # relabel
  quire tab use api                  # make api active
  quire tab rm <id>                  # removes its pages in every version`,
		Args: cobra.NoArgs,
		RunE: e.runList,
	}

	add := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a custom tab",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runAdd,
	}
	add.Flags().String(extension.FlagIcon, "", "Tab icon")

	edit := &cobra.Command{
		Use:   "edit <id> <label>",
		Short: "Change a tab's label or icon",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runEdit,
	}
	edit.Flags().String(extension.FlagIcon, "", "Tab icon (default: unchanged)")

	c.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List tabs",
			Args:  cobra.NoArgs,
			RunE:  e.runList,
		},
		add,
		edit,
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Remove a tab and its pages in every version",
			Args:  cobra.ExactArgs(1),
			RunE:  e.runRm,
		},
		&cobra.Command{
			Use:   "use <id>",
			Short: "Make a tab active",
			Args:  cobra.ExactArgs(1),
			RunE:  e.runUse,
		},
	)
	return []*cobra.Command{c}
}

// MCPTools returns nil; tab tools are built into internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

type tabList struct {
	Active string          `json:"active"`
	Tabs   []workspace.Tab `json:"tabs"`
}

func (e *Extension) runList(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	tabs, err := e.svc.Tabs(ctx)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tabs: %w", err))
	}
	st, err := e.svc.State(ctx)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tabs: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(tabList{Active: st.Tab, Tabs: tabs})
	}
	return format.Tabs(cmd.Out(), tabs, st.Tab)
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	icon, _ := c.Flags().GetString(extension.FlagIcon)
	t, err := e.svc.AddTab(c.Context(), args[0], icon)

	log.Event("tab:add", "add").
		Author(cmd.Author()).
		Detail("id", t.ID).
		Detail("label", args[0]).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tab add: %w", err))
	}
	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Added tab %s (%s)\n", t.ID, t.Label)
	}
	return cmd.PrintJSON(t)
}

func (e *Extension) runEdit(c *cobra.Command, args []string) error {
	id := args[0]
	icon, _ := c.Flags().GetString(extension.FlagIcon)

	t, err := e.svc.UpdateTab(c.Context(), id, args[1], icon)

	log.Event("tab:edit", "update").
		Author(cmd.Author()).
		Detail("id", id).
		Detail("label", args[1]).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tab edit %q: %w", id, err))
	}
	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Updated tab %s (%s)\n", t.ID, t.Label)
	}
	return cmd.PrintJSON(t)
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	err := e.svc.RemoveTab(c.Context(), args[0])

	log.Event("tab:rm", "remove").Author(cmd.Author()).Detail("id", args[0]).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tab rm %q: %w", args[0], err))
	}
	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Removed tab %s\n", args[0])
	}
	return cmd.PrintJSON(map[string]string{"removed": args[0]})
}

func (e *Extension) runUse(c *cobra.Command, args []string) error {
	err := e.svc.UseTab(c.Context(), args[0])

	log.Event("tab:use", "use").Author(cmd.Author()).Detail("id", args[0]).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tab use %q: %w", args[0], err))
	}
	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Using tab %s\n", args[0])
	}
	return cmd.PrintJSON(map[string]string{"active": args[0]})
}
