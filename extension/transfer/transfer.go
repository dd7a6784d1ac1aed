// Package transfer provides the transfer extension, moving pages between
// the repository and plain markdown files on disk.
// Registers commands: export, import.
package transfer

import (
	"fmt"
	"io"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/exporter"
	"github.com/jpl-au/quire/internal/importer"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the transfer extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "transfer".
func (e *Extension) Name() string { return "transfer" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns export and import.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newExportCmd(),
		e.newImportCmd(),
	}
}

// MCPTools returns nil; quire_export and quire_import are built into
// internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// --- export command ---

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <dir>",
		Short: "Export a version to markdown files",
		Long: `Write every page of a version to <dir>/<version>/<tab>/<file>.

Each file starts with YAML front matter holding the title and slug, so an
export can be imported again. HTML bodies are converted to markdown unless
--raw is given, which also omits the front matter.

  quire export ./site
  quire export ./site --version v1 --force`,
		Args: cobra.ExactArgs(1),
		RunE: e.runExport,
	}
	c.Flags().String(extension.FlagVersion, "", "Version to export (default: active)")
	c.Flags().Bool(extension.FlagRaw, false, "Write bodies exactly as stored")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst := args[0]
	opts := exporter.Options{Force: cmd.Force()}
	opts.Version, _ = c.Flags().GetString(extension.FlagVersion)
	opts.Raw, _ = c.Flags().GetBool(extension.FlagRaw)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := exporter.Run(c.Context(), w, e.svc, dst, opts)

	log.Event("transfer:export", "export").
		Author(cmd.Author()).
		Version(result.Version).
		Detail("dest", dst).
		Detail("count", result.Exported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export to %q: %w", dst, err))
	}
	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "\nExported %d page(s) from %s\n", result.Exported, result.Version)
	}
	return cmd.PrintJSON(result)
}

// --- import command ---

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <path>",
		Short: "Import markdown files into a tab",
		Long: `Import a markdown file, or a directory of them, into a tab of the active
version. Subdirectories become folders. Front matter written by export
restores the title and slug; otherwise the first heading or the file name
becomes the title.

  quire import ./notes --tab guides
  quire import ./notes --tab guides --parent getting-started
  quire import ./notes --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().StringP(extension.FlagTab, "t", "", "Target tab (default: active tab)")
	c.Flags().StringP(extension.FlagParent, "p", "", "Folder to import under")
	c.Flags().String(extension.FlagVersion, "", "Target version (default: active)")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	c.Flags().BoolP(extension.FlagIncludeHidden, "H", false, "Include hidden files/dirs")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	ctx := c.Context()
	src := args[0]
	var opts importer.Options
	opts.Tab, _ = c.Flags().GetString(extension.FlagTab)
	opts.Parent, _ = c.Flags().GetString(extension.FlagParent)
	opts.Version, _ = c.Flags().GetString(extension.FlagVersion)
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	opts.Hidden, _ = c.Flags().GetBool(extension.FlagIncludeHidden)

	if opts.Tab == "" {
		st, err := e.svc.State(ctx)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.Tab = st.Tab
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := importer.Run(ctx, w, e.svc, src, opts)

	log.Event("transfer:import", "import").
		Author(cmd.Author()).
		Version(opts.Version).
		Detail("source", src).
		Detail("tab", opts.Tab).
		Detail("dry_run", opts.DryRun).
		Detail("count", result.Imported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}
	if cmd.JSON() {
		if result.Slugs == nil {
			result.Slugs = []string{}
		}
		return cmd.PrintJSON(result)
	}
	switch {
	case result.Imported == 0 && result.Folders == 0 && !opts.DryRun:
		fmt.Fprintf(cmd.Out(), "No markdown files found in %q (expected .md files)\n", src)
	case !opts.DryRun:
		fmt.Fprintf(cmd.Out(), "\nImported %d page(s) and %d folder(s) into %s\n", result.Imported, result.Folders, opts.Tab)
	}
	return nil
}
