// new.go implements "quire new", creating a page or folder.

package page

import (
	"fmt"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/workspace"
	"github.com/spf13/cobra"
)

type newResult struct {
	Slug string   `json:"slug"`
	Kind nav.Kind `json:"kind"`
	Tab  string   `json:"tab"`
}

func (e *Extension) newNewCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a page or folder",
		Long: `Create a page or folder in the active version.

  quire new "Webhooks" --tab api --parent api-guide
  quire new "Guides" --folder
  echo "# Webhooks" | quire new "Webhooks"    # body from stdin

The slug is generated from the title unless --slug is given; a taken
generated slug gets a numeric suffix. New pages start from the configured
template (pages.template) unless a body is piped in or given with -f.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runNew,
	}
	c.Flags().StringP(extension.FlagTab, "t", "", "Tab (default: active tab)")
	c.Flags().StringP(extension.FlagParent, "p", "", "Parent folder slug")
	c.Flags().Bool(extension.FlagFolder, false, "Create a folder")
	c.Flags().String(extension.FlagSlug, "", "Explicit slug")
	c.Flags().String(extension.FlagVersion, "", "Version (default: active version)")
	c.Flags().StringP(extension.FlagFile, "f", "", "Read the body from a file")
	return c
}

func (e *Extension) runNew(c *cobra.Command, args []string) error {
	ctx := c.Context()
	tab, _ := c.Flags().GetString(extension.FlagTab)
	parent, _ := c.Flags().GetString(extension.FlagParent)
	folder, _ := c.Flags().GetBool(extension.FlagFolder)
	wantSlug, _ := c.Flags().GetString(extension.FlagSlug)
	version, _ := c.Flags().GetString(extension.FlagVersion)
	file, _ := c.Flags().GetString(extension.FlagFile)

	if tab == "" {
		st, err := e.svc.State(ctx)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		tab = st.Tab
	}

	req := workspace.CreateRequest{
		Title:   args[0],
		Tab:     tab,
		Version: version,
		Parent:  parent,
		Kind:    nav.KindPage,
		Slug:    wantSlug,
	}
	if folder {
		if file != "" {
			return cmd.PrintJSONError(fmt.Errorf("a folder has no body: --file cannot be used with --folder"))
		}
		req.Kind = nav.KindFolder
	} else if file != "" || stdinPiped() {
		body, err := readBody(nil, file)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		if body != "" {
			req.Body = &body
		}
	}

	s, err := e.svc.Create(ctx, req)

	log.Event("page:new", "create").
		Author(cmd.Author()).
		Slug(s).
		Version(version).
		Detail("tab", tab).
		Detail("parent", parent).
		Detail("kind", string(req.Kind)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("new %q: %w", args[0], err))
	}
	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Created %s %s\n", req.Kind, s)
	}
	return cmd.PrintJSON(newResult{Slug: s, Kind: req.Kind, Tab: tab})
}
