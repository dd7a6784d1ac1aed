// init.go implements "quire init".
//
// Init creates the repository and its starting content, never config; that
// is managed separately via "quire config", as with git.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/document"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new quire repository",
		Long: `Creates .quire/quire.db in the current directory with version v1, the
program, api and app tabs and a few starter pages.

  quire init                 # seeded workspace
  quire init --empty         # version and tabs, no pages
  quire init --db notes      # creates .quire/quire-notes.db
  quire init --dir /path     # creates /path/.quire/quire.db
  quire init --local         # database is not committed

Use --force to replace an existing database.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	c.Flags().Bool(extension.FlagEmpty, false, "Create no starter pages")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	empty, _ := c.Flags().GetBool(extension.FlagEmpty)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits the current project's .gitignore; with --dir the
	// database lives somewhere else.
	if local && dir != "" {
		return cmd.PrintJSONError(fmt.Errorf("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	err := document.Init(c.Context(), dir, document.InitOptions{
		Force: cmd.Force(),
		Local: local,
		Empty: empty,
		DB:    db,
	})

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Detail("empty", empty).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := filepath.Join(dir, repo.Dir, repo.DBName(db))
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"db": loc})
	}
	fmt.Fprintf(cmd.Out(), "Initialised quire repository in %s\n", loc)
	return nil
}
