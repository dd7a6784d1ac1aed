// db.go implements "quire db" for database management.
//
// db only edits .quire/.gitignore, so it never opens a database and works
// on one that is locked or damaged.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/quire/cmd"
	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/repo"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage databases",
		Long: `List databases or change their local/shared status.

  quire db                    # list all databases
  quire db --local            # mark the default database as local
  quire db notes --local      # mark quire-notes.db as local
  quire db notes --share      # mark as shared
  quire db --dir /path        # list databases in another project

Local databases are not committed. Shared databases are.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark database as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)
	dir := cmd.Dir()

	name := cmd.DB()
	if len(args) > 0 {
		name = args[0]
	}

	quireDir, err := findQuireDir(dir, name)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db: %w", err))
	}

	if len(args) == 0 && !local && !share {
		dbs, err := repo.ListDBs(quireDir)

		log.Event("core:db", "list").
			Author(cmd.Author()).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		if cmd.JSON() {
			if dbs == nil {
				dbs = []repo.DBInfo{}
			}
			return cmd.PrintJSON(dbs)
		}
		if len(dbs) == 0 {
			fmt.Fprintln(cmd.Out(), "No databases found")
			return nil
		}
		for _, d := range dbs {
			fmt.Fprintf(cmd.Out(), "%s  %s\n", d.File, status(d.Local))
		}
		return nil
	}

	if local || share {
		err := repo.SetLocal(quireDir, name, local)

		log.Event("core:db", "set_local").
			Author(cmd.Author()).
			Detail("db", name).
			Detail("dir", dir).
			Detail("local", local).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db %q: %w", name, err))
		}
		return printStatus(name, local)
	}

	isLocal, err := repo.IsLocal(quireDir, name)

	log.Event("core:db", "status").
		Author(cmd.Author()).
		Detail("db", name).
		Detail("dir", dir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
	}
	return printStatus(name, isLocal)
}

// findQuireDir resolves the .quire directory: dir/.quire when --dir is
// given, otherwise the nearest one holding the named database.
func findQuireDir(dir, name string) (string, error) {
	if dir != "" {
		return filepath.Join(dir, repo.Dir), nil
	}
	return repo.DiscoverDir(name)
}

func status(local bool) string {
	if local {
		return "local"
	}
	return "shared"
}

func printStatus(name string, local bool) error {
	file := repo.DBName(name)
	if cmd.JSON() {
		return cmd.PrintJSON(repo.DBInfo{Name: name, File: file, Local: local})
	}
	fmt.Fprintf(cmd.Out(), "%s: %s\n", file, status(local))
	return nil
}
