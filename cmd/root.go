/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// PersistentPreRunE opens the repository lazily: only commands that need it
// trigger extension init, so bootstrap commands (init, guide, config) work
// before a repository exists. noStoreCommands controls which commands skip it.

package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/jpl-au/quire/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quire",
	Short: "Versioned, tabbed documentation workspace",
	Long: `A documentation workspace: pages addressed by slug, arranged in folders
under tabs, with independent versions, full-text search and an MCP server for
editors and agents.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if author == "" {
			author = detectAuthor()
		}

		cmdName := topLevelCmdName(cmd)
		if requiresAuthor(cmd) && author == "" {
			return fmt.Errorf("author not configured (checked .quire/config.yaml and ~/.quire/config.yaml)\n\nRun: quire config author.name \"Your Name\"\n\nOr pass --author for a single command.")
		}

		if !noStoreCommands[cmdName] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of
// root). For "quire tab add Guides", returns "tab".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// requiresAuthor reports whether cmd changes repository content.
func requiresAuthor(cmd *cobra.Command) bool {
	path := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
	return authorRequiredCommands[path]
}

// Execute opens the audit log, registers extensions, runs the command and
// closes the repository. Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}

	if err != nil {
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
