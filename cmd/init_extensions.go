/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but aren't initialised until the first
// command that needs the repository runs. The service is created once and
// shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/config"
	"github.com/jpl-au/quire/internal/document"
	"github.com/jpl-au/quire/internal/log"
)

// noStoreCommands lists commands that bypass automatic repository opening.
// Built from the bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// authorRequiredCommands lists commands that change pages, versions or tabs,
// by path below the root ("versions clone").
var authorRequiredCommands = map[string]bool{
	"new":             true,
	"write":           true,
	"edit":            true,
	"rm":              true,
	"mv":              true,
	"reorder":         true,
	"import":          true,
	"versions clone":  true,
	"versions rename": true,
	"versions rm":     true,
	"tab add":         true,
	"tab edit":        true,
	"tab rm":          true,
}

// buildNoStoreCommands creates the set of commands that skip opening the
// repository: bootstrap commands that must work before "quire init", plus
// whatever extensions declare through extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *document.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the repository once per process and injects it into
// every Initializable extension.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := document.New(document.Options{Dir: Dir(), DB: DB()})
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		log.SetProject(svc.Dir())

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, cfg)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		noStoreCommands = buildNoStoreCommands()
	})
}
