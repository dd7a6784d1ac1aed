// Package all imports the built-in quire extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each registers itself via init()
	_ "github.com/jpl-au/quire/extension/core"
	_ "github.com/jpl-au/quire/extension/page"
	_ "github.com/jpl-au/quire/extension/search"
	_ "github.com/jpl-au/quire/extension/tab"
	_ "github.com/jpl-au/quire/extension/transfer"
	_ "github.com/jpl-au/quire/extension/versions"
)
