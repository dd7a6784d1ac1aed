// flags.go defines constants for CLI flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands, used with cobra's Flags().Type() and
// GetType() methods.
const (
	// Boolean flags

	FlagDryRun        = "dry-run"        // Preview without making changes
	FlagEmpty         = "empty"          // Initialise without starter pages
	FlagFolder        = "folder"         // Create a folder instead of a page
	FlagIgnoreCase    = "ignore-case"    // Case-insensitive matching
	FlagIncludeHidden = "include-hidden" // Include hidden files/directories
	FlagLocal         = "local"          // Use local scope (gitignored)
	FlagLong          = "long"           // Long format output
	FlagNumber        = "number"         // Number output lines
	FlagRaw           = "raw"            // Raw output without formatting
	FlagRoot          = "root"           // Move to the top level of a tab
	FlagShare         = "share"          // Mark as shared (committed)
	FlagTree          = "tree"           // Tree view output

	// String flags

	FlagExpr    = "expr"    // Substitution expression (e.g., "s/old/new/g")
	FlagFile    = "file"    // Storage file name of a new page
	FlagGlob    = "glob"    // Page name pattern (e.g., "api/*")
	FlagIcon    = "icon"    // Tab icon
	FlagLines   = "lines"   // Line range specification (e.g., "10:20")
	FlagNew     = "new"     // New text for replacement
	FlagOld     = "old"     // Old text to find
	FlagParent  = "parent"  // Parent folder slug
	FlagSlug    = "slug"    // Explicit slug of a new page
	FlagTab     = "tab"     // Tab id
	FlagTitle   = "title"   // Page title
	FlagVersion = "version" // Version name

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
