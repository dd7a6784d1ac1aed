// Package log provides audit logging for quire operations.
// Logs are stored in ~/.quire/log/quire-log.db and record every CLI command
// and MCP tool invocation across projects.
//
// # Fluent API
//
// Build an entry with Event, chain the fields that apply, then Write:
//
//	log.Event("page:cat", "read").
//		Author(cmd.Author()).
//		Slug(s).
//		Version(p.Version).
//		Write(err)
//
//	log.Event("search:search", "search").
//		Author(cmd.Author()).
//		Detail("query", query).
//		Detail("count", len(results)).
//		Write(err)
//
// The source is "{extension}:{command}" for CLI commands or "mcp:{tool}" for
// MCP tools, e.g. "page:new", "versions:clone", "mcp:quire_write".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is a single audit record.
type Entry struct {
	Source  string // e.g. "page:cat", "mcp:quire_read"
	Author  string
	Action  string // read, write, create, delete, move, clone, ...
	Slug    string // page or folder the operation targeted
	Version string // documentation version it ran against
	Path    string // resolved storage key, when there is one

	Start int64
	End   int64

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs an Entry. Create with [Event] and finish with
// [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts an entry for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g. "page:cat", "tab:add")
//   - MCP tools: "mcp:{tool}" (e.g. "mcp:quire_search")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation. CLI commands pass the configured
// author; MCP tools pass "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Slug sets the page or folder the operation targeted.
func (b *Builder) Slug(slug string) *Builder {
	b.entry.Slug = slug
	return b
}

// Version sets the documentation version the operation ran against.
func (b *Builder) Version(version string) *Builder {
	b.entry.Version = version
	return b
}

// Path sets the storage key the operation resolved to.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Detail adds operation-specific data such as a query, a result count or a
// move target. Can be called repeatedly.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, deriving success from err.
//
//	p, err := svc.Read(ctx, slug)
//	log.Event("page:cat", "read").Slug(slug).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call more than once. Callers
// may ignore the error; logging is best effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent entries. dir is
// the absolute path of the .quire directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. A no-op when the logger is not open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
