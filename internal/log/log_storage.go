// log_storage.go persists audit entries to SQLite.
//
// Errors while logging are reported on stderr and otherwise ignored: a page
// write succeeds even if it cannot be recorded.

package log

import (
	"database/sql"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/jpl-au/quire/internal/store"
)

//go:embed sql/*.sql
var schema embed.FS

// Logger writes audit entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	project string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, project, source, author, action, slug, version, path, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.project, e.Source, nilIfEmpty(e.Author), e.Action,
		nilIfEmpty(e.Slug), nilIfEmpty(e.Version), nilIfEmpty(e.Path),
		success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "quire: audit log write failed: %v\n", err)
	}
}

// dbPathFunc returns the database path. Tests point it at a temp directory.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".quire", "log", "quire-log.db")
	}
	return filepath.Join(home, ".quire", "log", "quire-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash turns a project directory into a short stable identifier so logs can
// be grouped by project without storing paths.
func hash(s string) string {
	h, err := blake2b.New(8, nil) // 64-bit = 16 hex chars
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

func migrate(db *sql.DB) error {
	return store.ExecEmbedded(db, schema, "sql")
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
