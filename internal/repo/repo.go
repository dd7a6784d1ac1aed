// Package repo finds and creates quire repositories.
//
// A quire repository is a .quire directory holding the quire.db database and
// an optional config.yaml. Discovery works like git's: start in the current
// directory and walk up until a .quire directory with a database is found or
// the filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/quire/internal/store"
)

const (
	// Dir is the repository directory name.
	Dir = ".quire"
	// DBFile is the database filename inside Dir.
	DBFile = "quire.db"
)

// DBName returns the database filename for a named database. The empty name
// is the default quire.db; "docs" is quire-docs.db.
func DBName(name string) string {
	if name == "" {
		return DBFile
	}
	return "quire-" + name + ".db"
}

// ErrNotInitialised is returned when no repository is found.
var ErrNotInitialised = errors.New("quire not initialised (run 'quire init')")

// InitOptions controls Init.
type InitOptions struct {
	Force bool   // replace an existing database
	Local bool   // keep the database out of git
	DB    string // database name, see DBName
}

// Init creates dir/.quire and an empty database with the schema applied, and
// returns the database path. dir defaults to the current directory. Content
// (versions, tabs, pages) is not written here.
func Init(dir string, opts InitOptions) (string, error) {
	if dir == "" {
		dir = "."
	}
	quireDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(quireDir, DBName(opts.DB))

	if _, err := os.Stat(dbPath); err == nil {
		if !opts.Force {
			return "", fmt.Errorf("%s already exists (use --force to reinitialise)", dbPath)
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
				return "", fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(quireDir, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open store: %w", err)
	}
	defer s.Close()
	if err := s.Init(); err != nil {
		return "", fmt.Errorf("init store: %w", err)
	}

	// Written once; later inits keep any edits.
	gitignore := filepath.Join(quireDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# quire - the database is the source of truth; local config and exports are not
config.yaml
export/
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return "", fmt.Errorf("write gitignore: %w", err)
		}
	}

	if err := SetLocal(quireDir, opts.DB, opts.Local); err != nil {
		return "", fmt.Errorf("update gitignore: %w", err)
	}
	return dbPath, nil
}

// Discover walks up from the working directory to the nearest database named
// db (see DBName) and returns its path.
func Discover(db string) (string, error) {
	dir, err := DiscoverDir(db)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DBName(db)), nil
}

// DiscoverDir walks up from the working directory to the nearest .quire
// directory that holds the database named db.
func DiscoverDir(db string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		quireDir := filepath.Join(dir, Dir)
		if _, err := os.Stat(filepath.Join(quireDir, DBName(db))); err == nil {
			return quireDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo describes one database in a .quire directory.
type DBInfo struct {
	Name  string `json:"name"` // "" for the default database
	File  string `json:"file"`
	Local bool   `json:"local"`
}

// ListDBs returns the databases in the .quire directory dir, sorted by file
// name.
func ListDBs(dir string) ([]DBInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dbs []DBInfo
	for _, e := range entries {
		name, ok := dbNameOf(e.Name())
		if e.IsDir() || !ok {
			continue
		}
		local, err := IsLocal(dir, name)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		dbs = append(dbs, DBInfo{Name: name, File: e.Name(), Local: local})
	}
	return dbs, nil
}

// dbNameOf is the inverse of DBName.
func dbNameOf(file string) (string, bool) {
	if file == DBFile {
		return "", true
	}
	name, ok := strings.CutPrefix(file, "quire-")
	if !ok {
		return "", false
	}
	name, ok = strings.CutSuffix(name, ".db")
	return name, ok && name != ""
}
