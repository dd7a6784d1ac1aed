// Package path builds and parses quire storage keys.
//
// Every page lives at docs/<version>/<tab>/<file>. A version is nothing more
// than the docs/<version>/ prefix, so cloning, renaming and deleting a
// version are prefix operations on the store. Two reserved names per version
// ride along with the pages:
//
//	docs/<version>/.index       slug lookup for the version
//	docs/<version>/<tab>/.nav   navigation forest of a tab
//
// File names may not start with ".", so they can never collide with these.
package path

import (
	"errors"
	"strings"
)

// ErrInvalid indicates a malformed storage key or file name.
var ErrInvalid = errors.New("invalid storage path")

const (
	Root      = "docs"
	IndexFile = ".index"
	NavFile   = ".nav"
	Ext       = ".md"
)

// Key is a parsed page key.
type Key struct {
	Version string
	Tab     string
	File    string
}

// String renders k as a storage key.
func (k Key) String() string {
	return Page(k.Version, k.Tab, k.File)
}

// Page returns the storage key of a page.
func Page(version, tab, file string) string {
	return Root + "/" + version + "/" + tab + "/" + file
}

// Nav returns the key of a tab's navigation forest.
func Nav(version, tab string) string {
	return TabPrefix(version, tab) + NavFile
}

// Index returns the key of a version's slug index.
func Index(version string) string {
	return VersionPrefix(version) + IndexFile
}

// VersionPrefix returns the prefix owning every key of version.
func VersionPrefix(version string) string {
	return Root + "/" + version + "/"
}

// TabPrefix returns the prefix owning every key of a tab in a version.
func TabPrefix(version, tab string) string {
	return VersionPrefix(version) + tab + "/"
}

// FileName is the default file name for a page slug.
func FileName(slug string) string {
	return slug + Ext
}

// Parse splits a page key. Reserved keys and keys of the wrong shape are
// rejected.
func Parse(key string) (Key, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 4 || parts[0] != Root {
		return Key{}, ErrInvalid
	}
	k := Key{Version: parts[1], Tab: parts[2], File: parts[3]}
	if k.Version == "" || k.Tab == "" || k.File == "" || Reserved(k.File) {
		return Key{}, ErrInvalid
	}
	return k, nil
}

// Reserved reports whether a final key segment is reserved for metadata.
func Reserved(name string) bool {
	return strings.HasPrefix(name, ".")
}

// NormaliseFile cleans a user-supplied file name: backslashes become
// slashes, a leading "./" or "/" is dropped, and ".md" is appended when the
// name has no extension. Names that would escape the tab directory, contain
// a separator or start with "." are rejected.
func NormaliseFile(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if name == "" || strings.Contains(name, "/") || Reserved(name) || strings.ContainsRune(name, 0) {
		return "", ErrInvalid
	}
	if !strings.Contains(name, ".") {
		name += Ext
	}
	return name, nil
}

// Strip removes the .md extension (case-insensitive) from a file name.
func Strip(file string) string {
	if len(file) > len(Ext) && strings.EqualFold(file[len(file)-len(Ext):], Ext) {
		return file[:len(file)-len(Ext)]
	}
	return file
}
