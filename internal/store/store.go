// Package store defines keyed persistence for quire and the Store interface.
// Implementations handle the actual storage while consumers depend only on
// the interface, so the workspace runs unchanged against SQLite or memory.
package store

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested key does not exist.
	ErrNotFound = errors.New("key not found")
	// ErrAlreadyExists prevents a bulk copy or move from overwriting keys
	// under the destination prefix.
	ErrAlreadyExists = errors.New("key already exists")
	// ErrInvalidPrefix is returned when a bulk operation is given an empty
	// prefix or source and destination prefixes that overlap.
	ErrInvalidPrefix = errors.New("invalid prefix")
)

// Entry is a single stored value.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt int64 // Unix timestamp of the last write
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// checkPrefixes validates the prefixes of a bulk copy or move. Overlapping
// prefixes would make the operation read its own output.
func checkPrefixes(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPrefix
	}
	if strings.HasPrefix(src, dst) || strings.HasPrefix(dst, src) {
		return ErrInvalidPrefix
	}
	return nil
}
