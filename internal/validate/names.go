package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jpl-au/quire/internal/path"
)

// Version names become a key segment, so they must be path-safe.
var versionName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Title rejects blank titles, null bytes and titles longer than maxLen bytes
// (0 means no limit). A valid title is returned unchanged.
func Title(t string, maxLen int) (string, error) {
	if strings.TrimSpace(t) == "" {
		return "", fmt.Errorf("%w: empty title", ErrInvalidTitle)
	}
	if strings.ContainsRune(t, 0) {
		return "", fmt.Errorf("%w: null byte in title", ErrInvalidTitle)
	}
	if maxLen > 0 && len(t) > maxLen {
		return "", ErrTitleTooLong
	}
	return t, nil
}

// Version validates a version name.
func Version(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidVersion)
	}
	if !versionName.MatchString(name) {
		return fmt.Errorf("%w: %q (letters, digits, '.', '_' and '-' only)", ErrInvalidVersion, name)
	}
	return nil
}

// Label trims and validates a tab label.
func Label(l string) (string, error) {
	l = strings.TrimSpace(l)
	if l == "" {
		return "", fmt.Errorf("%w: empty label", ErrInvalidLabel)
	}
	if strings.ContainsRune(l, 0) {
		return "", fmt.Errorf("%w: null byte in label", ErrInvalidLabel)
	}
	return l, nil
}

// File normalises an explicit page file name.
func File(name string) (string, error) {
	f, err := path.NormaliseFile(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFile, name)
	}
	return f, nil
}

// Key checks a full storage key against maxLen bytes (0 means no limit).
func Key(key string, maxLen int) error {
	if maxLen > 0 && len(key) > maxLen {
		return fmt.Errorf("%w: %d bytes", ErrPathTooLong, len(key))
	}
	return nil
}
