package edit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidExpr is returned when a substitution expression is malformed.
	ErrInvalidExpr = errors.New("invalid expression")
	// ErrUnsupportedCommand is returned for anything but s///.
	ErrUnsupportedCommand = errors.New("only substitution (s) expressions are supported")
)

// ParseExpr parses a sed-style substitution such as s/old/new/ or
// s|old|new|g into Options. Any delimiter works and may be escaped with a
// backslash. The g flag replaces every occurrence and i ignores case.
func ParseExpr(expr string) (Options, error) {
	if len(expr) < 4 {
		return Options{}, ErrInvalidExpr
	}
	if expr[0] != 's' {
		return Options{}, ErrUnsupportedCommand
	}

	delim := expr[1]
	parts := splitByDelim(expr[2:], delim)
	if len(parts) < 2 || parts[0] == "" {
		return Options{}, fmt.Errorf("%w: expected s%cold%cnew%c", ErrInvalidExpr, delim, delim, delim)
	}

	opts := Options{Old: parts[0], New: parts[1]}
	if len(parts) >= 3 {
		for _, f := range parts[2] {
			switch f {
			case 'g':
				opts.All = true
			case 'i', 'I':
				opts.CaseInsensitive = true
			default:
				return Options{}, fmt.Errorf("%w: unknown flag %q", ErrInvalidExpr, f)
			}
		}
	}
	return opts, nil
}

// splitByDelim splits s on delim, honouring backslash escapes. The part after
// the last delimiter is kept even when empty so "s/a//" has an empty
// replacement.
func splitByDelim(s string, delim byte) []string {
	var parts []string
	var cur strings.Builder
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			if c != delim && c != '\\' {
				cur.WriteByte('\\')
			}
			cur.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == delim:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}
