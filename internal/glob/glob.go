// Package glob matches page names against shell patterns.
//
// A page is named "<tab>/<slug>". A pattern without a slash matches the slug
// alone, so "*intro*" finds every introduction in any tab while "api/*"
// selects one tab. "**" matches any number of segments.
package glob

import (
	"path"
	"strings"
)

// Match reports whether the page slug in tab matches pattern. An error means
// the pattern is malformed.
func Match(pattern, tab, slug string) (bool, error) {
	pattern = strings.TrimSuffix(pattern, ".md")
	name := tab + "/" + slug

	if before, after, ok := strings.Cut(pattern, "**"); ok {
		prefix := strings.TrimSuffix(before, "/")
		suffix := strings.TrimPrefix(after, "/")
		if prefix != "" {
			m, err := path.Match(prefix, tab)
			if err != nil || !m {
				return false, err
			}
		}
		if suffix == "" {
			return true, nil
		}
		return path.Match(suffix, slug)
	}

	if strings.Contains(pattern, "/") {
		return path.Match(pattern, name)
	}
	return path.Match(pattern, slug)
}

// Valid reports whether pattern is well formed.
func Valid(pattern string) bool {
	_, err := path.Match(strings.ReplaceAll(pattern, "**", "*"), "")
	return err == nil
}
