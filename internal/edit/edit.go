// Package edit changes part of a page body in place: a search/replace, given
// as flags or as a sed-style s/old/new/ expression, or a replacement of a
// line range.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/quire/internal/service"
)

// ErrTextNotFound is returned when the search text is not in the body.
var ErrTextNotFound = errors.New("text not found")

// Options configures a search/replace edit.
type Options struct {
	Old             string
	New             string
	CaseInsensitive bool
	All             bool // replace every occurrence, not just the first
}

// LineRangeOptions configures a line-range edit. Bounds are 1-indexed and
// inclusive; 0 means unbounded.
type LineRangeOptions struct {
	Start int
	End   int
}

// Result contains the outcome of an edit.
type Result struct {
	Slug    string `json:"slug"`
	Version string `json:"version"`
}

// Run replaces opts.Old in the page body: the first occurrence, or all of
// them with opts.All.
func Run(ctx context.Context, w io.Writer, svc service.Service, slug string, opts Options) (Result, error) {
	return apply(ctx, w, svc, slug, func(body string) (string, error) {
		if opts.All {
			return ReplaceAll(body, opts.Old, opts.New, opts.CaseInsensitive)
		}
		return Replace(body, opts.Old, opts.New, opts.CaseInsensitive)
	})
}

// RunLineRange replaces a range of lines in the page body.
func RunLineRange(ctx context.Context, w io.Writer, svc service.Service, slug, replacement string, opts LineRangeOptions) (Result, error) {
	return apply(ctx, w, svc, slug, func(body string) (string, error) {
		return ReplaceLines(body, opts.Start, opts.End, replacement)
	})
}

func apply(ctx context.Context, w io.Writer, svc service.Service, slug string, fn func(string) (string, error)) (Result, error) {
	r := Result{Slug: slug}
	p, err := svc.Read(ctx, slug)
	if err != nil {
		return r, err
	}
	body, err := fn(p.Body)
	if err != nil {
		return r, fmt.Errorf("edit %s: %w", slug, err)
	}
	p, err = svc.Update(ctx, slug, body, nil)
	if err != nil {
		return r, err
	}
	r.Version = p.Version
	fmt.Fprintf(w, "Edited %s\n", slug)
	return r, nil
}

// Replace replaces the first occurrence of old with newStr. With
// caseInsensitive the match ignores case; the replacement is used as given.
func Replace(content, old, newStr string, caseInsensitive bool) (string, error) {
	if old == "" {
		return "", fmt.Errorf("%w: empty search text", ErrTextNotFound)
	}
	if caseInsensitive {
		idx := strings.Index(strings.ToLower(content), strings.ToLower(old))
		if idx == -1 {
			return "", fmt.Errorf("%w: %q", ErrTextNotFound, old)
		}
		return content[:idx] + newStr + content[idx+len(old):], nil
	}

	if !strings.Contains(content, old) {
		return "", fmt.Errorf("%w: %q", ErrTextNotFound, old)
	}
	return strings.Replace(content, old, newStr, 1), nil
}

// ReplaceAll replaces every occurrence of old with newStr.
func ReplaceAll(content, old, newStr string, caseInsensitive bool) (string, error) {
	if old == "" {
		return "", fmt.Errorf("%w: empty search text", ErrTextNotFound)
	}
	if !caseInsensitive {
		if !strings.Contains(content, old) {
			return "", fmt.Errorf("%w: %q", ErrTextNotFound, old)
		}
		return strings.ReplaceAll(content, old, newStr), nil
	}

	lower, needle := strings.ToLower(content), strings.ToLower(old)
	var b strings.Builder
	last, found := 0, false
	for {
		idx := strings.Index(lower[last:], needle)
		if idx == -1 {
			break
		}
		found = true
		b.WriteString(content[last : last+idx])
		b.WriteString(newStr)
		last += idx + len(old)
	}
	if !found {
		return "", fmt.Errorf("%w: %q", ErrTextNotFound, old)
	}
	b.WriteString(content[last:])
	return b.String(), nil
}

// ReplaceLines replaces lines start..end (1-indexed, inclusive) with
// replacement. start 0 is the first line, end 0 the last; an end past the
// body is clamped.
func ReplaceLines(content string, start, end int, replacement string) (string, error) {
	lines := strings.Split(content, "\n")

	if start == 0 {
		start = 1
	}
	if end == 0 {
		end = len(lines)
	}

	if start < 1 {
		return "", fmt.Errorf("start line must be >= 1, got %d", start)
	}
	if end < start {
		return "", fmt.Errorf("end line %d cannot be less than start line %d", end, start)
	}
	if start > len(lines) {
		return "", fmt.Errorf("start line %d exceeds page length %d", start, len(lines))
	}
	end = min(end, len(lines))

	result := append([]string(nil), lines[:start-1]...)
	replacement = strings.TrimSuffix(replacement, "\n")
	if replacement != "" {
		result = append(result, strings.Split(replacement, "\n")...)
	}
	result = append(result, lines[end:]...)

	return strings.Join(result, "\n"), nil
}
