// Package cat reads a page body with optional line numbers and line range,
// so a long page can be read a section at a time.
package cat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/quire/internal/service"
	"github.com/jpl-au/quire/internal/workspace"
)

// minLineNumWidth is the minimum column width for line numbers.
const minLineNumWidth = 6

// Options configures a cat operation.
type Options struct {
	Version     string // version to read from; empty is the active version
	LineNumbers bool
	StartLine   int // first line to show (1-indexed, 0 = start)
	EndLine     int // last line to show (1-indexed, 0 = end)

	// MaxLineLength bounds a single scanned line (0 = the body size limit).
	MaxLineLength int
}

// Result contains the page that was read.
type Result struct {
	Page workspace.Page
}

// Run reads slug and writes its body to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, slug string, opts Options) (Result, error) {
	var result Result
	p, err := svc.ReadIn(ctx, opts.Version, slug)
	if err != nil {
		return result, err
	}
	result.Page = p

	if opts.StartLine == 0 && opts.EndLine == 0 && !opts.LineNumbers {
		fmt.Fprint(w, p.Body)
		return result, nil
	}
	return result, writeLines(w, p.Body, opts)
}

func writeLines(w io.Writer, body string, opts Options) error {
	trailing := strings.HasSuffix(body, "\n")
	total := strings.Count(body, "\n") + 1
	if trailing {
		total--
	}

	start, end := 1, total
	if opts.StartLine > 0 {
		start = opts.StartLine
	}
	if opts.EndLine > 0 && opts.EndLine < end {
		end = opts.EndLine
	}
	width := max(len(strconv.Itoa(end)), minLineNumWidth)

	maxLine := opts.MaxLineLength
	if maxLine <= 0 {
		maxLine = len(body) + 1
	}
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)

	n := 0
	for scanner.Scan() {
		n++
		if n < start {
			continue
		}
		if n > end {
			break
		}
		if opts.LineNumbers {
			fmt.Fprintf(w, "%*d\t%s", width, n, scanner.Text())
		} else {
			fmt.Fprint(w, scanner.Text())
		}
		if n < end || trailing {
			fmt.Fprintln(w)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	return nil
}

// ParseLineRange parses "10:20", "5:" or ":15" into 1-indexed bounds, where
// 0 means unbounded.
func ParseLineRange(s string) (start, end int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid line range %q: expected START:END", s)
	}
	if parts[0] != "" {
		if start, err = strconv.Atoi(parts[0]); err != nil || start < 1 {
			return 0, 0, fmt.Errorf("invalid start line %q", parts[0])
		}
	}
	if parts[1] != "" {
		if end, err = strconv.Atoi(parts[1]); err != nil || end < 1 {
			return 0, 0, fmt.Errorf("invalid end line %q", parts[1])
		}
	}
	if start > 0 && end > 0 && start > end {
		return 0, 0, fmt.Errorf("start line %d is after end line %d", start, end)
	}
	return start, end, nil
}
