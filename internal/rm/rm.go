// Package rm deletes pages and folders. Deleting a folder removes everything
// beneath it; deleting a missing slug is not an error.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/quire/internal/service"
)

// Result lists what was removed.
type Result struct {
	Slug    string   `json:"slug"`
	Deleted []string `json:"deleted"`
}

// Run deletes each slug in turn and reports what went.
func Run(ctx context.Context, w io.Writer, svc service.Service, slugs []string) ([]Result, error) {
	results := make([]Result, 0, len(slugs))
	for _, s := range slugs {
		removed, err := svc.Delete(ctx, s)
		if err != nil {
			return results, err
		}
		if removed == nil {
			removed = []string{}
		}
		results = append(results, Result{Slug: s, Deleted: removed})
		switch len(removed) {
		case 0:
			fmt.Fprintf(w, "%s: nothing to delete\n", s)
		case 1:
			fmt.Fprintf(w, "Deleted %s\n", s)
		default:
			fmt.Fprintf(w, "Deleted %s and %d nested items\n", s, len(removed)-1)
		}
	}
	return results, nil
}
