// Package vacuum shrinks the database file after large deletes such as
// removing a version or a tab.
package vacuum

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/quire/internal/format"
	"github.com/jpl-au/quire/internal/service"
	"github.com/jpl-au/quire/internal/store"
)

// Run vacuums the database and reports the size change.
func Run(ctx context.Context, w io.Writer, svc service.Service) (store.VacuumResult, error) {
	r, err := svc.Vacuum(ctx)
	if err != nil {
		return r, err
	}
	fmt.Fprintf(w, "Vacuumed: %s -> %s\n", format.HumanSize(r.Before), format.HumanSize(r.After))
	return r, nil
}
