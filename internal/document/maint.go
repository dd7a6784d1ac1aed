// maint.go holds database maintenance: checkpointing and vacuuming.

package document

import (
	"context"

	"github.com/jpl-au/quire/internal/store"
)

// Vacuum rebuilds the database file. Deleting a version or tab frees space
// inside the file; vacuuming returns it to the filesystem.
func (s *Service) Vacuum(ctx context.Context) (store.VacuumResult, error) {
	return s.store.Vacuum(ctx, s.dbPath)
}

// Checkpoint flushes the WAL to the main database file, removing the -wal
// and -shm files. Useful before copying the repository.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}
