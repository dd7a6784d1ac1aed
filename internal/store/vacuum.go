// vacuum.go reclaims space after bulk deletes. Deleting a version or a tab
// frees pages inside the database file; VACUUM rebuilds the file so it shrinks.

package store

import (
	"context"
	"fmt"
	"os"
)

// VacuumResult reports the database file size around a Vacuum.
type VacuumResult struct {
	Before int64 `json:"before"`
	After  int64 `json:"after"`
}

// Vacuum checkpoints the WAL and rebuilds the database file. file is the
// database path used to report sizes; pass "" to skip size reporting.
func (s *SQLiteStore) Vacuum(ctx context.Context, file string) (VacuumResult, error) {
	var r VacuumResult
	if err := s.Checkpoint(ctx); err != nil {
		return r, err
	}
	r.Before = fileSize(file)
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return r, fmt.Errorf("vacuum: %w", err)
	}
	if err := s.Checkpoint(ctx); err != nil {
		return r, err
	}
	r.After = fileSize(file)
	return r, nil
}

func fileSize(path string) int64 {
	if path == "" {
		return 0
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
