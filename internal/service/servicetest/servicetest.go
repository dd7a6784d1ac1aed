// Package servicetest provides an in-memory service.Service for tests of
// packages that sit on top of the service.
package servicetest

import (
	"context"
	"testing"

	"github.com/jpl-au/quire/internal/diff"
	"github.com/jpl-au/quire/internal/service"
	"github.com/jpl-au/quire/internal/store"
	"github.com/jpl-au/quire/internal/workspace"
)

// Service is a seeded workspace over a memory store.
type Service struct {
	*workspace.Workspace
	dir string
}

var _ service.Service = (*Service)(nil)

// New returns a seeded Service. dir is what Dir reports; it is never
// written to.
func New(t testing.TB) *Service {
	t.Helper()
	w := workspace.New(store.NewMemory(), workspace.Options{})
	if err := w.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &Service{Workspace: w, dir: t.TempDir()}
}

// NewEmpty returns a Service with the default tabs and no pages.
func NewEmpty(t testing.TB) *Service {
	t.Helper()
	w := workspace.New(store.NewMemory(), workspace.Options{})
	if err := w.Init(context.Background(), workspace.SeedVersion, workspace.DefaultTabs()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return &Service{Workspace: w, dir: t.TempDir()}
}

func (s *Service) Close() error { return nil }

func (s *Service) Dir() string { return s.dir }

func (s *Service) Diff(ctx context.Context, slug string, opts diff.Options) (diff.Result, error) {
	old, err := s.ReadIn(ctx, opts.From, slug)
	if err != nil {
		return diff.Result{}, err
	}
	cur, err := s.ReadIn(ctx, opts.To, slug)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(old.Body, cur.Body, diff.Label(old.Version, slug), diff.Label(cur.Version, slug)), nil
}

func (s *Service) Vacuum(context.Context) (store.VacuumResult, error) {
	return store.VacuumResult{}, nil
}

func (s *Service) Checkpoint(context.Context) error { return nil }
