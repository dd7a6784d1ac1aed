// Package document is the SQLite-backed implementation of service.Service.
// It finds the repository, applies the user's configuration and opens a
// workspace.Workspace over the database.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/quire/internal/config"
	"github.com/jpl-au/quire/internal/log"
	"github.com/jpl-au/quire/internal/repo"
	"github.com/jpl-au/quire/internal/service"
	"github.com/jpl-au/quire/internal/store"
	"github.com/jpl-au/quire/internal/workspace"
)

// Service implements service.Service. Page, navigation, version, tab and
// search operations come from the embedded Workspace.
type Service struct {
	*workspace.Workspace
	store  *store.SQLiteStore
	dbPath string
	dir    string
}

var _ service.Service = (*Service)(nil)

// Options selects the repository to open.
type Options struct {
	// Dir is a project directory containing .quire. Empty walks up from the
	// working directory.
	Dir string
	// DB names the database (see repo.DBName). Empty is quire.db.
	DB string
}

// New opens the repository. Returns repo.ErrNotInitialised if there is none.
func New(opts Options) (*Service, error) {
	var dbPath string
	if opts.Dir != "" {
		dbPath = filepath.Join(opts.Dir, repo.Dir, repo.DBName(opts.DB))
		if _, err := os.Stat(dbPath); err != nil {
			return nil, fmt.Errorf("%s: %w", opts.Dir, repo.ErrNotInitialised)
		}
	} else {
		var err error
		if dbPath, err = repo.Discover(opts.DB); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, err
	}

	svc := &Service{
		Workspace: workspace.New(s, WorkspaceOptions(cfg)),
		store:     s,
		dbPath:    dbPath,
		dir:       filepath.Dir(dbPath),
	}
	ok, err := svc.Initialised(context.Background())
	if err != nil {
		s.Close()
		return nil, err
	}
	if !ok {
		s.Close()
		return nil, fmt.Errorf("%s: %w", dbPath, workspace.ErrNotInitialised)
	}
	return svc, nil
}

// WorkspaceOptions maps configuration onto workspace options.
func WorkspaceOptions(cfg *config.Config) workspace.Options {
	opts := workspace.Options{
		Limits: workspace.Limits{
			MaxTitle:   cfg.MaxTitle(),
			MaxPath:    cfg.MaxPath(),
			MaxContent: cfg.MaxContent(),
			MaxResults: cfg.MaxResults(),
		},
	}
	if cfg.Template() == config.TemplateHTML {
		opts.Template = workspace.HTMLTemplate{}
	}
	return opts
}

// InitOptions controls Init.
type InitOptions struct {
	Force bool   // replace an existing database
	Local bool   // keep the database out of git
	Empty bool   // register version "v1" and the built-in tabs but no pages
	DB    string // database name, see repo.DBName
}

// Init creates a repository under dir ("" is the working directory) and
// seeds it with starter content unless opts.Empty is set.
func Init(ctx context.Context, dir string, opts InitOptions) error {
	dbPath, err := repo.Init(dir, repo.InitOptions{Force: opts.Force, Local: opts.Local, DB: opts.DB})
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	w := workspace.New(s, WorkspaceOptions(cfg))
	if opts.Empty {
		err = w.Init(ctx, workspace.SeedVersion, workspace.DefaultTabs())
	} else {
		err = w.Seed(ctx)
	}
	if err != nil {
		return fmt.Errorf("initialise workspace: %w", err)
	}
	return s.Checkpoint(ctx)
}

// Close checkpoints the WAL and closes the database.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").Write(err)
	}
	return s.store.Close()
}

// Dir returns the .quire directory.
func (s *Service) Dir() string {
	return s.dir
}

// DBPath returns the database file path.
func (s *Service) DBPath() string {
	return s.dbPath
}

// IsNotInitialised reports whether err means there is no usable repository.
func IsNotInitialised(err error) bool {
	return errors.Is(err, repo.ErrNotInitialised) || errors.Is(err, workspace.ErrNotInitialised)
}
