// Package service defines the interface commands, extensions and MCP tools
// use to work with a quire repository. They depend on this interface rather
// than on the concrete document.Service, so tests can supply fakes.
package service

import (
	"context"

	"github.com/jpl-au/quire/internal/diff"
	"github.com/jpl-au/quire/internal/nav"
	"github.com/jpl-au/quire/internal/search"
	"github.com/jpl-au/quire/internal/store"
	"github.com/jpl-au/quire/internal/workspace"
)

// Service is every operation on a quire repository.
//
//	svc, err := document.New(document.Options{})
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	p, err := svc.Select(ctx, "intro")
type Service interface {
	// Close checkpoints and releases the database. Always defer this.
	Close() error

	// State returns the active version, tab and page.
	State(ctx context.Context) (workspace.State, error)

	// Select makes slug the active page. A slug with no page yields a
	// placeholder page, not an error.
	Select(ctx context.Context, slug string) (workspace.Page, error)

	// Read returns a page of the active version.
	Read(ctx context.Context, slug string) (workspace.Page, error)

	// ReadIn returns a page of a given version.
	ReadIn(ctx context.Context, version, slug string) (workspace.Page, error)

	// Update commits a new body, and a new title when title is non-nil.
	// The slug and storage path never change.
	Update(ctx context.Context, slug, body string, title *string) (workspace.Page, error)

	// Retitle renames a page or folder.
	Retitle(ctx context.Context, slug, title string) error

	// Create adds a page or folder and returns its slug.
	Create(ctx context.Context, req workspace.CreateRequest) (string, error)

	// Delete removes a page or a folder with everything beneath it and
	// returns the removed slugs. Deleting a missing slug succeeds.
	Delete(ctx context.Context, slug string) ([]string, error)

	// Move reparents src under the folder target in the same tab.
	Move(ctx context.Context, src, target string) error

	// MoveToRoot makes src a top-level node of its tab.
	MoveToRoot(ctx context.Context, src string) error

	// Reorder sets the order of one sibling group.
	Reorder(ctx context.Context, slugs []string) error

	// Pages lists every page of the active version in tree order.
	Pages(ctx context.Context) ([]workspace.Page, error)

	// PagesIn lists every page of a version.
	PagesIn(ctx context.Context, version string) ([]workspace.Page, error)

	// Tree returns a tab's navigation forest ("" is the active tab).
	Tree(ctx context.Context, tab string) ([]nav.Node, error)

	// Outline is Tree flattened with depths.
	Outline(ctx context.Context, tab string) ([]nav.Item, error)

	// Breadcrumb returns the chain from the tab root down to slug.
	Breadcrumb(ctx context.Context, slug string) ([]nav.Item, error)

	// Search queries titles and stripped bodies of the active version.
	Search(ctx context.Context, text string, opts workspace.SearchOptions) ([]search.Result, error)

	// Versions lists version namespaces.
	Versions(ctx context.Context) ([]workspace.Version, error)
	CloneVersion(ctx context.Context, src, dst string) error
	RenameVersion(ctx context.Context, old, name string) error
	DeleteVersion(ctx context.Context, v string) error
	UseVersion(ctx context.Context, v string) error

	// Tabs lists the tab registry.
	Tabs(ctx context.Context) ([]workspace.Tab, error)
	AddTab(ctx context.Context, label, icon string) (workspace.Tab, error)
	UpdateTab(ctx context.Context, id, label, icon string) (workspace.Tab, error)
	RemoveTab(ctx context.Context, id string) error
	UseTab(ctx context.Context, id string) error

	// Diff compares a page between two versions.
	Diff(ctx context.Context, slug string, opts diff.Options) (diff.Result, error)

	// Vacuum rebuilds the database file to reclaim space after deletes.
	Vacuum(ctx context.Context) (store.VacuumResult, error)

	// Checkpoint flushes the WAL into the main database file.
	Checkpoint(ctx context.Context) error

	// Dir returns the .quire directory.
	Dir() string
}
