// context.go defines the Context interface for extension access to quire
// internals.
//
// Extensions receive the Context during Init(), not at construction, so they
// can register commands before a repository has been opened.

package extension

import (
	"github.com/jpl-au/quire/internal/config"
	"github.com/jpl-au/quire/internal/service"
)

// Context provides extensions controlled access to quire internals.
type Context interface {
	// Service returns the repository service.
	Service() service.Service

	// Config returns user configuration.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, cfg *config.Config) Context {
	return &extContext{svc: svc, cfg: cfg}
}

func (c *extContext) Service() service.Service {
	return c.svc
}

func (c *extContext) Config() *config.Config {
	return c.cfg
}
