// Package config provides reading and writing of quire configuration.
// Supports both global (~/.quire/config.yaml) and local (.quire/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.quire/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .quire/config.yaml
	ScopeLocal
)

// Author represents the author metadata recorded in the audit log.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxTitle   *int   `yaml:"max_title,omitempty"`
	MaxPath    *int   `yaml:"max_path,omitempty"`
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Search holds search configuration options.
type Search struct {
	MaxResults *int `yaml:"max_results,omitempty"`
}

// Pages holds options for newly created pages.
type Pages struct {
	Template string `yaml:"template,omitempty"`
}

// Page body templates.
const (
	TemplateMarkdown = "markdown"
	TemplateHTML     = "html"
)

// Default limits applied when not configured.
const (
	DefaultMaxTitle   = 256
	DefaultMaxPath    = 1024
	DefaultMaxContent = 10 * 1024 * 1024 // 10 MB
	DefaultMaxResults = 10
)

// Validation bounds for configuration values.
const (
	MinMaxTitle   = 1
	MaxMaxTitle   = 4096
	MinMaxPath    = 16 // room for docs/<v>/<tab>/<file>
	MaxMaxPath    = 65536
	MinMaxContent = 1
	MaxMaxContent = 1024 * 1024 * 1024 // 1 GB
	MinMaxResults = 1
	MaxMaxResults = 1000
)

// Config contains configuration for quire.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`
	Search Search `yaml:"search,omitempty"`
	Pages  Pages  `yaml:"pages,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

func checkRange[T int | int64](key string, v *T, lo, hi T) error {
	if v == nil {
		return nil
	}
	if *v < lo || *v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidValue, key, lo, hi, *v)
	}
	return nil
}

// Validate checks that all configured values are within acceptable bounds.
// Unset values pass; defaults apply to them.
func (c *Config) Validate() error {
	if err := checkRange("max_title", c.Limits.MaxTitle, MinMaxTitle, MaxMaxTitle); err != nil {
		return err
	}
	if err := checkRange("max_path", c.Limits.MaxPath, MinMaxPath, MaxMaxPath); err != nil {
		return err
	}
	if err := checkRange("max_content", c.Limits.MaxContent, MinMaxContent, MaxMaxContent); err != nil {
		return err
	}
	if err := checkRange("max_results", c.Search.MaxResults, MinMaxResults, MaxMaxResults); err != nil {
		return err
	}
	switch c.Pages.Template {
	case "", TemplateMarkdown, TemplateHTML:
	default:
		return fmt.Errorf("%w: template must be %s or %s, got %q",
			ErrInvalidValue, TemplateMarkdown, TemplateHTML, c.Pages.Template)
	}
	return nil
}

// MaxTitle returns the maximum page title length in bytes.
func (c *Config) MaxTitle() int {
	if c.Limits.MaxTitle == nil {
		return DefaultMaxTitle
	}
	return *c.Limits.MaxTitle
}

// MaxPath returns the maximum storage key length in bytes.
func (c *Config) MaxPath() int {
	if c.Limits.MaxPath == nil {
		return DefaultMaxPath
	}
	return *c.Limits.MaxPath
}

// MaxContent returns the maximum page body size in bytes.
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// MaxResults returns the search result cap.
func (c *Config) MaxResults() int {
	if c.Search.MaxResults == nil {
		return DefaultMaxResults
	}
	return *c.Search.MaxResults
}

// Template returns the body template for new pages (markdown unless set).
func (c *Config) Template() string {
	if c.Pages.Template == "" {
		return TemplateMarkdown
	}
	return c.Pages.Template
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".quire", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.quire/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quire", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
