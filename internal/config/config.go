// Package config provides reading and writing of mdctx configuration.
// Supports both global (~/.mdctx/config.yaml) and local (.mdctx/config.yaml).
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
	// ScopeGlobal is user-wide config in ~/.mdctx/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .mdctx/config.yaml
	ScopeLocal
)

// Author represents the author metadata used for audit log attribution.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Imports holds import-expansion configuration options.
type Imports struct {
	Enabled  *bool `yaml:"enabled,omitempty"`
	MaxDepth *int  `yaml:"max_depth,omitempty"`
}

// Render holds output rendering configuration options.
type Render struct {
	Theme string `yaml:"theme,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultMaxDepth = 10
	DefaultTheme    = "dark"
)

// Validation bounds for configuration values.
const (
	MinMaxDepth = 1
	MaxMaxDepth = 100
)

// Config contains configuration for mdctx.
type Config struct {
	Author  Author  `yaml:"author,omitempty"`
	Imports Imports `yaml:"imports,omitempty"`
	Render  Render  `yaml:"render,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Imports.MaxDepth != nil {
		v := *c.Imports.MaxDepth
		if v < MinMaxDepth || v > MaxMaxDepth {
			return fmt.Errorf("%w: imports.max_depth must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxDepth, MaxMaxDepth, v)
		}
	}
	return nil
}

// ImportsEnabled returns whether import expansion is enabled (defaults to true).
func (c *Config) ImportsEnabled() bool {
	if c.Imports.Enabled == nil {
		return true
	}
	return *c.Imports.Enabled
}

// MaxDepth returns the recursion ceiling for import expansion (defaults to 10).
func (c *Config) MaxDepth() int {
	if c.Imports.MaxDepth == nil {
		return DefaultMaxDepth
	}
	return *c.Imports.MaxDepth
}

// Theme returns the glamour style used by the preview command (defaults to "dark").
func (c *Config) Theme() string {
	if c.Render.Theme == "" {
		return DefaultTheme
	}
	return c.Render.Theme
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".mdctx", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.mdctx/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mdctx", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
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
