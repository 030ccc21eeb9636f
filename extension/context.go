// context.go defines the Context interface for extension access to mdctx internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions - they can
// access what they need without reaching into arbitrary internals.
//
// Design: Context uses an interface to enable testing with mock implementations.
// Extensions receive Context during Init(), not at construction, to support
// the two-phase initialization pattern where extensions register before
// configuration is loaded.

package extension

import (
	"github.com/jpl-au/mdctx/internal/config"
)

// Context provides extensions controlled access to mdctx internals.
// Extensions receive this during initialisation to access shared resources.
type Context interface {
	// Config returns user configuration for respecting user preferences.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(cfg *config.Config) Context {
	return &extContext{cfg: cfg}
}

// Config returns the loaded user configuration for respecting preferences.
func (c *extContext) Config() *config.Config {
	return c.cfg
}
