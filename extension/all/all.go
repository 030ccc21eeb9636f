// Package all imports all core mdctx extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/mdctx/extension/core"
	_ "github.com/jpl-au/mdctx/extension/expand"
)
