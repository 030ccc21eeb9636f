/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before configuration is loaded. The config is loaded
// once and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/jpl-au/mdctx/extension"
	"github.com/jpl-au/mdctx/internal/config"
	"github.com/jpl-au/mdctx/internal/log"
)

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads configuration and injects it into extensions.
//
// Why sync.Once: The config must be loaded exactly once per process and
// shared across all extensions, even if multiple commands somehow trigger
// initialisation.
//
// Error handling: A missing config file is expected for first-time users -
// defaults apply. Other errors (unreadable file, invalid YAML, out-of-range
// values) are returned immediately.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		// Identify the working tree in audit entries
		if wd, err := os.Getwd(); err == nil {
			log.SetProject(wd)
		}

		extContext = extension.NewContext(cfg)

		// Inject the shared context into all Initializable extensions.
		// This is dependency injection - extensions receive the config rather
		// than loading it themselves, keeping one source of truth per run.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
	})
}
