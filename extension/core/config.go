// config.go implements the "mdctx config" command for configuration management.
//
// Separated from extension.go to isolate config-specific logic including
// the local vs global config precedence rules.
//
// Design: Config follows a cascade model similar to git: local config
// (.mdctx/config.yaml) takes precedence over global (~/.mdctx/config.yaml).
// The --local flag forces use of local config even if it doesn't exist yet,
// enabling per-project setup without touching global settings.

package core

import (
	"fmt"

	"github.com/jpl-au/mdctx/cmd"
	"github.com/jpl-au/mdctx/extension"
	"github.com/jpl-au/mdctx/internal/config"
	"github.com/jpl-au/mdctx/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  mdctx config                       # show config
  mdctx config imports.max_depth     # show imports.max_depth value
  mdctx config imports.max_depth 20  # set imports.max_depth

Configuration locations:
  Global: ~/.mdctx/config.yaml
  Local:  .mdctx/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.mdctx/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	// Load config: local if exists, otherwise global
	// --local flag forces local even if it doesn't exist yet
	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		// Show all values
		if cmd.JSON() {
			log.Event("core:config", "list").Author(cmd.Author()).Write(nil)
			return cmd.PrintJSON(cfg.All())
		}
		for k, v := range cfg.All() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, v)
		}
		log.Event("core:config", "list").Author(cmd.Author()).Write(nil)

	case 1:
		// Get single value
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(cmd.Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		// Set value - write to same place we read from
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}
