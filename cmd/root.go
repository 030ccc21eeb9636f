/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE loads configuration and injects it into
// extensions before any command runs. Unlike a store-backed tool there is
// nothing expensive to open lazily - every command reads config - so
// initialisation is unconditional.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/mdctx/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdctx",
	Short: "Markdown context assembler for LLM workflows",
	Long:  `Resolve @import directives in markdown files, assembling complete context documents from fragments while keeping imports inside a per-file directory boundary.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Detect author if not explicitly set
		if author == "" {
			author = detectAuthor()
		}

		if err := initExtensions(); err != nil {
			if JSON() {
				_ = PrintJSON(map[string]string{"error": err.Error()})
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return fmt.Errorf("initialise extensions: %w", err)
		}

		return nil
	},
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, and executes the command.
// Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	if err := rootCmd.Execute(); err != nil {
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
