// Package expand provides the expansion extension for mdctx.
// Registers commands: expand, check, diff, preview.
//
// These commands are the different views over one operation - resolving
// @import directives - and share flag handling through buildOptions. Each
// command file is separated to isolate its output formatting logic.

package expand

import (
	"github.com/jpl-au/mdctx/extension"
	"github.com/jpl-au/mdctx/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the expansion extension.
type Extension struct {
	cfg *config.Config
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "expand" - this extension handles import resolution.
func (e *Extension) Name() string { return "expand" }

// Init captures the shared configuration.
func (e *Extension) Init(ctx extension.Context) error {
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the expansion commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newExpandCmd(),
		e.newCheckCmd(),
		e.newDiffCmd(),
		e.newPreviewCmd(),
	}
}

// MCPTools returns nil - expansion MCP tools are provided by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
