// serve.go implements the "mdctx serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks indefinitely handling
// MCP requests over stdio.

package core

import (
	"github.com/jpl-au/mdctx/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Exposes the mdctx_expand and mdctx_check tools plus the
mdctx://expanded/{path} resource.`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve()
}
