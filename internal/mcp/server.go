// Package mcp implements the Model Context Protocol server, exposing mdctx
// expansion to LLMs. This lets AI assistants resolve @import directives in
// markdown context files through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/mdctx/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// Configuration is loaded once at startup. A broken config file is not fatal:
// the server falls back to defaults so clients can still expand files.
func Serve() error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config load failed, using defaults", "error", err)
		cfg = &config.Config{}
	}

	h := &handlers{cfg: cfg}

	s := server.NewMCPServer(
		"mdctx",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	slog.Info("mdctx MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the loaded config.
type handlers struct {
	cfg *config.Config
}

// registerResources adds URI-based access to expanded files.
func registerResources(s *server.MCPServer, h *handlers) {
	// Expanded file content by path
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"mdctx://expanded/{path}",
			"Expanded Document",
			mcp.WithTemplateDescription("Read a markdown file with its @imports resolved"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readExpanded,
	)
}

// registerTools exposes mdctx operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Expand a file or inline content
	s.AddTool(
		mcp.NewTool("mdctx_expand",
			mcp.WithDescription("Expand @import directives in a markdown file or inline content. Provide either path or content."),
			mcp.WithString("path", mcp.Description("Markdown file to expand")),
			mcp.WithString("content", mcp.Description("Inline markdown content to expand (requires base_dir)")),
			mcp.WithString("base_dir", mcp.Description("Directory relative imports resolve against (required with content)")),
			mcp.WithNumber("max_depth", mcp.Description("Maximum import recursion depth (default: configured value)")),
			mcp.WithBoolean("no_imports", mcp.Description("Return content verbatim without processing imports")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.expandTool,
	)

	// Check directives without expanding
	s.AddTool(
		mcp.NewTool("mdctx_check",
			mcp.WithDescription("Report how each top-level @import in a file would be handled (ok, unsupported, denied, missing, cycle) without inlining anything"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Markdown file to check")),
			mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
		),
		h.checkTool,
	)
}
