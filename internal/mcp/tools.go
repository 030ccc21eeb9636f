// tools.go implements the MCP tool handlers for expansion and checking.
//
// Handlers delegate to internal/expand so the MCP surface and the CLI share
// one set of semantics. Results are returned as pretty-printed JSON, which
// LLMs parse more reliably than free-form text.

package mcp

import (
	"context"
	"io"
	"path/filepath"

	"github.com/jpl-au/mdctx/internal/expand"
	"github.com/jpl-au/mdctx/internal/imports"
	"github.com/jpl-au/mdctx/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// expandTool handles mdctx_expand. It accepts either a file path or inline
// content with a base directory; inline content carries no self-import seed
// because there is no backing file to cycle back into.
func (h *handlers) expandTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := getString(req, "path", "")
	content := getString(req, "content", "")
	author := getString(req, "author", "mcp")

	opts := expand.Options{
		NoImports: getBool(req, "no_imports", false) || !h.cfg.ImportsEnabled(),
		MaxDepth:  getInt(req, "max_depth", h.cfg.MaxDepth()),
	}

	event := log.Event("mcp:expand", "expand").Author(author)

	switch {
	case path != "":
		result, err := expand.Run(io.Discard, path, opts)
		event.Path(path).Resolved(result.Path).
			Imports(result.Directives).
			Failures(expand.Failures(result.Content)).
			Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)

	case content != "":
		base := getString(req, "base_dir", "")
		if base == "" {
			return mcp.NewToolResultError("base_dir is required when expanding inline content"), nil
		}
		abs, err := filepath.Abs(base)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		proc := &imports.Processor{}
		st := imports.NewState()
		if opts.MaxDepth > 0 {
			st.MaxDepth = opts.MaxDepth
		}

		result := expand.Result{
			Path:       "-",
			Directives: len(imports.Directives(content)),
			Content:    proc.Process(content, abs, !opts.NoImports, st),
		}
		event.Imports(result.Directives).
			Failures(expand.Failures(result.Content)).
			Detail("base_dir", abs).
			Write(nil)
		return jsonResult(result)

	default:
		return mcp.NewToolResultError("either path or content is required"), nil
	}
}

// checkTool handles mdctx_check, reporting the disposition of each top-level
// directive without inlining anything.
func (h *handlers) checkTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	author := getString(req, "author", "mcp")

	report, err := expand.Check(io.Discard, path, expand.Options{
		MaxDepth: h.cfg.MaxDepth(),
	})

	event := log.Event("mcp:check", "check").Author(author).Path(path).Imports(len(report))
	failures := 0
	for _, d := range report {
		if d.Status != expand.StatusOK {
			failures++
		}
	}
	event.Failures(failures).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(struct {
		Path       string             `json:"path"`
		Directives []expand.Directive `json:"directives"`
	}{Path: path, Directives: report})
}
