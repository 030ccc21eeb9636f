// resources.go implements MCP resource handlers for expanded file access.
//
// MCP resources provide read-only access via URI schemes, enabling LLM
// clients to pull an expanded context file without invoking a tool. This is
// useful for context loading where the client wants the assembled document
// rather than a tool result envelope.
//
// Resource URIs follow the pattern mdctx://expanded/{path}. The path is a
// filesystem path; a leading slash is implied, so mdctx://expanded/etc/x.md
// and mdctx://expanded//etc/x.md both resolve to /etc/x.md. Relative paths
// resolve against the server's working directory.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/mdctx/internal/expand"
	"github.com/jpl-au/mdctx/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath indicates a missing file path in a resource URI.
	ErrEmptyPath = errors.New("empty file path")
)

// readExpanded handles mdctx://expanded/{path} resource requests, returning
// the file with its imports resolved.
func (h *handlers) readExpanded(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	path, err := parseExpandedURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	result, err := expand.Run(io.Discard, path, expand.Options{
		NoImports: !h.cfg.ImportsEnabled(),
		MaxDepth:  h.cfg.MaxDepth(),
	})
	log.Event("mcp:resource", "expand").Author("mcp").
		Path(path).Resolved(result.Path).
		Imports(result.Directives).
		Failures(expand.Failures(result.Content)).
		Write(err)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     result.Content,
		},
	}, nil
}

// parseExpandedURI extracts the filesystem path from an expanded-file URI.
func parseExpandedURI(uri string) (string, error) {
	const prefix = "mdctx://expanded/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	rest := strings.TrimPrefix(uri, prefix)
	if rest == "" {
		return "", ErrEmptyPath
	}

	// URI templates collapse the leading slash of absolute paths; restore it
	// unless the client already doubled it or means a relative path (./...).
	if !strings.HasPrefix(rest, "/") && !strings.HasPrefix(rest, ".") {
		rest = "/" + rest
	}
	return rest, nil
}
