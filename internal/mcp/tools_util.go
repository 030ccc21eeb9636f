// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Extraction is permissive: missing or mistyped optional parameters fall back
// to a default rather than failing the tool call. LLMs frequently omit
// optional parameters or send them in unexpected formats, and a sensible
// default keeps the tool usable where a type error would not be.

package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter, returning def when the parameter is
// missing or not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the raw argument map. JSON
// booleans decode as Go bool, so a type assertion suffices.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter. JSON has no integer type; numbers
// decode as float64, so assert that and convert.
func getInt(req mcp.CallToolRequest, name string, def int) int { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

// jsonResult serialises v as indented JSON and wraps it in an MCP text
// result. Marshalling failures become MCP error results rather than Go
// errors, keeping all failures on the same channel for the client.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
