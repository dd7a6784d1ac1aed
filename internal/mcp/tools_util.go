// tools_util.go extracts typed parameters from MCP's generic argument map.
//
// Optional parameters fall back to a default when missing or of the wrong
// type, so an agent omitting one never gets a type error.

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/quire/internal/store"
)

// defaultAuthor attributes MCP operations in the audit log when the client
// does not name itself.
const defaultAuthor = "mcp"

func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// getString returns a string parameter, or def when missing.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, ok := args(req)[name].(string); ok {
		return v
	}
	return def
}

// getOptString returns a pointer to a string parameter, or nil when missing.
// Lets tools tell "not given" apart from "set to empty".
func getOptString(req mcp.CallToolRequest, name string) *string {
	if v, ok := args(req)[name].(string); ok {
		return &v
	}
	return nil
}

func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	if v, ok := args(req)[name].(bool); ok {
		return v
	}
	return def
}

// getInt returns a number parameter. JSON numbers decode as float64.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	if v, ok := args(req)[name].(float64); ok {
		return int(v)
	}
	return def
}

// getStrings returns a string array parameter, skipping non-string items.
// Returns nil when the parameter is absent.
func getStrings(req mcp.CallToolRequest, name string) []string {
	arr, ok := args(req)[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func author(req mcp.CallToolRequest) string {
	return getString(req, "author", defaultAuthor)
}

// jsonResult serialises v as indented JSON in a text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errResult reports err to the client as a tool error.
func errResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
