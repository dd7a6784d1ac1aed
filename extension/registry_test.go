package extension

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name  string
	tools []MCPTool
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return e.tools }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	assert.Panics(t, func() { Register(testExtension{name: name}) })
}

func TestRegister_Order(t *testing.T) {
	Register(testExtension{name: "test-order-a"})
	Register(testExtension{name: "test-order-b"})

	names := Names()
	a := indexOf(names, "test-order-a")
	b := indexOf(names, "test-order-b")
	require.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, b)

	assert.NotNil(t, Get("test-order-a"))
	assert.Nil(t, Get("test-order-missing"))
}

func TestTools(t *testing.T) {
	handler := func(context.Context, Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}
	Register(testExtension{name: "test-tools", tools: []MCPTool{
		{Tool: mcp.NewTool("test_tool"), Handler: handler},
	}})

	var found bool
	for _, tool := range Tools() {
		if tool.Tool.Name == "test_tool" {
			found = true
		}
	}
	assert.True(t, found)
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
