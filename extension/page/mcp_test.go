package page

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/quire/extension"
	"github.com/jpl-au/quire/internal/config"
	"github.com/jpl-au/quire/internal/service/servicetest"
)

func callEdit(t *testing.T, extCtx extension.Context, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = "quire_edit"
	req.Params.Arguments = args
	res, err := handleEdit(context.Background(), extCtx, req)
	require.NoError(t, err)
	return res
}

func TestHandleEdit(t *testing.T) {
	svc := servicetest.New(t)
	extCtx := extension.NewContext(svc, &config.Config{})
	ctx := context.Background()

	res := callEdit(t, extCtx, map[string]any{"slug": "iterator", "old": "1000 items", "new": "50 items"})
	require.False(t, res.IsError)
	p, err := svc.Read(ctx, "iterator")
	require.NoError(t, err)
	assert.Contains(t, p.Body, "at most 50 items")

	res = callEdit(t, extCtx, map[string]any{"slug": "app-intro", "lines": "1:1", "replacement": "# Mobile app"})
	require.False(t, res.IsError)
	p, err = svc.Read(ctx, "app-intro")
	require.NoError(t, err)
	assert.Contains(t, p.Body, "# Mobile app\n")
	assert.NotContains(t, p.Body, "# App introduction")

	tests := []struct {
		name string
		args map[string]any
	}{
		{"no slug", map[string]any{"old": "x"}},
		{"no edit", map[string]any{"slug": "iterator"}},
		{"both", map[string]any{"slug": "iterator", "old": "x", "lines": "1:2"}},
		{"bad range", map[string]any{"slug": "iterator", "lines": "2:1"}},
		{"missing text", map[string]any{"slug": "iterator", "old": "no such text"}},
		{"missing page", map[string]any{"slug": "nope", "old": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, callEdit(t, extCtx, tt.args).IsError)
		})
	}
}

func TestEditAuthor(t *testing.T) {
	svc := servicetest.New(t)
	var req mcp.CallToolRequest

	assert.Equal(t, "mcp", editAuthor(extension.NewContext(svc, &config.Config{}), req))

	cfg := &config.Config{}
	cfg.Author.Name = "Ada"
	assert.Equal(t, "Ada", editAuthor(extension.NewContext(svc, cfg), req))

	req.Params.Arguments = map[string]any{"author": "Grace"}
	assert.Equal(t, "Grace", editAuthor(extension.NewContext(svc, cfg), req))
}

func TestMCPTools(t *testing.T) {
	tools := (&Extension{}).MCPTools()
	require.Len(t, tools, 1)
	assert.Equal(t, "quire_edit", tools[0].Tool.Name)
}
