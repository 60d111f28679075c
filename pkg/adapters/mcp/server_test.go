package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ramp"
	"github.com/aretw0/ramp/pkg/domain"
)

func newTestServer(t *testing.T) (*Server, *ramp.Palette) {
	t.Helper()
	pal := ramp.New("mcp-test")
	t.Cleanup(pal.Close)
	return NewServer(pal), pal
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// textOf unwraps the single text payload of a tool result.
func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content type %T", res.Content[0])
	return tc.Text
}

func applyColorTool(t *testing.T, s *Server, at, hex string) {
	t.Helper()
	res, err := s.handleApply(context.Background(), callReq(map[string]any{
		"kind":  "insert-color",
		"at":    at,
		"color": hex,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, textOf(t, res))
}

func TestHandleApplyColor(t *testing.T) {
	s, pal := newTestServer(t)

	res, err := s.handleApply(context.Background(), callReq(map[string]any{
		"kind":  "insert-color",
		"at":    "0:0:0",
		"color": "#32324E",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, textOf(t, res))

	var summary domain.Summary
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &summary))
	assert.Equal(t, domain.OpInsertColor, summary.Kind)
	assert.Equal(t, []domain.Address{domain.NewAddress(0, 0, 0)}, summary.Affected)

	c, err := pal.ValueOf(domain.NewAddress(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "#32324E", c.Hex())
}

func TestHandleApplyRampAndQuery(t *testing.T) {
	s, _ := newTestServer(t)
	applyColorTool(t, s, "0:0:0", "#323250")
	applyColorTool(t, s, "0:0:1", "#0000FF")

	// JSON-RPC arguments arrive with float64 numbers.
	res, err := s.handleApply(context.Background(), callReq(map[string]any{
		"kind":  "insert-ramp",
		"at":    "0:1:0",
		"from":  "0:0:0",
		"to":    "0:0:1",
		"count": float64(6),
		"space": "hsv",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, textOf(t, res))

	var summary domain.Summary
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &summary))
	assert.Equal(t, domain.OpInsertRamp, summary.Kind)
	assert.Len(t, summary.Affected, 6)

	res, err = s.handleQuery(context.Background(), callReq(map[string]any{
		"match": "0:1:*",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, textOf(t, res))

	var entries []domain.Entry
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &entries))
	require.Len(t, entries, 6)
	for _, e := range entries {
		assert.Equal(t, 2, e.Order)
	}
}

func TestHandleApplyErrors(t *testing.T) {
	s, _ := newTestServer(t)
	applyColorTool(t, s, "0:0:0", "#010101")

	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{"Missing At", map[string]any{
			"kind": "insert-color", "color": "#010101",
		}, "invalid at"},
		{"Malformed At", map[string]any{
			"kind": "insert-color", "at": "0:0", "color": "#010101",
		}, "invalid at"},
		{"Bad Color", map[string]any{
			"kind": "insert-color", "at": "0:0:1", "color": "not-a-color",
		}, "invalid color"},
		{"Bad From", map[string]any{
			"kind": "insert-ramp", "at": "0:1:0", "from": "x", "to": "0:0:0", "count": float64(2),
		}, "invalid from"},
		{"Occupied", map[string]any{
			"kind": "insert-color", "at": "0:0:0", "color": "#020202",
		}, "apply failed"},
		{"Unknown Kind", map[string]any{
			"kind": "explode", "at": "0:0:1",
		}, "apply failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleApply(context.Background(), callReq(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, textOf(t, res), tt.wantMsg)
		})
	}
}

func TestHandleApplyForcedRemove(t *testing.T) {
	s, pal := newTestServer(t)
	applyColorTool(t, s, "0:0:0", "#000000")
	applyColorTool(t, s, "0:0:1", "#FFFFFF")

	res, err := s.handleApply(context.Background(), callReq(map[string]any{
		"kind":  "insert-ramp",
		"at":    "0:1:0",
		"from":  "0:0:0",
		"to":    "0:0:1",
		"count": float64(3),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, textOf(t, res))

	// Guarded without force, cascades with it.
	res, err = s.handleApply(context.Background(), callReq(map[string]any{
		"kind": "remove", "at": "0:0:0",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleApply(context.Background(), callReq(map[string]any{
		"kind": "remove", "at": "0:0:0", "force": true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, textOf(t, res))

	var summary domain.Summary
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &summary))
	assert.Len(t, summary.Affected, 4)
	assert.Equal(t, 1, pal.Describe().Elements)
}

func TestHandleQueryInvalidMatch(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleQuery(context.Background(), callReq(map[string]any{
		"match": "bogus",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "invalid match")
}

func TestHandleQueryEmptyPalette(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleQuery(context.Background(), callReq(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "[]", textOf(t, res))
}
