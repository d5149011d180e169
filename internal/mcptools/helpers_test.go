package mcptools

import (
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/graphstore"
)

func TestTextResult_FormatsContent(t *testing.T) {
	result := textResult("found %d related memories", 3)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "found 3 related memories", text.Text)
	assert.False(t, result.IsError)
}

func TestErrResult_MarksErrorAndEchoesMessage(t *testing.T) {
	result, structured, err := errResult(errors.New("memory not found"))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "memory not found", text.Text)
	assert.Equal(t, map[string]any{"error": "memory not found"}, structured)
}

func TestToMaps_ConvertsRecordsPreservingContent(t *testing.T) {
	rows := []graphstore.Record{
		{"id": "m1", "content": "alpha"},
		{"id": "m2", "content": "beta"},
	}
	out := toMaps(rows)
	require.Len(t, out, 2)
	assert.Equal(t, "alpha", out[0]["content"])
	assert.Equal(t, "m2", out[1]["id"])
}

func TestToMaps_EmptyInput(t *testing.T) {
	out := toMaps([]graphstore.Record{})
	assert.Empty(t, out)
}
