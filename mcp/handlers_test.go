package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gregorian-09/buildhotspot/internal/config"
	"github.com/gregorian-09/buildhotspot/mcp"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTraceFile(t *testing.T, dir string) {
	t.Helper()
	content := `{
		"traceEvents": [
			{"name": "Total Frontend", "dur": 600000},
			{"name": "Total Backend", "dur": 100000}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.json"), []byte(content), 0o644))
}

func newRequest(args map[string]interface{}) mcplib.CallToolRequest {
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestHandleAnalyzeTraces_MissingPath(t *testing.T) {
	deps := mcp.NewDependencies(config.Default(), nil)

	result, err := deps.HandleAnalyzeTraces(context.Background(), newRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleAnalyzeTraces_NonExistentPath(t *testing.T) {
	deps := mcp.NewDependencies(config.Default(), nil)

	result, err := deps.HandleAnalyzeTraces(context.Background(), newRequest(map[string]interface{}{
		"path": "/no/such/directory",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleAnalyzeTraces_Success(t *testing.T) {
	dir := t.TempDir()
	writeTraceFile(t, dir)

	deps := mcp.NewDependencies(config.Default(), nil)
	result, err := deps.HandleAnalyzeTraces(context.Background(), newRequest(map[string]interface{}{
		"path":      dir,
		"recursive": false,
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestHandleAnonymizeTrace_Success(t *testing.T) {
	dir := t.TempDir()
	writeTraceFile(t, dir)

	deps := mcp.NewDependencies(config.Default(), nil)
	result, err := deps.HandleAnonymizeTrace(context.Background(), newRequest(map[string]interface{}{
		"path":      dir,
		"recursive": false,
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
}
