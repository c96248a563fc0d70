// Package mcp exposes the analyzer over the Model Context Protocol, using a
// tool/handler split on top of github.com/mark3labs/mcp-go, narrowed to
// this domain's two operations.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers every bha MCP tool with s.
func RegisterTools(s *server.MCPServer, deps *Dependencies) {
	s.AddTool(mcp.NewTool("analyze_traces",
		mcp.WithDescription("Parse compiler trace files under a directory and return aggregated hotspot suggestions"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory containing compiler trace files")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recurse into subdirectories while collecting trace files (default: true)")),
	), deps.HandleAnalyzeTraces)

	s.AddTool(mcp.NewTool("anonymize_trace",
		mcp.WithDescription("Parse compiler trace files under a directory and return the result with paths and commit info anonymized"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory containing compiler trace files")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recurse into subdirectories while collecting trace files (default: true)")),
	), deps.HandleAnonymizeTrace)
}
