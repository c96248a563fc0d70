package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gregorian-09/buildhotspot/app"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandleAnalyzeTraces handles the analyze_traces tool.
func (d *Dependencies) HandleAnalyzeTraces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return d.runAnalysis(request, false)
}

// HandleAnonymizeTrace handles the anonymize_trace tool.
func (d *Dependencies) HandleAnonymizeTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return d.runAnalysis(request, true)
}

func (d *Dependencies) runAnalysis(request mcp.CallToolRequest, anonymize bool) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	recursive := true
	if r, ok := args["recursive"].(bool); ok {
		recursive = r
	}

	uc := app.NewAnalyzeUseCase(d.config, d.logger)
	resp, err := uc.Run(app.AnalyzeRequest{
		Root:      path,
		Recursive: recursive,
		Anonymize: anonymize,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatResponse(resp)), nil
}

func formatResponse(resp app.AnalyzeResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d compilation unit(s), total time %s\n",
		len(resp.Trace.CompilationUnits), resp.Analysis.TotalTime)

	if len(resp.ParseErrors) > 0 {
		fmt.Fprintf(&b, "%d file(s) failed to parse\n", len(resp.ParseErrors))
	}

	if len(resp.Suggestions) == 0 {
		b.WriteString("No suggestions.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d suggestion(s):\n", len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		fmt.Fprintf(&b, "- [%s] %s: %s (saves ~%s, confidence %.2f)\n",
			s.Priority, s.Type, s.Description, s.EstimatedSavings, s.Confidence)
	}
	return b.String()
}
