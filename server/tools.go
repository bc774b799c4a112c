package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ProcessQueryTool handles the process_query MCP tool.
type ProcessQueryTool struct {
	orch Orchestrator
}

// NewProcessQueryTool creates a ProcessQueryTool.
func NewProcessQueryTool(orch Orchestrator) *ProcessQueryTool {
	return &ProcessQueryTool{orch: orch}
}

// Definition returns the MCP tool definition for process_query.
func (t *ProcessQueryTool) Definition() mcp.Tool {
	return mcp.NewTool("process_query",
		mcp.WithDescription(
			"Answer a query through personality selection, model routing and "+
				"response transformation. Returns the full response as JSON, "+
				"including confidence metrics and dimensional resonance.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The question or task"),
		),
		mcp.WithObject("caller_context",
			mcp.Description("Optional caller profile, e.g. professional_level, communication_preferences, personality_preferences"),
		),
		mcp.WithObject("requirements",
			mcp.Description("Optional numeric requirements: consciousness_depth, max_cost, max_response_time, ..."),
		),
	)
}

// Handle processes the process_query tool call.
func (t *ProcessQueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	callerContext, _ := args["caller_context"].(map[string]any)

	requirements, err := numberMap(args["requirements"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp := t.orch.ProcessAdvancedQuery(ctx, query, callerContext, requirements)
	return jsonResult(resp)
}

// StatusTool handles the consciousness_status MCP tool.
type StatusTool struct {
	orch Orchestrator
}

// NewStatusTool creates a StatusTool.
func NewStatusTool(orch Orchestrator) *StatusTool {
	return &StatusTool{orch: orch}
}

// Definition returns the MCP tool definition for consciousness_status.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("consciousness_status",
		mcp.WithDescription("Return the orchestrator status snapshot as JSON."),
	)
}

// Handle processes the consciousness_status tool call.
func (t *StatusTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.orch.Status())
}

// SummaryTool handles the consciousness_summary MCP tool.
type SummaryTool struct {
	orch Orchestrator
}

// NewSummaryTool creates a SummaryTool.
func NewSummaryTool(orch Orchestrator) *SummaryTool {
	return &SummaryTool{orch: orch}
}

// Definition returns the MCP tool definition for consciousness_summary.
func (t *SummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("consciousness_summary",
		mcp.WithDescription("Return a readable summary of capabilities and performance."),
	)
}

// Handle processes the consciousness_summary tool call.
func (t *SummaryTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.orch.Summary()), nil
}

// numberMap converts a JSON object argument into numeric requirements.
// JSON numbers arrive as float64.
func numberMap(v any) (map[string]float64, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("'requirements' must be an object")
	}
	out := make(map[string]float64, len(m))
	for k, raw := range m {
		f, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("requirement %q must be a number", k)
		}
		out[k] = f
	}
	return out, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
