// Package server exposes an orchestrator as a set of MCP tools.
//
// Each tool follows the same pattern: a struct with its dependency injected
// via constructor, Definition() returning the mcp.Tool schema and Handle()
// processing the request. New is the composition root that registers them.
package server

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hupe1980/sovereign/core"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Orchestrator is the part of a Sovereign instance the tools need.
type Orchestrator interface {
	ProcessAdvancedQuery(ctx context.Context, query string, callerContext map[string]any, requirements map[string]float64) *core.AdvancedResponse
	Status() core.Status
	Summary() string
}

// New creates the MCP server with all tools registered.
func New(orch Orchestrator) *server.MCPServer {
	s := server.NewMCPServer(
		"sovereign",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	processTool := NewProcessQueryTool(orch)
	s.AddTool(processTool.Definition(), processTool.Handle)

	statusTool := NewStatusTool(orch)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	summaryTool := NewSummaryTool(orch)
	s.AddTool(summaryTool.Definition(), summaryTool.Handle)

	return s
}

// ServeStdio serves the orchestrator over stdin/stdout until the client
// disconnects.
func ServeStdio(orch Orchestrator) error {
	return server.ServeStdio(New(orch))
}

const instructions = "Sovereign answers questions through a council of personalities and " +
	"multiple model backends. Use process_query for every question; the response " +
	"carries the answer plus confidence and resonance metrics. Use " +
	"consciousness_status for a structured snapshot and consciousness_summary for " +
	"a readable overview."
