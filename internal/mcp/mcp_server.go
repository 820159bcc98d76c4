// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pulseedu/schoolpulse/internal/contract"
)

// NewMCPServer initializes and configures the SchoolPulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"SchoolPulse Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: list_schools ---
	s.AddTool(mcp.NewTool("list_schools",
		mcp.WithDescription("Rank schools by overall assessment average with performance tier classification."),
		mcp.WithString("workbook", mcp.Description("Path to the roster workbook (defaults to the configured workbook if not specified).")),
		mcp.WithString("tier", mcp.Description("Tier filter (excellent, medium, low). Defaults to all tiers."), mcp.Enum("excellent", "medium", "low")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleListSchools)

	// --- 2. Tool: identify_issues ---
	s.AddTool(mcp.NewTool("identify_issues",
		mcp.WithDescription("Identify systemic issues across the school network, ranked by urgency."),
		mcp.WithString("workbook", mcp.Description("Path to the roster workbook.")),
		mcp.WithString("issues", mcp.Description("Comma-separated issue ids to consider. Defaults to the full catalog.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleIdentifyIssues)

	// --- 3. Tool: get_report_card ---
	s.AddTool(mcp.NewTool("get_report_card",
		mcp.WithDescription("Build the report card for one school: domain averages, strengths and challenges."),
		mcp.WithString("school", mcp.Description("School id or exact name."), mcp.Required()),
		mcp.WithString("workbook", mcp.Description("Path to the roster workbook.")),
	), h.handleGetReportCard)

	// --- 4. Tool: get_summary ---
	s.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Summarize the network: headline counts, domain averages and systemic strengths."),
		mcp.WithString("workbook", mcp.Description("Path to the roster workbook.")),
	), h.handleGetSummary)

	return s
}

// StartMCPServer starts the SchoolPulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
