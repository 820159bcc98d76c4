package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pulseedu/schoolpulse/core"
	"github.com/pulseedu/schoolpulse/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleListSchools(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if wb := request.GetString("workbook", ""); wb != "" {
		cfg.Workbook = wb
	}
	if err := contract.RevalidateTier(cfg, request.GetString("tier", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid tier filter: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = l
	}

	ranked, err := core.GetSchoolResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleIdentifyIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if wb := request.GetString("workbook", ""); wb != "" {
		cfg.Workbook = wb
	}
	if err := contract.RevalidateIssues(cfg, request.GetString("issues", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid issue filter: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = l
	}

	ranked, err := core.GetIssueResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetReportCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.School = request.GetString("school", "")
	cfg.AllSchools = false
	if wb := request.GetString("workbook", ""); wb != "" {
		cfg.Workbook = wb
	}

	if err := contract.RevalidateReport(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}

	cards, err := core.GetReportCards(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(cards, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if wb := request.GetString("workbook", ""); wb != "" {
		cfg.Workbook = wb
	}

	result, err := core.GetSummaryResult(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
