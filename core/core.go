// Package core has core logic for tiering, aggregation, issue
// identification and report cards.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pulseedu/schoolpulse/core/algo"
	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/internal/ingest"
	"github.com/pulseedu/schoolpulse/internal/outwriter"
	"github.com/pulseedu/schoolpulse/schema"
)

// ExecutorFunc defines the function signature for executing different analysis commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// GetAnalysisInput loads the workbook and projects every row through
// the tiering engine. Row warnings go to stderr so machine-readable
// output stays clean.
func GetAnalysisInput(_ context.Context, cfg *contract.Config) ([]schema.SchoolForAnalysis, error) {
	return loadAnalysisInput(ingest.NewWorkbookLoader(), cfg)
}

// loadAnalysisInput runs ingest and tiering against any roster source.
func loadAnalysisInput(loader contract.WorkbookLoader, cfg *contract.Config) ([]schema.SchoolForAnalysis, error) {
	schools, warnings, err := loader.Load(cfg.Workbook, cfg.Taxonomy)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		contract.LogWarn("workbook", w)
	}
	return ClassifySchools(schools, cfg.Taxonomy), nil
}

// GetSchoolResults returns the tiered roster ranked by overall average,
// after tier filtering and the result limit.
func GetSchoolResults(ctx context.Context, cfg *contract.Config) ([]schema.EnrichedSchoolResult, error) {
	schools, err := GetAnalysisInput(ctx, cfg)
	if err != nil {
		return nil, err
	}
	filtered := algo.RankSchools(schema.FilterByTier(schools, cfg.TierFilter), cfg.Limit)
	return schema.EnrichSchools(filtered), nil
}

// ExecutePulseSchools runs the roster analysis and prints results.
// It serves as the main entry point for the 'schools' command.
func ExecutePulseSchools(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ranked, err := GetSchoolResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteSchools(ranked, cfg, time.Since(start))
}

// GetIssueResults identifies systemic issues across the roster, ranked
// by urgency and capped at the result limit.
func GetIssueResults(ctx context.Context, cfg *contract.Config) ([]schema.EnrichedIssueResult, error) {
	schools, err := GetAnalysisInput(ctx, cfg)
	if err != nil {
		return nil, err
	}
	issues := IdentifyIssues(schools, cfg.IssueIDs, cfg.Catalog, cfg.Taxonomy, cfg.UrgencyWeights)
	if cfg.Limit > 0 && len(issues) > cfg.Limit {
		issues = issues[:cfg.Limit]
	}
	return schema.EnrichIssues(issues), nil
}

// ExecutePulseIssues runs issue identification and prints results.
// It serves as the main entry point for the 'issues' command.
func ExecutePulseIssues(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ranked, err := GetIssueResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteIssues(ranked, cfg, time.Since(start))
}

// GetReportCards builds report cards for the selected school, or for
// the whole roster ranked by overall average when AllSchools is set.
func GetReportCards(ctx context.Context, cfg *contract.Config) ([]schema.ReportCard, error) {
	schools, err := GetAnalysisInput(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AllSchools {
		ranked := algo.RankSchools(schools, 0)
		cards := make([]schema.ReportCard, len(ranked))
		for i, s := range ranked {
			cards[i] = BuildReportCard(s, cfg.Taxonomy, cfg.Catalog)
		}
		return cards, nil
	}
	s, ok := schema.FindSchool(schools, cfg.School)
	if !ok {
		return nil, fmt.Errorf("no school matches %q (use an id or exact name)", cfg.School)
	}
	return []schema.ReportCard{BuildReportCard(s, cfg.Taxonomy, cfg.Catalog)}, nil
}

// ExecutePulseReport builds and prints report cards.
// It serves as the main entry point for the 'report' command.
func ExecutePulseReport(ctx context.Context, cfg *contract.Config) error {
	cards, err := GetReportCards(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteReportCards(cards, cfg)
}

// GetSummaryResult computes the network-wide headline numbers, domain
// averages and systemic strengths.
func GetSummaryResult(ctx context.Context, cfg *contract.Config) (*schema.SummaryResult, error) {
	schools, err := GetAnalysisInput(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &schema.SummaryResult{
		Summary:        BuildSummary(schools),
		DomainAverages: CategoryAverages(cfg.Taxonomy, schools),
		Strengths:      SystemicStrengths(cfg.Taxonomy, schools),
	}, nil
}

// ExecutePulseSummary prints the network summary.
// It serves as the main entry point for the 'summary' command.
func ExecutePulseSummary(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetSummaryResult(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteSummary(result, cfg, time.Since(start))
}

// GetNetworkAnalysis runs the full pipeline once and bundles every
// product for export: ranked roster, ranked issues, summary, strengths
// and one report card per school.
func GetNetworkAnalysis(ctx context.Context, cfg *contract.Config) (*schema.NetworkAnalysis, error) {
	schools, err := GetAnalysisInput(ctx, cfg)
	if err != nil {
		return nil, err
	}
	issues := IdentifyIssues(schools, cfg.IssueIDs, cfg.Catalog, cfg.Taxonomy, cfg.UrgencyWeights)

	ranked := make([]schema.SchoolForAnalysis, len(schools))
	copy(ranked, schools)
	ranked = algo.RankSchools(ranked, 0)

	cards := make([]schema.ReportCard, len(ranked))
	for i, s := range ranked {
		cards[i] = BuildReportCard(s, cfg.Taxonomy, cfg.Catalog)
	}

	return &schema.NetworkAnalysis{
		ReportID:       uuid.NewString(),
		GeneratedAt:    time.Now(),
		Summary:        BuildSummary(schools),
		DomainAverages: CategoryAverages(cfg.Taxonomy, schools),
		Schools:        schema.EnrichSchools(ranked),
		Issues:         schema.EnrichIssues(issues),
		Strengths:      SystemicStrengths(cfg.Taxonomy, schools),
		ReportCards:    cards,
	}, nil
}

// ExecutePulseExport writes the full analysis as a standalone artifact,
// an HTML report by default or JSON when requested.
// It serves as the main entry point for the 'export' command.
func ExecutePulseExport(ctx context.Context, cfg *contract.Config) error {
	analysis, err := GetNetworkAnalysis(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteAnalysisExport(analysis, cfg)
}

// ExecutePulseRubric displays the rubric tree and the issue catalog.
// This is a static display that does not require workbook analysis.
func ExecutePulseRubric(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteRubric(cfg)
}
