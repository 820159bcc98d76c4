package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

// ExecutePulseCheck runs the check command for CI/CD gating.
// It analyzes the workbook, checks the results against the configured
// limits, and exits non-zero if any gate is violated.
func ExecutePulseCheck(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	schools, err := GetAnalysisInput(ctx, cfg)
	if err != nil {
		return err
	}
	issues := IdentifyIssues(schools, cfg.IssueIDs, cfg.Catalog, cfg.Taxonomy, cfg.UrgencyWeights)

	thresholds := schema.CheckThresholds{
		MaxUrgency:  cfg.MaxUrgency,
		MaxLowShare: cfg.MaxLowShare,
	}
	result := buildCheckResult(schools, issues, thresholds)

	printCheckResult(result, time.Since(start))
	if !result.Passed {
		fmt.Printf("%d violation(s) found\n", len(result.Violations))
		os.Exit(1)
	}
	return nil
}

// buildCheckResult evaluates both gates: peak issue urgency and the
// share of low-tier schools.
func buildCheckResult(schools []schema.SchoolForAnalysis, issues []schema.Issue, thresholds schema.CheckThresholds) *schema.CheckResult {
	result := &schema.CheckResult{
		TotalSchools: len(schools),
		TotalIssues:  len(issues),
		Thresholds:   thresholds,
	}

	for _, issue := range issues {
		if issue.Urgency > result.MaxUrgency {
			result.MaxUrgency = issue.Urgency
			result.MaxUrgencyIssue = issue.Name
		}
	}

	lowCount := 0
	for _, s := range schools {
		if s.Tier == schema.TierLow {
			lowCount++
		}
	}
	if len(schools) > 0 {
		result.LowShare = float64(lowCount) / float64(len(schools)) * 100
	}

	if result.MaxUrgency > thresholds.MaxUrgency {
		result.Violations = append(result.Violations, schema.CheckViolation{
			Gate:   "max-urgency",
			Detail: result.MaxUrgencyIssue,
			Value:  float64(result.MaxUrgency),
			Limit:  float64(thresholds.MaxUrgency),
		})
	}
	if result.LowShare > thresholds.MaxLowShare {
		result.Violations = append(result.Violations, schema.CheckViolation{
			Gate:   "max-low-share",
			Detail: fmt.Sprintf("%d of %d schools in the low tier", lowCount, len(schools)),
			Value:  result.LowShare,
			Limit:  thresholds.MaxLowShare,
		})
	}

	result.Passed = len(result.Violations) == 0
	return result
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(result *schema.CheckResult, duration time.Duration) {
	fmt.Println("Policy Check Results:")

	// Define labels and values for dynamic padding
	labels := []string{"Schools:", "Issues:", "Thresholds:"}
	values := []any{
		result.TotalSchools,
		result.TotalIssues,
		fmt.Sprintf("max-urgency=%d, max-low-share=%.1f%%",
			result.Thresholds.MaxUrgency, result.Thresholds.MaxLowShare),
	}

	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d schools in %v\n\n", result.TotalSchools, duration)

	if result.Passed {
		printCheckSuccess(result)
	} else {
		printCheckFailure(result)
	}
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(result *schema.CheckResult) {
	fmt.Printf("✅ All gates passed\n\n")
	fmt.Println("Values observed:")
	if result.MaxUrgencyIssue != "" {
		fmt.Printf("  urgency: max=%d (%s)\n", result.MaxUrgency, result.MaxUrgencyIssue)
	} else {
		fmt.Printf("  urgency: max=%d\n", result.MaxUrgency)
	}
	fmt.Printf("  low-tier share: %.1f%%\n", result.LowShare)
}

// printCheckFailure prints the failure case output.
func printCheckFailure(result *schema.CheckResult) {
	fmt.Printf("❌ Policy check failed: %d violation(s)\n\n", len(result.Violations))
	for _, v := range result.Violations {
		fmt.Printf("  - %s: %.1f > limit %.1f (%s)\n", v.Gate, v.Value, v.Limit, v.Detail)
	}
	fmt.Println()
}
