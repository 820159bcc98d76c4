package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseedu/schoolpulse/core"
	"github.com/pulseedu/schoolpulse/internal/contract"
)

// issuesCmd identifies systemic issues across the roster.
var issuesCmd = &cobra.Command{
	Use:   "issues [workbook]",
	Short: "Identify systemic issues across the network, ranked by urgency.",
	Long: `Scan the roster against the issue catalog and rank every triggered
issue by urgency.

An issue triggers at a school as soon as any of its tracked metrics
scores low (2.0 or below) there. Urgency blends two signals into a
0-100 score:
- Scope: the share of schools affected
- Severity: the share of low scores among everything tracked

Use this to:
- Decide which network-wide program to fund next
- See exactly which schools drive each issue (--detail)
- Audit how an urgency score was computed (--explain)

Examples:
  # Rank all catalog issues
  schoolpulse issues assessments.csv

  # Only consider two candidate issues
  schoolpulse issues assessments.csv --issues weak_foundational_skills,unsafe_climate

  # Full drill-down with the scoring math
  schoolpulse issues assessments.csv --detail --explain`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseIssues(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run issues analysis", err)
		}
	},
}
