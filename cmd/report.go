package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseedu/schoolpulse/core"
	"github.com/pulseedu/schoolpulse/internal/contract"
)

// reportCmd builds per-school report cards.
var reportCmd = &cobra.Command{
	Use:   "report [workbook]",
	Short: "Build the report card for one school (or every school with --all).",
	Long: `Aggregate one school's scores into a report card: domain averages,
strengths and ready-made challenge phrasings from the issue catalog.

Strengths are the school's six best metrics at 3.2 or above. Challenges
come from metrics at 3.0 or below inside sub-categories averaging under
3.5, phrased for principal conversations.

Examples:
  # One school by id
  schoolpulse report assessments.csv --school 12

  # One school by exact name
  schoolpulse report assessments.csv --school "Maple Street Elementary"

  # Every school, best first, as JSON
  schoolpulse report assessments.csv --all --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: reportSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot build report card", err)
		}
	},
}
