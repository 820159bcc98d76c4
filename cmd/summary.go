package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseedu/schoolpulse/core"
	"github.com/pulseedu/schoolpulse/internal/contract"
)

// summaryCmd prints the network-wide summary.
var summaryCmd = &cobra.Command{
	Use:   "summary [workbook]",
	Short: "Summarize the network: headline counts, domain averages, strengths.",
	Long: `Roll the whole roster up into headline numbers: school and student
counts, tier distribution, per-domain averages and the systemic strengths
worth protecting.

Examples:
  # Network overview
  schoolpulse summary assessments.csv

  # Machine-readable for a dashboard
  schoolpulse summary assessments.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseSummary(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run summary analysis", err)
		}
	},
}
