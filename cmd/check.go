package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseedu/schoolpulse/core"
	"github.com/pulseedu/schoolpulse/internal/contract"
)

// checkCmd focused on network health policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [workbook]",
	Short: "Enforce network health thresholds (fails with non-zero exit on violations)",
	Long: `Run the analysis and enforce health policy thresholds, failing with a
non-zero exit code when the network breaches them.

Designed for scheduled pipelines that watch a shared workbook - a district
dashboard job can fail loudly instead of shipping a quietly degrading
network.

Two gates, both strict (a value exactly at the threshold passes):
- Top issue urgency must not exceed --max-urgency (default 75)
- The share of low-tier schools must not exceed --max-low-share (default 40%)

Examples:
  # Gate with the default thresholds
  schoolpulse check assessments.csv

  # A stricter district
  schoolpulse check assessments.csv --max-urgency 60 --max-low-share 25`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Threshold violations exit inside ExecutePulseCheck
		if err := core.ExecutePulseCheck(rootCtx, cfg); err != nil {
			contract.LogFatal("Policy check failed", err)
		}
	},
}
