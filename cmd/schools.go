package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseedu/schoolpulse/core"
	"github.com/pulseedu/schoolpulse/internal/contract"
)

// schoolsCmd performs the tier classification analysis.
var schoolsCmd = &cobra.Command{
	Use:   "schools [workbook]",
	Short: "Rank schools by overall assessment average with tier labels.",
	Long: `Classify every school in the workbook into a performance tier and rank
the roster by overall average.

Each school's scored metrics are averaged across the rubric. Schools with
fewer than five scored metrics park in the middle tier instead of swinging
to an extreme on sparse data.

Use this to:
- See the network at a glance, best to worst
- Find the schools that need intervention first
- Pull tier subsets for targeted programs

Examples:
  # Rank the full roster
  schoolpulse schools assessments.csv

  # Only the struggling schools, with roster metadata
  schoolpulse schools assessments.csv --tier low --detail

  # Export the top ten to CSV for tracking
  schoolpulse schools assessments.csv --limit 10 --output csv --output-file tiers.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseSchools(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run schools analysis", err)
		}
	},
}
