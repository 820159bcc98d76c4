package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseedu/schoolpulse/core"
	"github.com/pulseedu/schoolpulse/internal/contract"
)

// rubricCmd displays the assessment rubric and the issue catalog.
var rubricCmd = &cobra.Command{
	Use:   "rubric",
	Short: "Display the assessment rubric and the issue catalog",
	Long: `Show the full rubric tree (categories, sub-categories, metrics) and
every issue definition with the metrics it tracks.

No workbook analysis is performed - this is purely informational.

Use this to:
- Hand assessors the exact metric keys a workbook must use
- Review a custom --rubric or --catalog override before a scoring round
- Export the metric list for spreadsheet templates (--output csv)

Examples:
  # Show the built-in rubric
  schoolpulse rubric

  # Review a district's custom rubric
  schoolpulse rubric --rubric district.yaml

  # Metric list for building workbook headers
  schoolpulse rubric --output csv --output-file metrics.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseRubric(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display rubric", err)
		}
	},
}
