package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseedu/schoolpulse/core"
	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

// exportCmd writes the full analysis as a standalone artifact.
var exportCmd = &cobra.Command{
	Use:   "export [workbook]",
	Short: "Export the full analysis as a standalone HTML report.",
	Long: `Run the complete pipeline once and write everything it produces into
a single artifact: tier roster, systemic issues with drill-down, network
summary, strengths and one report card per school.

The default output is a self-contained HTML file (` + schema.DefaultHTMLReport + `)
that can be mailed or dropped on a share without any server. Use
--output json for the same bundle as machine-readable data.

Examples:
  # HTML report in the working directory
  schoolpulse export assessments.csv

  # HTML report at a chosen path
  schoolpulse export assessments.csv --output-file reports/spring.html

  # The full bundle as JSON
  schoolpulse export assessments.csv --output json --output-file analysis.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseExport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot export analysis", err)
		}
	},
}
