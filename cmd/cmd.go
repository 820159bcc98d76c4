// Package cmd defines the command-line interface for schoolpulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(schoolsCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rubricCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("rubric", "", "Path to a YAML rubric overriding the built-in taxonomy")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a YAML issue catalog overriding the built-in one")
	rootCmd.PersistentFlags().IntP("limit", "l", schema.DefaultLimit, "Number of results to display (0 = no limit)")
	rootCmd.PersistentFlags().StringP("tier", "t", "", "Filter schools by tier: excellent, medium, low or all")
	rootCmd.PersistentFlags().Int("precision", schema.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-school metadata (students, principal, support level)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of issuesCmd to Viper
	issuesCmd.Flags().String("issues", "", "Comma-separated issue ids to consider (defaults to the full catalog)")
	issuesCmd.Flags().Bool("explain", false, "Print the urgency formula and tier-level category averages per issue")
	if err := viper.BindPFlags(issuesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding issues flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().StringP("school", "s", "", "School id or exact name to build the report card for")
	reportCmd.Flags().Bool("all", false, "Build report cards for every school, ranked by overall average")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Int("max-urgency", schema.DefaultMaxUrgency, "Highest tolerated issue urgency before the gate fails")
	checkCmd.Flags().Float64("max-low-share", schema.DefaultMaxLowShare, "Highest tolerated percentage of low-tier schools")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}
}
