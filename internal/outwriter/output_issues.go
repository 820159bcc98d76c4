package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/internal/parquet"
	"github.com/pulseedu/schoolpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteIssues outputs the ranked issues, dispatching based on the output format configured.
func WriteIssues(ranked []schema.EnrichedIssueResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeIssuesJSONResults(ranked, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeIssuesCSVResults(ranked, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteIssuesParquet(parquet.BuildIssueRecords(ranked), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssuesTable(ranked, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeIssuesJSONResults handles opening the file and calling the JSON writer.
func writeIssuesJSONResults(ranked []schema.EnrichedIssueResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForIssues(w, ranked)
	}, "Wrote JSON")
}

// writeIssuesCSVResults handles opening the file and calling the CSV writer.
func writeIssuesCSVResults(ranked []schema.EnrichedIssueResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForIssues(csvWriter, ranked, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeIssuesTable generates and writes the human-readable table, with
// optional per-school drill-down and urgency breakdown sections.
func writeIssuesTable(ranked []schema.EnrichedIssueResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Issue", "Category", "Urgency", "Severity", "Schools"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, issue := range ranked {
		row := []string{
			strconv.Itoa(issue.Rank),
			contract.TruncateName(issue.Name, 40),
			string(issue.Category),
			strconv.Itoa(issue.Urgency),
			formatSeverityCell(issue.Severity, cfg),
			fmt.Sprintf("%d/%d", issue.AffectedSchools, issue.TotalSchools),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if cfg.Detail {
		if err := writeIssueDetails(ranked, cfg, writer); err != nil {
			return err
		}
	}
	if cfg.Explain {
		if err := writeIssueExplanations(ranked, cfg, fmtFloat, writer); err != nil {
			return err
		}
	}

	totalSchools := 0
	if len(ranked) > 0 {
		totalSchools = ranked[0].TotalSchools
	}
	if _, err := fmt.Fprintf(writer, "Showing %d issues across %d schools\n", len(ranked), totalSchools); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeIssueDetails prints one drill-down block per issue listing every
// affected school with its low-score share and the metrics involved.
func writeIssueDetails(ranked []schema.EnrichedIssueResult, cfg *contract.Config, writer io.Writer) error {
	for _, issue := range ranked {
		title := fmt.Sprintf("%s (%d of %d schools)", issue.Name, issue.AffectedSchools, issue.TotalSchools)
		if cfg.UseEmojis {
			title = severityGlyph(issue.Severity) + " " + title
		}
		if _, err := fmt.Fprintf(writer, "\n%s\n", title); err != nil {
			return err
		}
		for _, d := range issue.SchoolDetails {
			tier := schema.GetTierLabel(d.Tier)
			if cfg.UseColors {
				tier = contract.GetColorTierLabel(d.Tier)
			}
			sev := contract.GetPlainSeverityLabel(d.Severity)
			if cfg.UseColors {
				sev = contract.GetColorSeverityLabel(d.Severity)
			}
			line := fmt.Sprintf("  %-26s %-10s %-10s %3.0f%% of tracked metrics low",
				contract.TruncateName(d.SchoolName, 26), tier, sev, d.Percentage)
			if _, err := fmt.Fprintln(writer, line); err != nil {
				return err
			}
			if len(d.AffectedMetrics) > 0 {
				if _, err := fmt.Fprintf(writer, "      affected: %s\n", strings.Join(d.AffectedMetrics, ", ")); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// writeIssueExplanations prints the urgency formula and the per-tier
// category averages behind each issue.
func writeIssueExplanations(ranked []schema.EnrichedIssueResult, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	wScope := cfg.UrgencyWeights[schema.WeightScope]
	wSev := cfg.UrgencyWeights[schema.WeightSeverity]
	for _, issue := range ranked {
		if _, err := fmt.Fprintf(writer, "\n%s: urgency %d = 100 * (%.2f*%s + %.2f*%s)\n",
			issue.Name, issue.Urgency,
			wScope, fmtFloat(issue.ScopeScore),
			wSev, fmtFloat(issue.SeverityScore)); err != nil {
			return err
		}
		for _, ta := range issue.TierAverages {
			parts := formatCategoryAverages(ta.Averages, cfg.Taxonomy, fmtFloat)
			if parts == "" {
				parts = "no data"
			}
			if _, err := fmt.Fprintf(writer, "  %-9s %s\n", ta.Tier.String(), parts); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// formatCategoryAverages renders a category average map in taxonomy
// order, skipping categories without data.
func formatCategoryAverages(averages map[string]float64, tax *schema.Taxonomy, fmtFloat func(float64) string) string {
	var parts []string
	for _, cat := range tax.Categories {
		if avg, ok := averages[cat.Name]; ok && avg > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", cat.Name, fmtFloat(avg)))
		}
	}
	return strings.Join(parts, ", ")
}

// writeCSVResultsForIssues writes the ranked issues in CSV format.
func writeCSVResultsForIssues(w *csv.Writer, ranked []schema.EnrichedIssueResult, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"rank",
		"id",
		"issue",
		"category",
		"urgency",
		"severity",
		"affected_schools",
		"total_schools",
		"scope_score",
		"severity_score",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, issue := range ranked {
		rec := []string{
			strconv.Itoa(issue.Rank),
			issue.ID,
			issue.Name,
			string(issue.Category),
			fmt.Sprintf(intFmt, issue.Urgency),
			string(issue.Severity),
			fmt.Sprintf(intFmt, issue.AffectedSchools),
			fmt.Sprintf(intFmt, issue.TotalSchools),
			fmtFloat(issue.ScopeScore),
			fmtFloat(issue.SeverityScore),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForIssues writes the ranked issues in JSON format.
// School details and tier averages ride along on each issue.
func writeJSONResultsForIssues(w io.Writer, ranked []schema.EnrichedIssueResult) error {
	return writeJSON(w, ranked)
}
