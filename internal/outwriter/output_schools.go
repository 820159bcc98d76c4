package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/internal/parquet"
	"github.com/pulseedu/schoolpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSchools outputs the tiered roster, dispatching based on the output format configured.
func WriteSchools(ranked []schema.EnrichedSchoolResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSchoolsJSONResults(ranked, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSchoolsCSVResults(ranked, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteSchoolTiersParquet(parquet.BuildSchoolTierRecords(ranked), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSchoolsTable(ranked, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSchoolsJSONResults handles opening the file and calling the JSON writer.
func writeSchoolsJSONResults(ranked []schema.EnrichedSchoolResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSchools(w, ranked)
	}, "Wrote JSON")
}

// writeSchoolsCSVResults handles opening the file and calling the CSV writer.
func writeSchoolsCSVResults(ranked []schema.EnrichedSchoolResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSchools(csvWriter, ranked, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeSchoolsTable generates and writes the human-readable table.
func writeSchoolsTable(ranked []schema.EnrichedSchoolResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "School", "Avg", "Tier"}
	if cfg.Detail {
		headers = append(headers, "Scored", "Students", "Principal", "Support")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxName := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, s := range ranked {
		row := []string{
			strconv.Itoa(s.Rank),
			contract.TruncateName(s.Name, maxName),
			fmtFloat(s.OverallAverage),
			formatTierCell(s.Tier, cfg),
		}
		if cfg.Detail {
			row = append(
				row,
				fmt.Sprintf(intFmt, s.ScoredMetrics),
				fmt.Sprintf(intFmt, s.Students),
				contract.TruncateName(s.Principal, 20),
				string(s.SupportLevel),
			)
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

	// Compute summary stats
	totalStudents := 0
	for _, s := range ranked {
		totalStudents += s.Students
	}
	if _, err := fmt.Fprintf(writer, "Showing %d schools (students covered: %d)\n", len(ranked), totalStudents); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForSchools writes the tiered roster in CSV format.
func writeCSVResultsForSchools(w *csv.Writer, ranked []schema.EnrichedSchoolResult, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"rank",
		"id",
		"school",
		"average",
		"tier",
		"scored_metrics",
		"students",
		"principal",
		"support_level",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range ranked {
		rec := []string{
			strconv.Itoa(s.Rank),
			strconv.Itoa(s.ID),
			s.Name,
			fmtFloat(s.OverallAverage),
			s.Label,
			fmt.Sprintf(intFmt, s.ScoredMetrics),
			fmt.Sprintf(intFmt, s.Students),
			s.Principal,
			string(s.SupportLevel),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForSchools writes the tiered roster in JSON format.
func writeJSONResultsForSchools(w io.Writer, ranked []schema.EnrichedSchoolResult) error {
	return writeJSON(w, ranked)
}
