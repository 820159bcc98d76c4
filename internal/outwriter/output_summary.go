package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

// WriteSummary outputs the network summary, dispatching based on the output format configured.
func WriteSummary(result *schema.SummaryResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSummaryJSONResults(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSVResults(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for summary. use text, csv or json")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryText(result, cfg, fmtFloat, duration, w)
		}, "Wrote summary")
	}
	return nil
}

// writeSummaryJSONResults handles opening the file and calling the JSON writer.
func writeSummaryJSONResults(result *schema.SummaryResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeSummaryCSVResults handles opening the file and calling the CSV writer.
func writeSummaryCSVResults(result *schema.SummaryResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSummary(csvWriter, result, cfg.Taxonomy, fmtFloat)
	}, "Wrote CSV")
}

// writeSummaryText displays the summary in human-readable text format.
func writeSummaryText(result *schema.SummaryResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	header := sectionHeader("📊", "Network Summary", cfg)
	if _, err := fmt.Fprintf(w, "%s\n", header); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "===============\n\n"); err != nil {
		return err
	}

	s := result.Summary
	lowShare := 0.0
	if s.TotalSchools > 0 {
		lowShare = float64(s.LowPerformanceCount) / float64(s.TotalSchools) * 100
	}

	labels := []string{"Schools:", "Students:", "Low performance:", "Excellent:"}
	values := []string{
		strconv.Itoa(s.TotalSchools),
		strconv.Itoa(s.TotalStudents),
		fmt.Sprintf("%d (%.1f%% of network)", s.LowPerformanceCount, lowShare),
		strconv.Itoa(s.ExcellentCount),
	}
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %-*s %s\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nDomain averages:\n"); err != nil {
		return err
	}
	for _, cat := range cfg.Taxonomy.Categories {
		avg := result.DomainAverages[cat.Name]
		display := fmtFloat(avg)
		if avg == 0 {
			display = "no data"
		}
		if _, err := fmt.Fprintf(w, "  %-20s %s\n", cat.Name, display); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nSystemic strengths:\n"); err != nil {
		return err
	}
	if len(result.Strengths) == 0 {
		if _, err := fmt.Fprintf(w, "  none identified\n"); err != nil {
			return err
		}
	}
	for i, st := range result.Strengths {
		if _, err := fmt.Fprintf(w, "  %d. %s (%s)  %s over %d scores\n",
			i+1, st.Name, st.Category, fmtFloat(st.Average), st.Samples); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nAnalysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForSummary writes the summary in CSV format, one
// section column per row kind.
func writeCSVResultsForSummary(w *csv.Writer, result *schema.SummaryResult, tax *schema.Taxonomy, fmtFloat func(float64) string) error {
	header := []string{"section", "key", "name", "category", "value", "samples"}
	if err := w.Write(header); err != nil {
		return err
	}

	s := result.Summary
	headline := [][2]string{
		{"total_schools", strconv.Itoa(s.TotalSchools)},
		{"total_students", strconv.Itoa(s.TotalStudents)},
		{"low_performance_count", strconv.Itoa(s.LowPerformanceCount)},
		{"excellent_count", strconv.Itoa(s.ExcellentCount)},
	}
	for _, kv := range headline {
		if err := w.Write([]string{"summary", kv[0], "", "", kv[1], ""}); err != nil {
			return err
		}
	}

	for _, cat := range tax.Categories {
		rec := []string{"domain", "", "", cat.Name, fmtFloat(result.DomainAverages[cat.Name]), ""}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	for _, st := range result.Strengths {
		rec := []string{"strength", st.Key, st.Name, st.Category, fmtFloat(st.Average), strconv.Itoa(st.Samples)}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
