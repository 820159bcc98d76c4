package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

// WriteRubric displays the rubric tree and the issue catalog.
// This is a static display that does not require workbook analysis.
func WriteRubric(cfg *contract.Config) error {
	// Build the complete render model with all processed data
	renderModel := buildRubricRenderModel(cfg.Taxonomy, cfg.Catalog)

	switch cfg.Output {
	case schema.JSONOut:
		return writeRubricJSON(renderModel, cfg)
	case schema.CSVOut:
		return writeRubricCSV(renderModel, cfg)
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for rubric. use text, csv or json")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRubricText(w, renderModel, cfg)
		}, "Wrote text")
	}
}

// writeRubricText displays the rubric in human-readable text format.
func writeRubricText(w io.Writer, renderModel *schema.RubricRenderModel, cfg *contract.Config) error {
	header := sectionHeader("📚", renderModel.Title, cfg)
	if _, err := fmt.Fprintf(w, "%s\n", header); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "=================\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", renderModel.ScaleNote); err != nil {
		return err
	}

	for _, cat := range renderModel.Categories {
		if _, err := fmt.Fprintf(w, "%s\n", cat.Name); err != nil {
			return err
		}
		for _, sub := range cat.SubCategories {
			if _, err := fmt.Fprintf(w, "  %s (%s)\n", sub.Name, sub.Key); err != nil {
				return err
			}
			for _, m := range sub.Metrics {
				if _, err := fmt.Fprintf(w, "    %-24s %s\n", m.Key, m.Name); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}

	catalogHeader := sectionHeader("🔍", "Issue Catalog", cfg)
	if _, err := fmt.Fprintf(w, "%s\n", catalogHeader); err != nil {
		return err
	}
	for _, issue := range renderModel.Issues {
		if _, err := fmt.Fprintf(w, "%s [%s]\n", issue.Title, issue.Category); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Goal: %s\n", issue.PrincipalGoal); err != nil {
			return err
		}
		tracks := "none bound"
		if len(issue.Metrics) > 0 {
			tracks = strings.Join(issue.Metrics, ", ")
		}
		if _, err := fmt.Fprintf(w, "   Tracks: %s\n", tracks); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}

// writeRubricJSON displays the rubric in JSON format.
func writeRubricJSON(renderModel *schema.RubricRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, renderModel)
	}, "Wrote JSON")
}

// writeRubricCSV displays the rubric in CSV format: one row per metric,
// a blank scoring-sheet skeleton.
func writeRubricCSV(renderModel *schema.RubricRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		defer writer.Flush()
		return writeCSVRubric(writer, renderModel)
	}, "Wrote CSV")
}

// writeCSVRubric writes the rubric metric listing in CSV format.
func writeCSVRubric(w *csv.Writer, renderModel *schema.RubricRenderModel) error {
	header := []string{"category", "subcategory", "metric_key", "metric_name"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, cat := range renderModel.Categories {
		for _, sub := range cat.SubCategories {
			for _, m := range sub.Metrics {
				record := []string{cat.Name, sub.Name, m.Key, m.Name}
				if err := w.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
	}

	return nil
}

// buildRubricRenderModel constructs the complete render model with all processed data.
func buildRubricRenderModel(tax *schema.Taxonomy, catalog *schema.IssueCatalog) *schema.RubricRenderModel {
	issues := make([]schema.RubricIssueEntry, len(catalog.Definitions))
	for i, def := range catalog.Definitions {
		var metrics []string
		for _, key := range catalog.MetricsFor(def.ID) {
			if path, ok := tax.PathFor(key); ok {
				metrics = append(metrics, path.Metric)
			}
		}
		issues[i] = schema.RubricIssueEntry{
			IssueDefinition: def,
			Metrics:         metrics,
		}
	}

	return &schema.RubricRenderModel{
		Title:      "Assessment Rubric",
		ScaleNote:  "Scores run 1 (critical) to 4 (excellent). Unscored metrics are excluded from every average.",
		Categories: tax.Categories,
		Issues:     issues,
	}
}
