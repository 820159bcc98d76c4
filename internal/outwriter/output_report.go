package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

// WriteReportCards outputs report cards, dispatching based on the output format configured.
func WriteReportCards(cards []schema.ReportCard, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeReportCardsJSONResults(cards, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeReportCardsCSVResults(cards, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for report. use text, csv or json")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCardsText(cards, cfg, fmtFloat, w)
		}, "Wrote report")
	}
	return nil
}

// writeReportCardsJSONResults handles opening the file and calling the JSON writer.
func writeReportCardsJSONResults(cards []schema.ReportCard, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, cards)
	}, "Wrote JSON")
}

// writeReportCardsCSVResults handles opening the file and calling the CSV writer.
func writeReportCardsCSVResults(cards []schema.ReportCard, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForReportCards(csvWriter, cards, fmtFloat)
	}, "Wrote CSV")
}

// writeReportCardsText renders one bordered panel per report card.
func writeReportCardsText(cards []schema.ReportCard, cfg *contract.Config, fmtFloat func(float64) string, w io.Writer) error {
	for _, card := range cards {
		panel := renderReportCard(card, cfg, fmtFloat)
		if _, err := fmt.Fprintln(w, panel); err != nil {
			return err
		}
	}
	return nil
}

// renderReportCard lays out a single report card inside a rounded
// border. Colors and emojis follow the configured switches.
func renderReportCard(card schema.ReportCard, cfg *contract.Config, fmtFloat func(float64) string) string {
	titleStyle := lipgloss.NewStyle()
	if cfg.UseColors {
		titleStyle = titleStyle.Bold(true)
	}
	title := card.SchoolName
	if cfg.UseEmojis {
		title = "🏫 " + title
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	meta := make([]string, 0, 3)
	if card.Principal != "" {
		meta = append(meta, "Principal: "+card.Principal)
	}
	meta = append(meta, fmt.Sprintf("Students: %d", card.Students))
	if card.SupportLevel != "" {
		meta = append(meta, "Support: "+string(card.SupportLevel))
	}
	b.WriteString(strings.Join(meta, "   "))
	b.WriteString("\n\n")

	tier := schema.GetTierLabel(card.Tier)
	if cfg.UseColors {
		tier = contract.GetColorTierLabel(card.Tier)
	}
	if cfg.UseEmojis {
		tier = tierGlyph(card.Tier) + " " + tier
	}
	b.WriteString(fmt.Sprintf("Tier: %s   Overall: %s\n", tier, fmtFloat(card.OverallAverage)))

	b.WriteString("\nDomain averages:\n")
	for _, cat := range cfg.Taxonomy.Categories {
		avg := card.DomainAverages[cat.Name]
		display := fmtFloat(avg)
		if avg == 0 {
			display = "no data"
		}
		b.WriteString(fmt.Sprintf("  %-20s %s\n", cat.Name, display))
	}

	b.WriteString("\nStrengths:\n")
	if len(card.Strengths) == 0 {
		b.WriteString("  none identified\n")
	}
	for _, s := range card.Strengths {
		line := "  + " + s
		if cfg.UseColors {
			line = contract.GoodColor.Sprint(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\nChallenges:\n")
	if len(card.Challenges) == 0 {
		b.WriteString("  none identified\n")
	}
	for _, c := range card.Challenges {
		line := "  - " + c.Text
		if cfg.UseColors {
			line = contract.MediumColor.Sprint(line)
		}
		b.WriteString(line + "\n")
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	return border.Render(strings.TrimRight(b.String(), "\n"))
}

// writeCSVResultsForReportCards writes report cards in CSV format, one
// row per school with strengths and challenges joined by pipes.
func writeCSVResultsForReportCards(w *csv.Writer, cards []schema.ReportCard, fmtFloat func(float64) string) error {
	header := []string{
		"school_id",
		"school",
		"principal",
		"tier",
		"overall_average",
		"students",
		"support_level",
		"strengths",
		"challenges",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, card := range cards {
		challenges := make([]string, len(card.Challenges))
		for i, c := range card.Challenges {
			challenges[i] = c.Text
		}
		rec := []string{
			strconv.Itoa(card.SchoolID),
			card.SchoolName,
			card.Principal,
			schema.GetTierLabel(card.Tier),
			fmtFloat(card.OverallAverage),
			strconv.Itoa(card.Students),
			string(card.SupportLevel),
			strings.Join(card.Strengths, "|"),
			strings.Join(challenges, "|"),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
