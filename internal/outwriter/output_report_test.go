package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

func reportCards() []schema.ReportCard {
	return []schema.ReportCard{
		{
			SchoolID:       12,
			SchoolName:     "Maple Street Elementary",
			Principal:      "Dana Whitfield",
			Tier:           schema.TierExcellent,
			OverallAverage: 3.64,
			DomainAverages: map[string]float64{"Teaching": 3.7, "Climate": 3.5},
			Strengths:      []string{"Reading results", "Student safety"},
			Challenges: []schema.Challenge{
				{SubCategory: "basics", Text: "Math results trail the network average"},
			},
			SupportLevel: schema.TargetedSupport,
			Students:     410,
		},
		{
			SchoolID:       7,
			SchoolName:     "Riverside Community School",
			Tier:           schema.TierLow,
			OverallAverage: 1.92,
			DomainAverages: map[string]float64{"Teaching": 1.9},
			Students:       525,
		},
	}
}

func reportConfig() *contract.Config {
	return &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		Taxonomy:  testTaxonomy(),
	}
}

func TestRenderReportCard(t *testing.T) {
	cfg := reportConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)

	panel := renderReportCard(reportCards()[0], cfg, fmtFloat)

	assert.Contains(t, panel, "╭") // rounded border
	assert.Contains(t, panel, "Maple Street Elementary")
	assert.Contains(t, panel, "Principal: Dana Whitfield")
	assert.Contains(t, panel, "Students: 410")
	assert.Contains(t, panel, "Support: targeted")
	assert.Contains(t, panel, "Tier: Excellent   Overall: 3.64")
	assert.Contains(t, panel, "Teaching             3.70")
	assert.Contains(t, panel, "Climate              3.50")
	assert.Contains(t, panel, "+ Reading results")
	assert.Contains(t, panel, "+ Student safety")
	assert.Contains(t, panel, "- Math results trail the network average")
	assert.NotContains(t, panel, "\x1b[") // no ANSI without colors
}

func TestRenderReportCardMinimal(t *testing.T) {
	cfg := reportConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)

	panel := renderReportCard(reportCards()[1], cfg, fmtFloat)

	// No principal line when none is recorded
	assert.NotContains(t, panel, "Principal:")
	assert.NotContains(t, panel, "Support:")
	assert.Contains(t, panel, "Tier: Low   Overall: 1.92")
	assert.Contains(t, panel, "Climate              no data")
	assert.Contains(t, panel, "none identified")
}

func TestRenderReportCardEmojis(t *testing.T) {
	cfg := reportConfig()
	cfg.UseEmojis = true
	fmtFloat, _ := createFormatters(cfg.Precision)

	panel := renderReportCard(reportCards()[0], cfg, fmtFloat)

	assert.Contains(t, panel, "🏫 Maple Street Elementary")
	assert.Contains(t, panel, "🟢 Excellent")
}

func TestWriteReportCardsText(t *testing.T) {
	cfg := reportConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeReportCardsText(reportCards(), cfg, fmtFloat, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Maple Street Elementary")
	assert.Contains(t, output, "Riverside Community School")
}

func TestWriteCSVResultsForReportCards(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForReportCards(w, reportCards(), fmtFloat)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Equal(t, "school_id,school,principal,tier,overall_average,students,support_level,strengths,challenges", lines[0])
	assert.Equal(t, "12,Maple Street Elementary,Dana Whitfield,Excellent,3.64,410,targeted,Reading results|Student safety,Math results trail the network average", lines[1])
	assert.Equal(t, "7,Riverside Community School,,Low,1.92,525,,,", lines[2])
}

func TestWriteReportCardsDispatchJSONToFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "cards.json")

	cfg := reportConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = outputFile

	err := WriteReportCards(reportCards(), cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var cards []map[string]any
	require.NoError(t, json.Unmarshal(content, &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, float64(12), cards[0]["school_id"])
	assert.Equal(t, "Maple Street Elementary", cards[0]["school_name"])
}

func TestWriteReportCardsParquetUnsupported(t *testing.T) {
	cfg := reportConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "cards.parquet")

	err := WriteReportCards(reportCards(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parquet output is not supported for report")
}
