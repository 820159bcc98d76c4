package outwriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

func summaryResult() *schema.SummaryResult {
	return &schema.SummaryResult{
		Summary: schema.NetworkSummary{
			TotalSchools:        10,
			TotalStudents:       4200,
			LowPerformanceCount: 3,
			ExcellentCount:      2,
		},
		DomainAverages: map[string]float64{"Teaching": 2.84, "Climate": 0},
		Strengths: []schema.SubCategoryAverage{
			{Key: "safety", Name: "Safety and wellbeing", Category: "Climate", Average: 3.52, Samples: 84},
		},
	}
}

func summaryConfig() *contract.Config {
	return &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		Taxonomy:  testTaxonomy(),
	}
}

func TestWriteSummaryText(t *testing.T) {
	cfg := summaryConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeSummaryText(summaryResult(), cfg, fmtFloat, 50*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Network Summary")
	assert.Contains(t, output, "===============")
	assert.Contains(t, output, "Schools:")
	assert.Contains(t, output, "Students:")
	assert.Contains(t, output, "4200")
	assert.Contains(t, output, "Low performance:  3 (30.0% of network)")
	assert.Contains(t, output, "Domain averages:")
	assert.Contains(t, output, "  Teaching             2.84")
	assert.Contains(t, output, "  Climate              no data")
	assert.Contains(t, output, "Systemic strengths:")
	assert.Contains(t, output, "  1. Safety and wellbeing (Climate)  3.52 over 84 scores")
	assert.Contains(t, output, "Analysis completed in 50ms")
}

func TestWriteSummaryTextNoStrengths(t *testing.T) {
	cfg := summaryConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)
	result := summaryResult()
	result.Strengths = nil

	var buf bytes.Buffer
	err := writeSummaryText(result, cfg, fmtFloat, 50*time.Millisecond, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Systemic strengths:\n  none identified")
}

func TestWriteSummaryTextEmojis(t *testing.T) {
	cfg := summaryConfig()
	cfg.UseEmojis = true
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeSummaryText(summaryResult(), cfg, fmtFloat, 50*time.Millisecond, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "📊 Network Summary")
}

func TestWriteCSVResultsForSummary(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForSummary(w, summaryResult(), testTaxonomy(), fmtFloat)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8) // header + 4 summary + 2 domains + 1 strength

	assert.Equal(t, "section,key,name,category,value,samples", lines[0])
	assert.Equal(t, "summary,total_schools,,,10,", lines[1])
	assert.Equal(t, "summary,total_students,,,4200,", lines[2])
	assert.Equal(t, "summary,low_performance_count,,,3,", lines[3])
	assert.Equal(t, "summary,excellent_count,,,2,", lines[4])
	assert.Equal(t, "domain,,,Teaching,2.84,", lines[5])
	assert.Equal(t, "domain,,,Climate,0.00,", lines[6])
	assert.Equal(t, "strength,safety,Safety and wellbeing,Climate,3.52,84", lines[7])
}

func TestWriteSummaryDispatchJSONToFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "summary.json")

	cfg := summaryConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = outputFile

	err := WriteSummary(summaryResult(), cfg, 50*time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"total_schools": 10`)
	assert.Contains(t, string(content), `"Teaching": 2.84`)
}

func TestWriteSummaryParquetUnsupported(t *testing.T) {
	cfg := summaryConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "summary.parquet")

	err := WriteSummary(summaryResult(), cfg, 50*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parquet output is not supported for summary")
}
