package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
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

// rankedSchools builds a two-school roster in display order.
func rankedSchools() []schema.EnrichedSchoolResult {
	return []schema.EnrichedSchoolResult{
		{
			Rank:  1,
			Label: "Excellent",
			SchoolForAnalysis: schema.SchoolForAnalysis{
				School: schema.School{
					ID:           12,
					Name:         "Maple Street Elementary",
					Principal:    "Dana Whitfield",
					Students:     410,
					SupportLevel: schema.TargetedSupport,
				},
				Tier:           schema.TierExcellent,
				OverallAverage: 3.64,
				ScoredMetrics:  18,
			},
		},
		{
			Rank:  2,
			Label: "Low",
			SchoolForAnalysis: schema.SchoolForAnalysis{
				School: schema.School{
					ID:        7,
					Name:      "Riverside Community School",
					Principal: "Marcus Obi",
					Students:  525,
				},
				Tier:           schema.TierLow,
				OverallAverage: 1.92,
				ScoredMetrics:  16,
			},
		},
	}
}

func TestWriteJSONResultsForSchools(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForSchools(&buf, rankedSchools())
	require.NoError(t, err)

	var result []map[string]any
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "Maple Street Elementary", result[0]["name"])
	assert.Equal(t, 3.64, result[0]["overall_average"])
	assert.Equal(t, "Excellent", result[0]["label"])
	assert.Equal(t, float64(2), result[1]["rank"])
	assert.Equal(t, "Low", result[1]["label"])
}

func TestWriteCSVResultsForSchools(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForSchools(w, rankedSchools(), fmtFloat, intFmt)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Equal(t, "rank,id,school,average,tier,scored_metrics,students,principal,support_level", lines[0])
	assert.Equal(t, "1,12,Maple Street Elementary,3.64,Excellent,18,410,Dana Whitfield,targeted", lines[1])
	assert.Equal(t, "2,7,Riverside Community School,1.92,Low,16,525,Marcus Obi,", lines[2])
}

func TestWriteCSVResultsForSchoolsEmpty(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForSchools(w, nil, fmtFloat, intFmt)
	require.NoError(t, err)
	w.Flush()

	// Header only
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "rank")
}

func TestWriteSchoolsTable(t *testing.T) {
	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		Detail:    true,
		UseColors: false,
		Width:     140,
	}

	fmtFloat, intFmt := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeSchoolsTable(rankedSchools(), cfg, fmtFloat, intFmt, 100*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Maple Street Elementary")
	assert.Contains(t, output, "3.64")
	assert.Contains(t, output, "Excellent")
	assert.Contains(t, output, "Dana Whitfield")
	assert.Contains(t, output, "targeted")
	assert.Contains(t, output, "Showing 2 schools (students covered: 935)")
	assert.Contains(t, output, "Analysis completed in 100ms")
}

func TestWriteSchoolsTableEmpty(t *testing.T) {
	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		Width:     80,
	}

	fmtFloat, intFmt := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeSchoolsTable(nil, cfg, fmtFloat, intFmt, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Showing 0 schools (students covered: 0)")
	assert.Contains(t, output, "Analysis completed in 5ms")
}

func TestWriteSchoolsDispatchJSONToFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "schools.json")
	cfg := &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: tmpFile,
		Precision:  2,
	}

	err := WriteSchools(rankedSchools(), cfg, 10*time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var result []map[string]any
	require.NoError(t, json.Unmarshal(content, &result))
	require.Len(t, result, 2)
	assert.Equal(t, "Riverside Community School", result[1]["name"])
}

func TestWriteSchoolsDispatchCSVToFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "schools.csv")
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: tmpFile,
		Precision:  1,
	}

	err := WriteSchools(rankedSchools(), cfg, 10*time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "3.6") // precision 1
}

func TestWriteSchoolsDispatchTableToFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "schools.txt")
	cfg := &contract.Config{
		Output:     schema.TextOut,
		OutputFile: tmpFile,
		Precision:  2,
		Width:      100,
	}

	err := WriteSchools(rankedSchools(), cfg, 10*time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Maple Street Elementary")
	assert.Contains(t, string(content), "Showing 2 schools")
}

func TestWriteSchoolsDispatchParquetToFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "schools.parquet")
	cfg := &contract.Config{
		Output:     schema.ParquetOut,
		OutputFile: tmpFile,
		Precision:  2,
	}

	err := WriteSchools(rankedSchools(), cfg, 10*time.Millisecond)
	require.NoError(t, err)

	info, err := os.Stat(tmpFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
