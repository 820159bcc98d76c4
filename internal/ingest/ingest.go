// Package ingest reads school rosters from workbook files and
// normalizes every score cell before the analysis layer sees it.
package ingest

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pulseedu/schoolpulse/schema"
)

// Score bounds for a single assessed metric.
const (
	MinScore = 1.0
	MaxScore = 4.0
)

// WorkbookLoader reads CSV and JSON workbooks from the local
// filesystem.
type WorkbookLoader struct{}

// NewWorkbookLoader returns a loader for local workbook files.
func NewWorkbookLoader() *WorkbookLoader {
	return &WorkbookLoader{}
}

// Load reads the workbook at path, dispatching on the file extension.
// Every returned school carries one score slot per rubric metric, with
// 0 marking "not assessed". Warnings report rows and cells that were
// skipped or zeroed; only unreadable or unparsable files return an
// error.
func (l *WorkbookLoader) Load(path string, tax *schema.Taxonomy) ([]schema.School, []schema.RowWarning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read workbook: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVWorkbook(data, tax)
	case ".json":
		return readJSONWorkbook(data, tax)
	default:
		return nil, nil, fmt.Errorf("unsupported workbook format '%s'. must be a .csv or .json file", path)
	}
}

// NormalizeScore maps one raw score cell onto the normalized domain:
// a score within [1,4], or unset. Blank cells are unset silently;
// non-numeric and out-of-range values are unset too, so the analysis
// layer never re-interprets raw strings.
func NormalizeScore(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	// NaN fails both comparisons below, so reject it explicitly.
	if math.IsNaN(v) || v < MinScore || v > MaxScore {
		return 0, false
	}
	return v, true
}

// emptyScores returns a score map with one unset slot per rubric
// metric. Every School row carries the full slot set regardless of
// which columns the workbook provides.
func emptyScores(tax *schema.Taxonomy) map[string]float64 {
	scores := make(map[string]float64, tax.MetricCount())
	for _, key := range tax.MetricKeys() {
		scores[key] = 0
	}
	return scores
}

// normalizeSupportLevel parses a support level cell, returning the
// empty level for blanks and a warning flag for unknown values.
func normalizeSupportLevel(raw string) (schema.SupportLevel, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", true
	}
	level := schema.SupportLevel(s)
	if _, ok := schema.ValidSupportLevels[level]; !ok {
		return "", false
	}
	return level, true
}
