package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pulseedu/schoolpulse/schema"
)

// Reserved workbook columns. Every other column must name a rubric
// metric key.
var reservedColumns = map[string]struct{}{
	"id":            {},
	"name":          {},
	"principal":     {},
	"students":      {},
	"support_level": {},
	"notes":         {},
}

// readCSVWorkbook parses a CSV roster: one row per school, reserved
// identity columns plus one column per assessed metric key.
func readCSVWorkbook(data []byte, tax *schema.Taxonomy) ([]schema.School, []schema.RowWarning, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	// Column counts vary in hand-edited sheets; pad short rows instead
	// of failing.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty workbook: no header row found")
		}
		return nil, nil, fmt.Errorf("read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
	}

	var warnings []schema.RowWarning
	for _, h := range headers {
		if _, ok := reservedColumns[h]; ok {
			continue
		}
		if !tax.HasMetric(h) {
			warnings = append(warnings, schema.RowWarning{
				Column:  h,
				Message: "unknown column, values ignored",
			})
		}
	}

	var schools []schema.School
	seen := make(map[int]struct{})
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			warnings = append(warnings, schema.RowWarning{
				Row:     row,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}
		if len(record) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, record)
			record = padded
		}

		school, rowWarnings, ok := buildCSVSchool(headers, record, row, tax)
		warnings = append(warnings, rowWarnings...)
		if !ok {
			continue
		}
		if _, dup := seen[school.ID]; dup {
			warnings = append(warnings, schema.RowWarning{
				Row:     row,
				Column:  "id",
				Message: fmt.Sprintf("duplicate school id %d, row skipped", school.ID),
			})
			continue
		}
		seen[school.ID] = struct{}{}
		schools = append(schools, school)
	}

	return schools, warnings, nil
}

// buildCSVSchool assembles one roster row from header-indexed cells.
// Rows without a usable id are dropped; bad cells degrade to unset.
func buildCSVSchool(headers, record []string, row int, tax *schema.Taxonomy) (schema.School, []schema.RowWarning, bool) {
	var warnings []schema.RowWarning
	school := schema.School{Scores: emptyScores(tax)}

	for i, header := range headers {
		if i >= len(record) {
			break
		}
		cell := strings.TrimSpace(record[i])
		switch header {
		case "id":
			id, err := strconv.Atoi(cell)
			if err != nil || id <= 0 {
				warnings = append(warnings, schema.RowWarning{
					Row:     row,
					Column:  "id",
					Message: fmt.Sprintf("invalid school id %q, row skipped", cell),
				})
				return schema.School{}, warnings, false
			}
			school.ID = id
		case "name":
			school.Name = cell
		case "principal":
			school.Principal = cell
		case "notes":
			school.Notes = cell
		case "students":
			if cell == "" {
				continue
			}
			students, err := strconv.Atoi(cell)
			if err != nil || students < 0 {
				warnings = append(warnings, schema.RowWarning{
					Row:     row,
					Column:  "students",
					Message: fmt.Sprintf("invalid student count %q, treated as unset", cell),
				})
				continue
			}
			school.Students = students
		case "support_level":
			level, ok := normalizeSupportLevel(cell)
			if !ok {
				warnings = append(warnings, schema.RowWarning{
					Row:     row,
					Column:  "support_level",
					Message: fmt.Sprintf("unknown support level %q, treated as unset", cell),
				})
				continue
			}
			school.SupportLevel = level
		default:
			if !tax.HasMetric(header) {
				continue
			}
			score, ok := NormalizeScore(cell)
			if !ok && cell != "" {
				warnings = append(warnings, schema.RowWarning{
					Row:     row,
					Column:  header,
					Message: fmt.Sprintf("invalid score %q, treated as not assessed", cell),
				})
			}
			school.Scores[header] = score
		}
	}

	if school.ID == 0 {
		warnings = append(warnings, schema.RowWarning{
			Row:     row,
			Column:  "id",
			Message: "missing school id, row skipped",
		})
		return schema.School{}, warnings, false
	}
	if school.Name == "" {
		warnings = append(warnings, schema.RowWarning{
			Row:     row,
			Column:  "name",
			Message: "missing school name",
		})
	}

	return school, warnings, true
}
