package ingest

import (
	"fmt"
	"strings"

	"github.com/pulseedu/schoolpulse/schema"
	"github.com/tidwall/gjson"
)

// readJSONWorkbook parses a JSON roster: a top-level array of school
// objects, or an object carrying a "schools" array. Scores live in a
// nested object keyed by metric key.
func readJSONWorkbook(data []byte, tax *schema.Taxonomy) ([]schema.School, []schema.RowWarning, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, fmt.Errorf("invalid JSON workbook")
	}

	rows := gjson.ParseBytes(data)
	if rows.IsObject() {
		rows = rows.Get("schools")
	}
	if !rows.IsArray() {
		return nil, nil, fmt.Errorf("JSON workbook must be an array of schools or an object with a 'schools' array")
	}

	var schools []schema.School
	var warnings []schema.RowWarning
	seen := make(map[int]struct{})
	row := 0
	rows.ForEach(func(_, item gjson.Result) bool {
		row++
		school, rowWarnings, ok := buildJSONSchool(item, row, tax)
		warnings = append(warnings, rowWarnings...)
		if !ok {
			return true
		}
		if _, dup := seen[school.ID]; dup {
			warnings = append(warnings, schema.RowWarning{
				Row:     row,
				Column:  "id",
				Message: fmt.Sprintf("duplicate school id %d, entry skipped", school.ID),
			})
			return true
		}
		seen[school.ID] = struct{}{}
		schools = append(schools, school)
		return true
	})

	return schools, warnings, nil
}

// buildJSONSchool assembles one roster entry. Entries without a usable
// id are dropped; bad fields degrade to unset.
func buildJSONSchool(item gjson.Result, row int, tax *schema.Taxonomy) (schema.School, []schema.RowWarning, bool) {
	var warnings []schema.RowWarning
	if !item.IsObject() {
		warnings = append(warnings, schema.RowWarning{
			Row:     row,
			Message: "entry is not an object, skipped",
		})
		return schema.School{}, warnings, false
	}

	id := item.Get("id")
	if !id.Exists() || id.Int() <= 0 {
		warnings = append(warnings, schema.RowWarning{
			Row:     row,
			Column:  "id",
			Message: fmt.Sprintf("invalid school id %q, entry skipped", id.String()),
		})
		return schema.School{}, warnings, false
	}

	school := schema.School{
		ID:        int(id.Int()),
		Name:      strings.TrimSpace(item.Get("name").String()),
		Principal: strings.TrimSpace(item.Get("principal").String()),
		Notes:     item.Get("notes").String(),
		Scores:    emptyScores(tax),
	}

	if students := item.Get("students"); students.Exists() {
		if n := students.Int(); n >= 0 {
			school.Students = int(n)
		} else {
			warnings = append(warnings, schema.RowWarning{
				Row:     row,
				Column:  "students",
				Message: fmt.Sprintf("invalid student count %q, treated as unset", students.String()),
			})
		}
	}

	if rawLevel := item.Get("support_level"); rawLevel.Exists() {
		level, ok := normalizeSupportLevel(rawLevel.String())
		if !ok {
			warnings = append(warnings, schema.RowWarning{
				Row:     row,
				Column:  "support_level",
				Message: fmt.Sprintf("unknown support level %q, treated as unset", rawLevel.String()),
			})
		} else {
			school.SupportLevel = level
		}
	}

	item.Get("scores").ForEach(func(key, value gjson.Result) bool {
		metric := key.String()
		if !tax.HasMetric(metric) {
			warnings = append(warnings, schema.RowWarning{
				Row:     row,
				Column:  metric,
				Message: "unknown metric key, value ignored",
			})
			return true
		}
		score, ok := NormalizeScore(value.String())
		if !ok && strings.TrimSpace(value.String()) != "" {
			warnings = append(warnings, schema.RowWarning{
				Row:     row,
				Column:  metric,
				Message: fmt.Sprintf("invalid score %q, treated as not assessed", value.String()),
			})
		}
		school.Scores[metric] = score
		return true
	})

	if school.Name == "" {
		warnings = append(warnings, schema.RowWarning{
			Row:     row,
			Column:  "name",
			Message: "missing school name",
		})
	}

	return school, warnings, true
}
