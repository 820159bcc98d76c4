package outwriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

func testCatalog() *schema.IssueCatalog {
	return &schema.IssueCatalog{
		Definitions: []schema.IssueDefinition{
			{
				ID:            "weak_foundational_skills",
				Title:         "Weak foundational skills",
				PrincipalGoal: "Raise reading and mathematics proficiency",
				Category:      schema.PedagogicalIssue,
			},
			{
				ID:            "unsafe_climate",
				Title:         "Unsafe climate",
				PrincipalGoal: "Make every student feel safe",
				Category:      schema.CommunityIssue,
			},
		},
		MetricSets: map[string][]string{
			// ghost_metric is not in the rubric and must be dropped
			"weak_foundational_skills": {"reading", "math", "ghost_metric"},
		},
	}
}

func rubricConfig() *contract.Config {
	return &contract.Config{
		Output:   schema.TextOut,
		Taxonomy: testTaxonomy(),
		Catalog:  testCatalog(),
	}
}

func TestBuildRubricRenderModel(t *testing.T) {
	model := buildRubricRenderModel(testTaxonomy(), testCatalog())

	assert.Equal(t, "Assessment Rubric", model.Title)
	assert.Contains(t, model.ScaleNote, "1 (critical) to 4 (excellent)")
	require.Len(t, model.Categories, 2)
	assert.Equal(t, "Teaching", model.Categories[0].Name)

	require.Len(t, model.Issues, 2)
	// Metric keys resolve to display names; unknown keys are dropped
	assert.Equal(t, []string{"Reading results", "Math results"}, model.Issues[0].Metrics)
	assert.Empty(t, model.Issues[1].Metrics)
}

func TestWriteRubricText(t *testing.T) {
	cfg := rubricConfig()
	model := buildRubricRenderModel(cfg.Taxonomy, cfg.Catalog)

	var buf bytes.Buffer
	err := writeRubricText(&buf, model, cfg)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Assessment Rubric")
	assert.Contains(t, output, "Unscored metrics are excluded")
	assert.Contains(t, output, "Teaching")
	assert.Contains(t, output, "  Basics (basics)")
	assert.Contains(t, output, "Reading results")
	assert.Contains(t, output, "  Safety (safety)")
	assert.Contains(t, output, "Issue Catalog")
	assert.Contains(t, output, "Weak foundational skills [pedagogical]")
	assert.Contains(t, output, "   Goal: Raise reading and mathematics proficiency")
	assert.Contains(t, output, "   Tracks: Reading results, Math results")
	assert.Contains(t, output, "   Tracks: none bound")
}

func TestWriteRubricTextEmojis(t *testing.T) {
	cfg := rubricConfig()
	cfg.UseEmojis = true
	model := buildRubricRenderModel(cfg.Taxonomy, cfg.Catalog)

	var buf bytes.Buffer
	err := writeRubricText(&buf, model, cfg)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "📚 Assessment Rubric")
	assert.Contains(t, buf.String(), "🔍 Issue Catalog")
}

func TestWriteCSVRubric(t *testing.T) {
	model := buildRubricRenderModel(testTaxonomy(), testCatalog())

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVRubric(w, model)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4) // header + 3 metrics

	assert.Equal(t, "category,subcategory,metric_key,metric_name", lines[0])
	assert.Equal(t, "Teaching,Basics,reading,Reading results", lines[1])
	assert.Equal(t, "Teaching,Basics,math,Math results", lines[2])
	assert.Equal(t, "Climate,Safety,safe_env,Student safety", lines[3])
}

func TestWriteRubricDispatchJSONToFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "rubric.json")

	cfg := rubricConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = outputFile

	err := WriteRubric(cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"title": "Assessment Rubric"`)
	assert.Contains(t, string(content), `"weak_foundational_skills"`)
}

func TestWriteRubricParquetUnsupported(t *testing.T) {
	cfg := rubricConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "rubric.parquet")

	err := WriteRubric(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parquet output is not supported for rubric")
}
