package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pulseedu/schoolpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		WorkbookStr: "roster.csv",
		Limit:       25,
		Precision:   2,
		Output:      "text",
		Emoji:       "yes",
		Color:       "yes",
		MaxUrgency:  schema.DefaultMaxUrgency,
		MaxLowShare: schema.DefaultMaxLowShare,
	}
}

func TestProcessAndValidate(t *testing.T) {
	floatPtr := func(v float64) *float64 { return &v }

	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
		},
		{
			name:   "empty workbook falls back to default",
			mutate: func(in *ConfigRawInput) { in.WorkbookStr = "" },
		},
		{
			name:        "unsupported workbook extension",
			mutate:      func(in *ConfigRawInput) { in.WorkbookStr = "roster.xlsx" },
			expectError: true,
		},
		{
			name:   "json workbook",
			mutate: func(in *ConfigRawInput) { in.WorkbookStr = "roster.json" },
		},
		{
			name:        "invalid output format",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "parquet output without file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name: "parquet output with file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "out.parquet"
			},
		},
		{
			name:   "zero limit means no limit",
			mutate: func(in *ConfigRawInput) { in.Limit = 0 },
		},
		{
			name:        "negative limit",
			mutate:      func(in *ConfigRawInput) { in.Limit = -1 },
			expectError: true,
		},
		{
			name:        "limit above maximum",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "precision too small",
			mutate:      func(in *ConfigRawInput) { in.Precision = 0 },
			expectError: true,
		},
		{
			name:        "precision too large",
			mutate:      func(in *ConfigRawInput) { in.Precision = 4 },
			expectError: true,
		},
		{
			name:        "invalid emoji flag",
			mutate:      func(in *ConfigRawInput) { in.Emoji = "maybe" },
			expectError: true,
		},
		{
			name:   "tier filter by name",
			mutate: func(in *ConfigRawInput) { in.Tier = "low" },
		},
		{
			name:        "invalid tier filter",
			mutate:      func(in *ConfigRawInput) { in.Tier = "bogus" },
			expectError: true,
		},
		{
			name:   "known issue candidates",
			mutate: func(in *ConfigRawInput) { in.Issues = "weak_foundational_skills, unsafe_climate" },
		},
		{
			name:        "unknown issue candidate",
			mutate:      func(in *ConfigRawInput) { in.Issues = "no_such_issue" },
			expectError: true,
		},
		{
			name: "school and all are mutually exclusive",
			mutate: func(in *ConfigRawInput) {
				in.School = "Aspen"
				in.AllSchools = true
			},
			expectError: true,
		},
		{
			name:        "max urgency above bound",
			mutate:      func(in *ConfigRawInput) { in.MaxUrgency = 101 },
			expectError: true,
		},
		{
			name:        "negative low share",
			mutate:      func(in *ConfigRawInput) { in.MaxLowShare = -0.1 },
			expectError: true,
		},
		{
			name: "custom weights summing to one",
			mutate: func(in *ConfigRawInput) {
				in.Weights = UrgencyWeightsRaw{Scope: floatPtr(0.7), Severity: floatPtr(0.3)}
			},
		},
		{
			name: "partial weight override breaking the sum",
			mutate: func(in *ConfigRawInput) {
				in.Weights = UrgencyWeightsRaw{Scope: floatPtr(0.9)}
			},
			expectError: true,
		},
		{
			name: "weight out of range",
			mutate: func(in *ConfigRawInput) {
				in.Weights = UrgencyWeightsRaw{Scope: floatPtr(1.4), Severity: floatPtr(-0.4)}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "roster.csv", cfg.Workbook)
	require.NotNil(t, cfg.Taxonomy)
	require.NotNil(t, cfg.Catalog)
	assert.Equal(t, schema.PerformanceTier(0), cfg.TierFilter)
	assert.Empty(t, cfg.IssueIDs)
	assert.InDelta(t, 0.6, cfg.UrgencyWeights[schema.WeightScope], 0.001)
	assert.InDelta(t, 0.4, cfg.UrgencyWeights[schema.WeightSeverity], 0.001)
	assert.True(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateCustomRubric(t *testing.T) {
	dir := t.TempDir()
	rubricPath := filepath.Join(dir, "rubric.yaml")
	rubric := `categories:
  - name: Teaching
    subcategories:
      - key: basics
        name: Basics
        metrics:
          - key: reading
            name: Reading results
`
	require.NoError(t, os.WriteFile(rubricPath, []byte(rubric), 0o644))

	input := validInput()
	input.Rubric = rubricPath

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 1, cfg.Taxonomy.MetricCount())
	assert.True(t, cfg.Taxonomy.HasMetric("reading"))
}

func TestProcessAndValidateMissingRubricFile(t *testing.T) {
	input := validInput()
	input.Rubric = filepath.Join(t.TempDir(), "missing.yaml")

	cfg := &Config{}
	assert.Error(t, ProcessAndValidate(cfg, input))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Issues = "weak_foundational_skills,unsafe_climate"
	require.NoError(t, ProcessAndValidate(cfg, input))

	clone := cfg.Clone()
	clone.IssueIDs[0] = "mutated"
	clone.UrgencyWeights[schema.WeightScope] = 0.9
	clone.School = "Aspen"

	assert.Equal(t, "weak_foundational_skills", cfg.IssueIDs[0])
	assert.InDelta(t, 0.6, cfg.UrgencyWeights[schema.WeightScope], 0.001)
	assert.Empty(t, cfg.School)

	// The rubric and catalog are shared, not copied.
	assert.Same(t, cfg.Taxonomy, clone.Taxonomy)
	assert.Same(t, cfg.Catalog, clone.Catalog)
}
