package core

import (
	"fmt"
	"testing"

	"github.com/pulseedu/schoolpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTaxonomy builds a small two-category rubric shared by the core tests.
func testTaxonomy() *schema.Taxonomy {
	return schema.NewTaxonomy([]schema.Category{
		{
			Name: "Teaching",
			SubCategories: []schema.SubCategory{
				{Key: "basics", Name: "Basics", Metrics: []schema.Metric{
					{Key: "reading", Name: "Reading results"},
					{Key: "math", Name: "Math results"},
					{Key: "writing", Name: "Writing results"},
				}},
				{Key: "practice", Name: "Practice", Metrics: []schema.Metric{
					{Key: "planning", Name: "Lesson planning"},
					{Key: "feedback", Name: "Feedback quality"},
				}},
			},
		},
		{
			Name: "Climate",
			SubCategories: []schema.SubCategory{
				{Key: "safety", Name: "Safety", Metrics: []schema.Metric{
					{Key: "safe_env", Name: "Student safety"},
					{Key: "attendance", Name: "Attendance"},
				}},
			},
		},
	})
}

func testSchool(id int, name string, scores map[string]float64) schema.School {
	return schema.School{ID: id, Name: name, Scores: scores}
}

func TestClassifyTier(t *testing.T) {
	tax := testTaxonomy()

	tests := []struct {
		name   string
		scores map[string]float64
		want   schema.PerformanceTier
	}{
		{
			name:   "two perfect scores default to medium",
			scores: map[string]float64{"reading": 4, "math": 4},
			want:   schema.TierMedium,
		},
		{
			name:   "four scores still insufficient",
			scores: map[string]float64{"reading": 4, "math": 4, "writing": 4, "planning": 4},
			want:   schema.TierMedium,
		},
		{
			name:   "five ones classify low",
			scores: map[string]float64{"reading": 1, "math": 1, "writing": 1, "planning": 1, "feedback": 1},
			want:   schema.TierLow,
		},
		{
			name:   "six scores with mean 1.5 classify low",
			scores: map[string]float64{"reading": 1, "math": 1, "writing": 1, "planning": 1, "feedback": 1, "safe_env": 4},
			want:   schema.TierLow,
		},
		{
			name:   "low average with zero critical scores still low",
			scores: map[string]float64{"reading": 2.1, "math": 2.1, "writing": 2.1, "planning": 2.1, "feedback": 2.1},
			want:   schema.TierLow,
		},
		{
			name:   "average exactly at low ceiling stays medium",
			scores: map[string]float64{"reading": 2, "math": 2, "writing": 2, "planning": 2, "feedback": 3},
			want:   schema.TierMedium,
		},
		{
			name:   "average exactly at excellent floor stays medium",
			scores: map[string]float64{"reading": 3, "math": 3, "writing": 3, "planning": 3, "feedback": 4},
			want:   schema.TierMedium,
		},
		{
			name:   "high average with clean record classifies excellent",
			scores: map[string]float64{"reading": 4, "math": 4, "writing": 4, "planning": 3, "feedback": 3},
			want:   schema.TierExcellent,
		},
		{
			name:   "high average with one critical score still excellent",
			scores: map[string]float64{"reading": 4, "math": 4, "writing": 4, "planning": 4, "feedback": 4, "safe_env": 4, "attendance": 1},
			want:   schema.TierExcellent,
		},
		{
			name: "high average with two critical scores demotes to medium",
			scores: map[string]float64{
				"reading": 4, "math": 4, "writing": 4, "planning": 4,
				"feedback": 4, "safe_env": 1, "attendance": 1.5,
			},
			want: schema.TierMedium,
		},
		{
			name: "unset and stray slots are ignored",
			scores: map[string]float64{
				"reading": 4, "math": 4, "writing": 4, "planning": 4, "feedback": 4,
				"safe_env": 0, "not_in_rubric": 1,
			},
			want: schema.TierExcellent,
		},
		{
			name:   "no scores at all default to medium",
			scores: map[string]float64{},
			want:   schema.TierMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTier(testSchool(1, "Test", tt.scores), tax)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifySchools(t *testing.T) {
	tax := testTaxonomy()
	schools := []schema.School{
		testSchool(1, "Aspen", map[string]float64{
			"reading": 4, "math": 4, "writing": 4, "planning": 3, "feedback": 3,
		}),
		testSchool(2, "Birch", map[string]float64{"reading": 2}),
		testSchool(3, "Cedar", map[string]float64{
			"reading": 1, "math": 1, "writing": 2, "planning": 2, "feedback": 1,
		}),
	}

	rows := ClassifySchools(schools, tax)
	require.Len(t, rows, 3)

	assert.Equal(t, schema.TierExcellent, rows[0].Tier)
	assert.InDelta(t, 3.6, rows[0].OverallAverage, 0.001)
	assert.Equal(t, 5, rows[0].ScoredMetrics)

	assert.Equal(t, schema.TierMedium, rows[1].Tier)
	assert.InDelta(t, 2.0, rows[1].OverallAverage, 0.001)
	assert.Equal(t, 1, rows[1].ScoredMetrics)

	assert.Equal(t, schema.TierLow, rows[2].Tier)
	assert.InDelta(t, 1.4, rows[2].OverallAverage, 0.001)

	// Projection keeps the rows themselves untouched and in order.
	for i, row := range rows {
		assert.Equal(t, schools[i], row.School)
	}
}

func BenchmarkClassifySchools(b *testing.B) {
	tax := schema.DefaultTaxonomy()
	schools := make([]schema.School, 200)
	for i := range schools {
		scores := make(map[string]float64, tax.MetricCount())
		for j, key := range tax.MetricKeys() {
			scores[key] = float64(1 + (i+j)%4)
		}
		schools[i] = testSchool(i+1, fmt.Sprintf("School %d", i+1), scores)
	}

	for b.Loop() {
		ClassifySchools(schools, tax)
	}
}
