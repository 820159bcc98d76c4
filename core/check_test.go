package core

import (
	"testing"

	"github.com/pulseedu/schoolpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkRoster(tiers ...schema.PerformanceTier) []schema.SchoolForAnalysis {
	rows := make([]schema.SchoolForAnalysis, len(tiers))
	for i, tier := range tiers {
		rows[i] = schema.SchoolForAnalysis{
			School: schema.School{ID: i + 1, Name: "School"},
			Tier:   tier,
		}
	}
	return rows
}

func TestBuildCheckResultPasses(t *testing.T) {
	rows := checkRoster(schema.TierExcellent, schema.TierMedium, schema.TierMedium, schema.TierLow)
	issues := []schema.Issue{
		{Name: "Weak school climate", Urgency: 42},
		{Name: "Low academic results", Urgency: 61},
	}
	thresholds := schema.CheckThresholds{MaxUrgency: 75, MaxLowShare: 40}

	result := buildCheckResult(rows, issues, thresholds)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 4, result.TotalSchools)
	assert.Equal(t, 2, result.TotalIssues)
	assert.Equal(t, 61, result.MaxUrgency)
	assert.Equal(t, "Low academic results", result.MaxUrgencyIssue)
	assert.InDelta(t, 25.0, result.LowShare, 0.001)
}

func TestBuildCheckResultBoundaryPasses(t *testing.T) {
	// Values sitting exactly on the limits do not violate the gates.
	rows := checkRoster(schema.TierLow, schema.TierLow, schema.TierMedium, schema.TierMedium, schema.TierMedium)
	issues := []schema.Issue{{Name: "Low academic results", Urgency: 75}}
	thresholds := schema.CheckThresholds{MaxUrgency: 75, MaxLowShare: 40}

	result := buildCheckResult(rows, issues, thresholds)
	assert.True(t, result.Passed)
	assert.InDelta(t, 40.0, result.LowShare, 0.001)
}

func TestBuildCheckResultUrgencyViolation(t *testing.T) {
	rows := checkRoster(schema.TierMedium, schema.TierMedium)
	issues := []schema.Issue{{Name: "Low academic results", Urgency: 90}}
	thresholds := schema.CheckThresholds{MaxUrgency: 75, MaxLowShare: 40}

	result := buildCheckResult(rows, issues, thresholds)
	require.Len(t, result.Violations, 1)
	assert.False(t, result.Passed)

	v := result.Violations[0]
	assert.Equal(t, "max-urgency", v.Gate)
	assert.Equal(t, "Low academic results", v.Detail)
	assert.InDelta(t, 90, v.Value, 0.001)
	assert.InDelta(t, 75, v.Limit, 0.001)
}

func TestBuildCheckResultLowShareViolation(t *testing.T) {
	rows := checkRoster(schema.TierLow, schema.TierLow, schema.TierLow, schema.TierMedium)
	thresholds := schema.CheckThresholds{MaxUrgency: 75, MaxLowShare: 40}

	result := buildCheckResult(rows, nil, thresholds)
	require.Len(t, result.Violations, 1)
	assert.False(t, result.Passed)

	v := result.Violations[0]
	assert.Equal(t, "max-low-share", v.Gate)
	assert.Equal(t, "3 of 4 schools in the low tier", v.Detail)
	assert.InDelta(t, 75.0, v.Value, 0.001)
}

func TestBuildCheckResultBothViolations(t *testing.T) {
	rows := checkRoster(schema.TierLow)
	issues := []schema.Issue{{Name: "Low academic results", Urgency: 100}}
	thresholds := schema.CheckThresholds{MaxUrgency: 75, MaxLowShare: 40}

	result := buildCheckResult(rows, issues, thresholds)
	assert.False(t, result.Passed)
	assert.Len(t, result.Violations, 2)
}

func TestBuildCheckResultEmptyRoster(t *testing.T) {
	thresholds := schema.CheckThresholds{MaxUrgency: 75, MaxLowShare: 40}

	result := buildCheckResult(nil, nil, thresholds)
	assert.True(t, result.Passed)
	assert.Zero(t, result.LowShare)
	assert.Zero(t, result.MaxUrgency)
}
