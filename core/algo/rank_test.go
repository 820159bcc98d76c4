package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulseedu/schoolpulse/schema"
)

func row(id int, name string, avg float64) schema.SchoolForAnalysis {
	return schema.SchoolForAnalysis{
		School:         schema.School{ID: id, Name: name},
		OverallAverage: avg,
	}
}

// TestRankSchools tests roster ranking logic.
func TestRankSchools(t *testing.T) {
	schools := []schema.SchoolForAnalysis{
		row(3, "Cedar", 2.5),
		row(1, "Aspen", 3.8),
		row(2, "Birch", 2.5),
		row(4, "Aspen", 2.5), // same name as id 1, ties on id
	}

	t.Run("rank and limit", func(t *testing.T) {
		ranked := RankSchools(schools, 2)
		assert.Equal(t, 2, len(ranked))
		assert.Equal(t, 1, ranked[0].ID)
		assert.Equal(t, 4, ranked[1].ID)
	})

	t.Run("ties fall back to name then id", func(t *testing.T) {
		ranked := RankSchools(schools, 0)
		assert.Equal(t, 1, ranked[0].ID)
		assert.Equal(t, 4, ranked[1].ID)
		assert.Equal(t, 2, ranked[2].ID)
		assert.Equal(t, 3, ranked[3].ID)
	})

	t.Run("limit exceeds length", func(t *testing.T) {
		ranked := RankSchools(schools, 10)
		assert.Equal(t, 4, len(ranked))
	})

	t.Run("averages in descending order", func(t *testing.T) {
		ranked := RankSchools(schools, 0)
		for i := 1; i < len(ranked); i++ {
			assert.LessOrEqual(t, ranked[i].OverallAverage, ranked[i-1].OverallAverage)
		}
	})
}

// TestRankIssues tests issue ranking logic.
func TestRankIssues(t *testing.T) {
	issues := []schema.Issue{
		{ID: "a", Urgency: 40},
		{ID: "b", Urgency: 75},
		{ID: "c", Urgency: 40},
		{ID: "d", Urgency: 90},
	}

	t.Run("rank and limit", func(t *testing.T) {
		ranked := RankIssues(issues, 2)
		assert.Equal(t, 2, len(ranked))
		assert.Equal(t, "d", ranked[0].ID)
		assert.Equal(t, "b", ranked[1].ID)
	})

	t.Run("equal urgencies keep input order", func(t *testing.T) {
		ranked := RankIssues(issues, 0)
		assert.Equal(t, "a", ranked[2].ID)
		assert.Equal(t, "c", ranked[3].ID)
	})

	t.Run("limit exceeds length", func(t *testing.T) {
		ranked := RankIssues(issues, 10)
		assert.Equal(t, 4, len(ranked))
	})
}
