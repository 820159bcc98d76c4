package algo

import (
	"sort"

	"github.com/pulseedu/schoolpulse/schema"
)

// RankSchools sorts analysis rows by overall average in descending
// order and returns the top 'limit' rows. A limit of zero or less
// returns all rows in sorted order. Ties fall back to name, then id,
// so display order is stable across runs.
func RankSchools(schools []schema.SchoolForAnalysis, limit int) []schema.SchoolForAnalysis {
	sort.Slice(schools, func(i, j int) bool {
		if schools[i].OverallAverage == schools[j].OverallAverage {
			if schools[i].Name == schools[j].Name {
				return schools[i].ID < schools[j].ID
			}
			return schools[i].Name < schools[j].Name
		}
		return schools[i].OverallAverage > schools[j].OverallAverage
	})
	if limit > 0 && len(schools) > limit {
		return schools[:limit]
	}
	return schools
}

// RankIssues sorts issues by urgency in descending order and returns
// the top 'limit' issues. A limit of zero or less returns all issues.
// Equal urgencies keep their input order, so a roster scanned in
// catalog order stays in catalog order on ties.
func RankIssues(issues []schema.Issue, limit int) []schema.Issue {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Urgency > issues[j].Urgency
	})
	if limit > 0 && len(issues) > limit {
		return issues[:limit]
	}
	return issues
}
