package schema

// EnrichedSchoolResult adds presentation data to a SchoolForAnalysis.
type EnrichedSchoolResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	SchoolForAnalysis
}

// EnrichedIssueResult adds presentation data to an Issue.
type EnrichedIssueResult struct {
	Rank int `json:"rank"`
	Issue
}

// GetTierLabel returns a plain text label for a performance tier.
func GetTierLabel(tier PerformanceTier) string {
	switch tier {
	case TierExcellent:
		return "Excellent"
	case TierMedium:
		return "Medium"
	case TierLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// EnrichSchools adds rank and tier label to a list of analysis rows.
// Callers sort first; rank follows slice order.
func EnrichSchools(schools []SchoolForAnalysis) []EnrichedSchoolResult {
	output := make([]EnrichedSchoolResult, len(schools))
	for i, s := range schools {
		output[i] = EnrichedSchoolResult{
			Rank:              i + 1,
			Label:             GetTierLabel(s.Tier),
			SchoolForAnalysis: s,
		}
	}
	return output
}

// EnrichIssues adds rank to a list of identified issues.
func EnrichIssues(issues []Issue) []EnrichedIssueResult {
	output := make([]EnrichedIssueResult, len(issues))
	for i, issue := range issues {
		output[i] = EnrichedIssueResult{
			Rank:  i + 1,
			Issue: issue,
		}
	}
	return output
}
