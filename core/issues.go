package core

import (
	"math"

	"github.com/pulseedu/schoolpulse/core/algo"
	"github.com/pulseedu/schoolpulse/schema"
)

// Issue scoring policy. A metric scores "low" at or below the ceiling.
// Issue-level severity buckets the urgency fraction with strict lower
// bounds; per-school severity buckets the low-metric percentage with
// inclusive cut points. The two scales are independent.
const (
	lowScoreCeiling = 2.0

	criticalUrgencyFloor = 0.4
	highUrgencyFloor     = 0.25
	mediumUrgencyFloor   = 0.1

	schoolCriticalPct = 70.0
	schoolHighPct     = 40.0
)

// IdentifyIssues scans the tiered roster against the catalog and
// returns identified issues ranked by urgency, most urgent first. An
// empty candidate list means every catalog entry. Issues affecting zero
// schools are dropped.
func IdentifyIssues(schools []schema.SchoolForAnalysis, candidates []string, catalog *schema.IssueCatalog, tax *schema.Taxonomy, weights map[schema.WeightKey]float64) []schema.Issue {
	if len(candidates) == 0 {
		candidates = catalog.IDs()
	}
	issues := make([]schema.Issue, 0, len(candidates))
	for _, id := range candidates {
		def, ok := catalog.Definition(id)
		if !ok {
			continue
		}
		if issue, ok := evaluateIssue(def, schools, catalog, tax, weights); ok {
			issues = append(issues, issue)
		}
	}
	return algo.RankIssues(issues, 0)
}

// resolveMetricSet intersects an issue's bound metric keys with the
// taxonomy, keeping binding order. Unknown keys drop out silently.
func resolveMetricSet(catalog *schema.IssueCatalog, tax *schema.Taxonomy, id string) []string {
	var keys []string
	for _, key := range catalog.MetricsFor(id) {
		if tax.HasMetric(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

func evaluateIssue(def schema.IssueDefinition, schools []schema.SchoolForAnalysis, catalog *schema.IssueCatalog, tax *schema.Taxonomy, weights map[schema.WeightKey]float64) (schema.Issue, bool) {
	keys := resolveMetricSet(catalog, tax, def.ID)
	if len(keys) == 0 {
		return schema.Issue{}, false
	}

	totalScores := 0
	totalLows := 0
	var details []schema.SchoolIssueDetail
	for _, s := range schools {
		var affected []string
		for _, key := range keys {
			v := s.Scores[key]
			if v <= 0 {
				continue
			}
			totalScores++
			if v <= lowScoreCeiling {
				totalLows++
				affected = append(affected, describeMetric(tax, key))
			}
		}
		if len(affected) == 0 {
			continue
		}
		pct := float64(len(affected)) / float64(len(keys)) * 100
		details = append(details, schema.SchoolIssueDetail{
			SchoolID:        s.ID,
			SchoolName:      s.Name,
			Tier:            s.Tier,
			Severity:        schoolSeverity(pct),
			Percentage:      pct,
			AffectedMetrics: affected,
		})
	}
	if len(details) == 0 {
		return schema.Issue{}, false
	}

	scope := float64(len(details)) / float64(len(schools))
	severityScore := float64(totalLows) / float64(max(totalScores, 1))
	fraction := weights[schema.WeightScope]*scope + weights[schema.WeightSeverity]*severityScore

	return schema.Issue{
		ID:               def.ID,
		Name:             def.Title,
		Description:      def.PrincipalGoal,
		Category:         def.Category,
		AffectedSchools:  len(details),
		TotalSchools:     len(schools),
		Severity:         issueSeverity(fraction),
		Urgency:          int(math.Round(fraction * 100)),
		ScopeScore:       scope,
		SeverityScore:    severityScore,
		SchoolDetails:    details,
		CategoryAverages: CategoryAverages(tax, schools),
		TierAverages:     TierCategoryAverages(tax, schools),
	}, true
}

// issueSeverity buckets the urgency fraction. Bounds are strict: a
// fraction of exactly 0.4 is high, not critical.
func issueSeverity(fraction float64) schema.Severity {
	switch {
	case fraction > criticalUrgencyFloor:
		return schema.SeverityCritical
	case fraction > highUrgencyFloor:
		return schema.SeverityHigh
	case fraction > mediumUrgencyFloor:
		return schema.SeverityMedium
	default:
		return schema.SeverityLow
	}
}

// schoolSeverity buckets the share of low metrics. Bounds are
// inclusive: exactly 70% is critical, exactly 40% is high.
func schoolSeverity(pct float64) schema.Severity {
	switch {
	case pct >= schoolCriticalPct:
		return schema.SeverityCritical
	case pct >= schoolHighPct:
		return schema.SeverityHigh
	default:
		return schema.SeverityMedium
	}
}

// describeMetric renders a metric key as "Sub-category: Metric name",
// matching the strengths format on report cards.
func describeMetric(tax *schema.Taxonomy, key string) string {
	if path, ok := tax.PathFor(key); ok {
		return path.SubCategory + ": " + path.Metric
	}
	return key
}
