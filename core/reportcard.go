package core

import (
	"fmt"
	"sort"

	"github.com/pulseedu/schoolpulse/schema"
)

// Report card policy. Strengths are the school's best metrics at or
// above the strong floor. Challenges only surface inside sub-categories
// whose own average sits below the healthy line; a healthy sub-category
// suppresses all of its challenges, even for metrics scored 1.
const (
	strengthScoreFloor    = 3.2
	maxStrengths          = 6
	healthySubCategoryAvg = 3.5
	challengeScoreCeiling = 3.0
)

type scoredMetric struct {
	key   string
	score float64
}

// BuildReportCard assembles the derived snapshot for one school. It is
// recomputed on demand and never stored.
func BuildReportCard(s schema.SchoolForAnalysis, tax *schema.Taxonomy, catalog *schema.IssueCatalog) schema.ReportCard {
	card := schema.ReportCard{
		SchoolID:       s.ID,
		SchoolName:     s.Name,
		Principal:      s.Principal,
		Tier:           s.Tier,
		OverallAverage: s.OverallAverage,
		DomainAverages: make(map[string]float64, len(tax.Categories)),
		SupportLevel:   s.SupportLevel,
		Students:       s.Students,
	}

	for _, cat := range tax.Categories {
		var values []float64
		for _, key := range categoryKeys(cat) {
			if v := s.Scores[key]; v > 0 {
				values = append(values, v)
			}
		}
		card.DomainAverages[cat.Name] = mean(values)
	}

	card.Strengths = collectStrengths(s, tax)
	card.Challenges = collectChallenges(s, tax, catalog)
	return card
}

// collectStrengths picks the school's strongest metrics: best first,
// ties in taxonomy order, capped at maxStrengths.
func collectStrengths(s schema.SchoolForAnalysis, tax *schema.Taxonomy) []string {
	var strong []scoredMetric
	for _, key := range tax.MetricKeys() {
		if v := s.Scores[key]; v >= strengthScoreFloor {
			strong = append(strong, scoredMetric{key: key, score: v})
		}
	}
	sort.SliceStable(strong, func(i, j int) bool {
		return strong[i].score > strong[j].score
	})
	if len(strong) > maxStrengths {
		strong = strong[:maxStrengths]
	}
	out := make([]string, len(strong))
	for i, m := range strong {
		out[i] = describeMetric(tax, m.key)
	}
	return out
}

// collectChallenges walks every sub-category and emits one entry per
// scored metric at or below the challenge ceiling, unless the whole
// sub-category averages at or above the healthy line.
func collectChallenges(s schema.SchoolForAnalysis, tax *schema.Taxonomy, catalog *schema.IssueCatalog) []schema.Challenge {
	var challenges []schema.Challenge
	for _, cat := range tax.Categories {
		for _, sub := range cat.SubCategories {
			var scored []scoredMetric
			for _, m := range sub.Metrics {
				if v := s.Scores[m.Key]; v > 0 {
					scored = append(scored, scoredMetric{key: m.Key, score: v})
				}
			}
			if len(scored) == 0 {
				continue
			}
			values := make([]float64, len(scored))
			for i, m := range scored {
				values[i] = m.score
			}
			if mean(values) >= healthySubCategoryAvg {
				continue
			}
			for _, m := range scored {
				if m.score > challengeScoreCeiling {
					continue
				}
				challenges = append(challenges, schema.Challenge{
					SubCategory: sub.Name,
					Text:        challengeText(tax, catalog, m.key),
				})
			}
		}
	}
	return challenges
}

// challengeText prefers the catalog phrase for a metric, falling back
// to a generated one built from the metric display name.
func challengeText(tax *schema.Taxonomy, catalog *schema.IssueCatalog, key string) string {
	if text, ok := catalog.ChallengeFor(key); ok {
		return text
	}
	name := key
	if path, ok := tax.PathFor(key); ok {
		name = path.Metric
	}
	return fmt.Sprintf("Low performance on metric: %q", name)
}
