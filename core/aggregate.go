package core

import (
	"sort"

	"github.com/pulseedu/schoolpulse/schema"
)

// topStrengthsLimit caps the systemic strengths list.
const topStrengthsLimit = 5

// mean returns the arithmetic mean, 0 for an empty slice. Callers treat
// 0 as "no data", never as a real score.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// groupScores flattens the set, positive scores for the given metric
// keys across every school in the set.
func groupScores(schools []schema.SchoolForAnalysis, keys []string) []float64 {
	var values []float64
	for _, s := range schools {
		for _, key := range keys {
			if v := s.Scores[key]; v > 0 {
				values = append(values, v)
			}
		}
	}
	return values
}

func subCategoryKeys(sub schema.SubCategory) []string {
	keys := make([]string, len(sub.Metrics))
	for i, m := range sub.Metrics {
		keys[i] = m.Key
	}
	return keys
}

func categoryKeys(cat schema.Category) []string {
	var keys []string
	for _, sub := range cat.SubCategories {
		keys = append(keys, subCategoryKeys(sub)...)
	}
	return keys
}

// CategoryAverage returns the mean score across all metrics of one
// category over the school set, 0 when nothing contributed.
func CategoryAverage(cat schema.Category, schools []schema.SchoolForAnalysis) float64 {
	return mean(groupScores(schools, categoryKeys(cat)))
}

// SubCategoryAverage returns the mean score across one sub-category
// over the school set, 0 when nothing contributed.
func SubCategoryAverage(sub schema.SubCategory, schools []schema.SchoolForAnalysis) float64 {
	return mean(groupScores(schools, subCategoryKeys(sub)))
}

// CategoryAverages computes the domain average for every category in
// taxonomy order, keyed by category name.
func CategoryAverages(tax *schema.Taxonomy, schools []schema.SchoolForAnalysis) map[string]float64 {
	averages := make(map[string]float64, len(tax.Categories))
	for _, cat := range tax.Categories {
		averages[cat.Name] = CategoryAverage(cat, schools)
	}
	return averages
}

// TierCategoryAverages computes domain averages for each tier subset of
// the school set, in tier display order.
func TierCategoryAverages(tax *schema.Taxonomy, schools []schema.SchoolForAnalysis) []schema.TierAverages {
	out := make([]schema.TierAverages, 0, len(schema.AllTiers))
	for _, tier := range schema.AllTiers {
		subset := schema.FilterByTier(schools, tier)
		out = append(out, schema.TierAverages{
			Tier:     tier,
			Averages: CategoryAverages(tax, subset),
		})
	}
	return out
}

// SystemicStrengths ranks sub-categories by network-wide average and
// keeps the strongest five. Sub-categories with no contributing scores
// are dropped; ties keep taxonomy order.
func SystemicStrengths(tax *schema.Taxonomy, schools []schema.SchoolForAnalysis) []schema.SubCategoryAverage {
	var entries []schema.SubCategoryAverage
	for _, cat := range tax.Categories {
		for _, sub := range cat.SubCategories {
			values := groupScores(schools, subCategoryKeys(sub))
			if len(values) == 0 {
				continue
			}
			entries = append(entries, schema.SubCategoryAverage{
				Key:      sub.Key,
				Name:     sub.Name,
				Category: cat.Name,
				Average:  mean(values),
				Samples:  len(values),
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Average > entries[j].Average
	})
	if len(entries) > topStrengthsLimit {
		entries = entries[:topStrengthsLimit]
	}
	return entries
}

// BuildSummary counts the headline numbers for the score table. Unset
// student counts contribute zero.
func BuildSummary(schools []schema.SchoolForAnalysis) schema.NetworkSummary {
	sum := schema.NetworkSummary{TotalSchools: len(schools)}
	for _, s := range schools {
		sum.TotalStudents += s.Students
		switch s.Tier {
		case schema.TierLow:
			sum.LowPerformanceCount++
		case schema.TierExcellent:
			sum.ExcellentCount++
		}
	}
	return sum
}
