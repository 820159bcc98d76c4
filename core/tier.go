package core

import "github.com/pulseedu/schoolpulse/schema"

// Tier policy. A school needs a minimum number of scored metrics before
// the thresholds apply; sparse rows park in the middle tier instead of
// swinging to an extreme.
const (
	minScoredMetrics     = 5
	lowTierCeiling       = 2.2
	excellentTierFloor   = 3.2
	criticalScoreCeiling = 1.5
	excellentCriticalMax = 2 // tier 1 requires fewer critical scores than this
)

// scoredValues collects the set, positive scores of one school in
// taxonomy order. Slots outside the taxonomy are ignored.
func scoredValues(s schema.School, tax *schema.Taxonomy) []float64 {
	values := make([]float64, 0, tax.MetricCount())
	for _, key := range tax.MetricKeys() {
		if v := s.Scores[key]; v > 0 {
			values = append(values, v)
		}
	}
	return values
}

// ClassifyTier buckets one school by its scored metrics. It is a total
// function: every input maps to a tier and there are no error cases.
func ClassifyTier(s schema.School, tax *schema.Taxonomy) schema.PerformanceTier {
	return classifyValues(scoredValues(s, tax))
}

func classifyValues(values []float64) schema.PerformanceTier {
	if len(values) < minScoredMetrics {
		return schema.TierMedium
	}
	avg := mean(values)
	critical := 0
	for _, v := range values {
		if v <= criticalScoreCeiling {
			critical++
		}
	}
	switch {
	case avg < lowTierCeiling:
		return schema.TierLow
	case avg > excellentTierFloor && critical < excellentCriticalMax:
		return schema.TierExcellent
	default:
		return schema.TierMedium
	}
}

// ClassifySchools projects every score-table row into its analysis
// form: tier plus roster aggregates. The projection is rebuilt from
// scratch on each call and the underlying rows are never written.
func ClassifySchools(schools []schema.School, tax *schema.Taxonomy) []schema.SchoolForAnalysis {
	out := make([]schema.SchoolForAnalysis, len(schools))
	for i, s := range schools {
		values := scoredValues(s, tax)
		out[i] = schema.SchoolForAnalysis{
			School:         s,
			Tier:           classifyValues(values),
			OverallAverage: mean(values),
			ScoredMetrics:  len(values),
		}
	}
	return out
}
