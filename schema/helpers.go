package schema

import (
	"strconv"
	"strings"
)

// FindSchool resolves a selector against the roster. Numeric selectors
// match school ids, anything else matches names case-insensitively.
func FindSchool(schools []SchoolForAnalysis, selector string) (SchoolForAnalysis, bool) {
	sel := strings.TrimSpace(selector)
	if id, err := strconv.Atoi(sel); err == nil {
		for _, s := range schools {
			if s.ID == id {
				return s, true
			}
		}
		return SchoolForAnalysis{}, false
	}
	for _, s := range schools {
		if strings.EqualFold(s.Name, sel) {
			return s, true
		}
	}
	return SchoolForAnalysis{}, false
}

// FilterByTier returns the subset of rows in the given tier. A zero
// tier means no filter and returns the input unchanged.
func FilterByTier(schools []SchoolForAnalysis, tier PerformanceTier) []SchoolForAnalysis {
	if tier == 0 {
		return schools
	}
	var out []SchoolForAnalysis
	for _, s := range schools {
		if s.Tier == tier {
			out = append(out, s)
		}
	}
	return out
}
