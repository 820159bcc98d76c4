// Package schema has configs, models and global variables for all parts of schoolpulse.
package schema

import "fmt"

// Metric is one leaf rubric item, scored 1-4 on assessment day.
type Metric struct {
	Key  string `json:"key" yaml:"key"`   // Stable identifier, unique across the taxonomy
	Name string `json:"name" yaml:"name"` // Display label
}

// SubCategory groups related metrics under one improvement theme.
type SubCategory struct {
	Key     string   `json:"key" yaml:"key"`
	Name    string   `json:"name" yaml:"name"`
	Metrics []Metric `json:"metrics" yaml:"metrics"`
}

// Category is a top-level rubric domain.
type Category struct {
	Name          string        `json:"name" yaml:"name"`
	SubCategories []SubCategory `json:"subcategories" yaml:"subcategories"`
}

// MetricPath locates one metric inside the taxonomy tree.
type MetricPath struct {
	Category       string // Category display name
	SubCategory    string // Sub-category display name
	SubCategoryKey string
	Metric         string // Metric display name
}

// Taxonomy is the rubric tree plus a metric-key index built once at load.
// It is fixed for the lifetime of the process and never mutated after
// construction; lookups go through the index, not the tree.
type Taxonomy struct {
	Categories []Category

	paths map[string]MetricPath
	keys  []string
}

// NewTaxonomy builds the key index over the given categories.
// The first declaration of a duplicate key wins; Validate reports duplicates.
func NewTaxonomy(categories []Category) *Taxonomy {
	t := &Taxonomy{
		Categories: categories,
		paths:      make(map[string]MetricPath),
	}
	for _, cat := range categories {
		for _, sub := range cat.SubCategories {
			for _, m := range sub.Metrics {
				if _, ok := t.paths[m.Key]; ok {
					continue
				}
				t.paths[m.Key] = MetricPath{
					Category:       cat.Name,
					SubCategory:    sub.Name,
					SubCategoryKey: sub.Key,
					Metric:         m.Name,
				}
				t.keys = append(t.keys, m.Key)
			}
		}
	}
	return t
}

// PathFor returns the full path of a metric key.
func (t *Taxonomy) PathFor(key string) (MetricPath, bool) {
	p, ok := t.paths[key]
	return p, ok
}

// HasMetric reports whether the taxonomy declares the given metric key.
func (t *Taxonomy) HasMetric(key string) bool {
	_, ok := t.paths[key]
	return ok
}

// MetricKeys returns every metric key in taxonomy declaration order.
func (t *Taxonomy) MetricKeys() []string {
	return t.keys
}

// MetricCount returns the number of metrics in the taxonomy.
func (t *Taxonomy) MetricCount() int {
	return len(t.keys)
}

// School is one validated score-table row. Scores holds one slot per
// taxonomy metric key; zero means "not assessed" and is excluded from
// every average. The analysis pipeline only reads School values, it
// never mutates them.
type School struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	Principal    string             `json:"principal,omitempty"`
	Students     int                `json:"students"`
	SupportLevel SupportLevel       `json:"support_level,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Scores       map[string]float64 `json:"scores"`
}

// SchoolForAnalysis is the analysis projection of a School: the row plus
// derived values computed by the tiering engine. It is rebuilt on every
// run and never written back to the underlying School.
type SchoolForAnalysis struct {
	School
	Tier           PerformanceTier `json:"tier"`
	OverallAverage float64         `json:"overall_average"` // Mean of scored metrics, 0 if none
	ScoredMetrics  int             `json:"scored_metrics"`  // Number of metrics with a score set
}

// RowWarning reports a workbook row or cell that could not be used as
// given. Loading continues past warnings; only unreadable files abort.
type RowWarning struct {
	Row     int    `json:"row"` // 1-based data row, 0 for file-level warnings
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface so warnings flow through the
// shared logging helpers.
func (w RowWarning) Error() string {
	switch {
	case w.Row > 0 && w.Column != "":
		return fmt.Sprintf("row %d, column %q: %s", w.Row, w.Column, w.Message)
	case w.Row > 0:
		return fmt.Sprintf("row %d: %s", w.Row, w.Message)
	case w.Column != "":
		return fmt.Sprintf("column %q: %s", w.Column, w.Message)
	default:
		return w.Message
	}
}
