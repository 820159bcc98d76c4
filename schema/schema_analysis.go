package schema

import "time"

// SchoolIssueDetail is the per-school drill-down row of one issue.
type SchoolIssueDetail struct {
	SchoolID        int             `json:"school_id"`
	SchoolName      string          `json:"school_name"`
	Tier            PerformanceTier `json:"tier"`
	Severity        Severity        `json:"severity"`
	Percentage      float64         `json:"percentage"`       // Share of the issue's metrics scoring low, 0-100
	AffectedMetrics []string        `json:"affected_metrics"` // Human-readable, in taxonomy order
}

// TierAverages holds per-category averages for one tier subset.
type TierAverages struct {
	Tier     PerformanceTier    `json:"tier"`
	Averages map[string]float64 `json:"averages"` // Category name to mean score, 0 means no data
}

// Issue is one identified systemic issue. Recomputed fully on every
// analysis run, never persisted.
type Issue struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Category         IssueCategory       `json:"category"`
	AffectedSchools  int                 `json:"affected_schools"`
	TotalSchools     int                 `json:"total_schools"`
	Severity         Severity            `json:"severity"`
	Urgency          int                 `json:"urgency"` // 0-100 composite of scope and severity
	ScopeScore       float64             `json:"scope_score"`
	SeverityScore    float64             `json:"severity_score"`
	SchoolDetails    []SchoolIssueDetail `json:"school_details"`
	CategoryAverages map[string]float64  `json:"category_averages"`
	TierAverages     []TierAverages      `json:"tier_averages"`
}

// Challenge is one report-card challenge entry.
type Challenge struct {
	SubCategory string `json:"sub_category"`
	Text        string `json:"text"`
}

// ReportCard is the per-school derived snapshot handed to presentation.
type ReportCard struct {
	SchoolID       int                `json:"school_id"`
	SchoolName     string             `json:"school_name"`
	Principal      string             `json:"principal,omitempty"`
	Tier           PerformanceTier    `json:"tier"`
	OverallAverage float64            `json:"overall_average"`
	DomainAverages map[string]float64 `json:"domain_averages"` // Category name to mean score, 0 means no data
	Strengths      []string           `json:"strengths"`
	Challenges     []Challenge        `json:"challenges"`
	SupportLevel   SupportLevel       `json:"support_level,omitempty"`
	Students       int                `json:"students"`
}

// NetworkSummary holds the headline counts for the whole score table.
type NetworkSummary struct {
	TotalSchools        int `json:"total_schools"`
	TotalStudents       int `json:"total_students"`
	LowPerformanceCount int `json:"low_performance_count"`
	ExcellentCount      int `json:"excellent_count"`
}

// SubCategoryAverage is one ranked entry of the systemic strengths list.
type SubCategoryAverage struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Average  float64 `json:"average"`
	Samples  int     `json:"samples"` // Number of scores contributing to the average
}

// SummaryResult pairs the headline counts with network-wide averages
// and the systemic strengths list.
type SummaryResult struct {
	Summary        NetworkSummary       `json:"summary"`
	DomainAverages map[string]float64   `json:"domain_averages"`
	Strengths      []SubCategoryAverage `json:"strengths"`
}

// NetworkAnalysis bundles every analysis product of one run, for the
// HTML report and machine-readable exports.
type NetworkAnalysis struct {
	ReportID       string                 `json:"report_id"`
	GeneratedAt    time.Time              `json:"generated_at"`
	Summary        NetworkSummary         `json:"summary"`
	DomainAverages map[string]float64     `json:"domain_averages"`
	Schools        []EnrichedSchoolResult `json:"schools"`
	Issues         []EnrichedIssueResult  `json:"issues"`
	Strengths      []SubCategoryAverage   `json:"strengths"`
	ReportCards    []ReportCard           `json:"report_cards"`
}
