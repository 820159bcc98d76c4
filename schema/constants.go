package schema

// Custom types for type safety.
type (
	// PerformanceTier buckets a school by overall performance (1 best, 3 worst).
	PerformanceTier int

	// Severity grades how badly a systemic issue presents.
	Severity string

	// IssueCategory groups issue definitions by intervention area.
	IssueCategory string

	// SupportLevel is the support program a school is enrolled in.
	SupportLevel string

	// WeightKey represents keys used in urgency weighting.
	WeightKey string

	// OutputMode represents the format of the output.
	OutputMode string
)

// Performance tiers assigned by the tiering engine.
const (
	TierExcellent PerformanceTier = 1
	TierMedium    PerformanceTier = 2 // default for sparse data
	TierLow       PerformanceTier = 3
)

// Severity grades for issues and per-school detail rows.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// All issue categories supported.
const (
	PedagogicalIssue    IssueCategory = "pedagogical"
	OrganizationalIssue IssueCategory = "organizational"
	CommunityIssue      IssueCategory = "community"
	StrategicIssue      IssueCategory = "strategic"
)

// All support levels supported. An empty value means unassigned.
const (
	UniversalSupport SupportLevel = "universal"
	TargetedSupport  SupportLevel = "targeted"
	IntensiveSupport SupportLevel = "intensive"
)

// Urgency weight keys used in the scoring logic.
const (
	WeightScope    WeightKey = "scope"    // share of schools affected
	WeightSeverity WeightKey = "severity" // share of low scores among scored metrics
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// Default settings for execution.
const (
	DefaultWorkbook    = "workbook.csv"
	DefaultLimit       = 0 // no cap
	DefaultPrecision   = 2
	DefaultHTMLReport  = "schoolpulse-report.html"
	DefaultMaxUrgency  = 75
	DefaultMaxLowShare = 40.0
)

// AllTiers returns tiers in display order (best first).
var AllTiers = []PerformanceTier{TierExcellent, TierMedium, TierLow}

// ValidTiers lists all valid performance tiers.
var ValidTiers = map[PerformanceTier]struct{}{
	TierExcellent: {},
	TierMedium:    {},
	TierLow:       {},
}

// ValidIssueCategories lists all valid issue categories.
var ValidIssueCategories = map[IssueCategory]struct{}{
	PedagogicalIssue:    {},
	OrganizationalIssue: {},
	CommunityIssue:      {},
	StrategicIssue:      {},
}

// ValidSupportLevels lists all valid support levels.
var ValidSupportLevels = map[SupportLevel]struct{}{
	UniversalSupport: {},
	TargetedSupport:  {},
	IntensiveSupport: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// String returns the glossary name of the tier.
func (t PerformanceTier) String() string {
	switch t {
	case TierExcellent:
		return "excellent"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "unknown"
	}
}

// GetDefaultUrgencyWeights returns the default weight map blending issue
// scope and severity into the 0-100 urgency score.
func GetDefaultUrgencyWeights() map[WeightKey]float64 {
	return map[WeightKey]float64{
		WeightScope:    0.6,
		WeightSeverity: 0.4,
	}
}
