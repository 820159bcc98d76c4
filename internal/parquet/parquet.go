// Package parquet provides data structures and functions for exporting
// assessment analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/pulseedu/schoolpulse/schema"
)

// SchoolTierRecord is the columnar projection of one tiered school,
// one row per school per analysis run.
type SchoolTierRecord struct {
	// Rank is the position in the roster ordered by overall average
	Rank int32 `parquet:"rank,snappy"`

	// SchoolID is the stable workbook identifier of the school
	SchoolID int64 `parquet:"school_id,snappy"`

	// SchoolName is the display name of the school
	SchoolName string `parquet:"school_name,snappy"`

	// Principal is the school lead on assessment day (nullable)
	Principal *string `parquet:"principal,optional,snappy"`

	// Students is the enrolled student count
	Students int32 `parquet:"students,snappy"`

	// SupportLevel is the support program the school is enrolled in (nullable)
	SupportLevel *string `parquet:"support_level,optional,snappy"`

	// Tier is the numeric performance tier, 1 best to 3 worst
	Tier int32 `parquet:"tier,snappy"`

	// TierLabel is the display label matching Tier
	TierLabel string `parquet:"tier_label,snappy"`

	// OverallAverage is the mean of all scored metrics
	OverallAverage float64 `parquet:"overall_average,snappy"`

	// ScoredMetrics is the number of metrics with a score set
	ScoredMetrics int32 `parquet:"scored_metrics,snappy"`
}

// IssueRecord is the columnar projection of one identified systemic
// issue with its urgency components.
type IssueRecord struct {
	// Rank is the position in the issue list ordered by urgency
	Rank int32 `parquet:"rank,snappy"`

	// IssueID is the catalog identifier of the issue
	IssueID string `parquet:"issue_id,snappy"`

	// Name is the issue title from the catalog
	Name string `parquet:"name,snappy"`

	// Category is the intervention area of the issue
	Category string `parquet:"category,snappy"`

	// Urgency is the 0-100 composite of scope and severity
	Urgency int32 `parquet:"urgency,snappy"`

	// Severity is the graded severity label
	Severity string `parquet:"severity,snappy"`

	// AffectedSchools is the number of schools showing the issue
	AffectedSchools int32 `parquet:"affected_schools,snappy"`

	// TotalSchools is the roster size the issue was scanned over
	TotalSchools int32 `parquet:"total_schools,snappy"`

	// ScopeScore is the share of schools affected, 0-1
	ScopeScore float64 `parquet:"scope_score,snappy"`

	// SeverityScore is the share of low scores among scored metrics, 0-1
	SeverityScore float64 `parquet:"severity_score,snappy"`
}

// WriteSchoolTiersParquet writes a slice of SchoolTierRecord structs to a Parquet file.
func WriteSchoolTiersParquet(data []SchoolTierRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the SchoolTierRecord struct tags
	writer := parquet.NewGenericWriter[SchoolTierRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteIssuesParquet writes a slice of IssueRecord structs to a Parquet file.
func WriteIssuesParquet(data []IssueRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the IssueRecord struct tags
	writer := parquet.NewGenericWriter[IssueRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// BuildSchoolTierRecords converts enriched roster results to SchoolTierRecord for Parquet export.
func BuildSchoolTierRecords(ranked []schema.EnrichedSchoolResult) []SchoolTierRecord {
	result := make([]SchoolTierRecord, len(ranked))
	for i, s := range ranked {
		rec := SchoolTierRecord{
			Rank:           int32(s.Rank),
			SchoolID:       int64(s.ID),
			SchoolName:     s.Name,
			Students:       int32(s.Students),
			Tier:           int32(s.Tier),
			TierLabel:      s.Label,
			OverallAverage: s.OverallAverage,
			ScoredMetrics:  int32(s.ScoredMetrics),
		}
		if s.Principal != "" {
			principal := s.Principal
			rec.Principal = &principal
		}
		if s.SupportLevel != "" {
			support := string(s.SupportLevel)
			rec.SupportLevel = &support
		}
		result[i] = rec
	}
	return result
}

// BuildIssueRecords converts enriched issue results to IssueRecord for Parquet export.
func BuildIssueRecords(ranked []schema.EnrichedIssueResult) []IssueRecord {
	result := make([]IssueRecord, len(ranked))
	for i, issue := range ranked {
		result[i] = IssueRecord{
			Rank:            int32(issue.Rank),
			IssueID:         issue.ID,
			Name:            issue.Name,
			Category:        string(issue.Category),
			Urgency:         int32(issue.Urgency),
			Severity:        string(issue.Severity),
			AffectedSchools: int32(issue.AffectedSchools),
			TotalSchools:    int32(issue.TotalSchools),
			ScopeScore:      issue.ScopeScore,
			SeverityScore:   issue.SeverityScore,
		}
	}
	return result
}

// MockFetchSchoolTierRecords generates sample SchoolTierRecord data for demonstration.
func MockFetchSchoolTierRecords() []SchoolTierRecord {
	principal1 := "Dana Whitfield"
	principal2 := "Marcus Obi"
	support2 := "intensive"

	return []SchoolTierRecord{
		{
			Rank:           1,
			SchoolID:       12,
			SchoolName:     "Maple Street Elementary",
			Principal:      &principal1,
			Students:       410,
			Tier:           1,
			TierLabel:      "Excellent",
			OverallAverage: 3.64,
			ScoredMetrics:  18,
		},
		{
			Rank:           2,
			SchoolID:       7,
			SchoolName:     "Riverside Community School",
			Principal:      &principal2,
			Students:       525,
			SupportLevel:   &support2,
			Tier:           3,
			TierLabel:      "Low",
			OverallAverage: 1.92,
			ScoredMetrics:  16,
		},
		{
			Rank:           3,
			SchoolID:       23,
			SchoolName:     "Hillcrest Academy",
			Students:       0,
			Tier:           2,
			TierLabel:      "Medium",
			OverallAverage: 2.75,
			ScoredMetrics:  4,
			// Principal and SupportLevel left nil to demonstrate nullable fields
		},
	}
}

// MockFetchIssueRecords generates sample IssueRecord data for demonstration.
func MockFetchIssueRecords() []IssueRecord {
	return []IssueRecord{
		{
			Rank:            1,
			IssueID:         "weak_foundational_skills",
			Name:            "Weak foundational skills",
			Category:        "pedagogical",
			Urgency:         42,
			Severity:        "high",
			AffectedSchools: 5,
			TotalSchools:    12,
			ScopeScore:      0.42,
			SeverityScore:   0.28,
		},
		{
			Rank:            2,
			IssueID:         "disengaged_families",
			Name:            "Disengaged families",
			Category:        "community",
			Urgency:         18,
			Severity:        "medium",
			AffectedSchools: 2,
			TotalSchools:    12,
			ScopeScore:      0.17,
			SeverityScore:   0.21,
		},
	}
}
