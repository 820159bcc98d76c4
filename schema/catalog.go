package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IssueDefinition is one entry of the issue catalog: a cross-cutting
// concern the analysis scans for, with the goal a principal would be
// asked to pursue when it hits their school.
type IssueDefinition struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title" yaml:"title"`
	PrincipalGoal string        `json:"principal_goal" yaml:"principal_goal"`
	Category      IssueCategory `json:"category" yaml:"category"`
}

// IssueCatalog is the static issue configuration: ordered definitions
// plus two lookup tables, issue id to metric keys and metric key to a
// ready-made challenge phrase. It is supplied data, never computed.
type IssueCatalog struct {
	Definitions []IssueDefinition   `json:"definitions" yaml:"definitions"`
	MetricSets  map[string][]string `json:"metric_sets" yaml:"metric_sets"`
	Challenges  map[string]string   `json:"challenges" yaml:"challenges"`
}

// LoadCatalogFile reads an issue catalog override from a YAML file.
func LoadCatalogFile(path string) (*IssueCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var c IssueCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the structural rules of the catalog: unique non-empty
// ids, titles, and known categories. Metric keys are not checked against
// a taxonomy here; unknown keys simply never match during analysis.
func (c *IssueCatalog) Validate() error {
	if len(c.Definitions) == 0 {
		return fmt.Errorf("catalog has no issue definitions")
	}
	seen := make(map[string]bool)
	for _, def := range c.Definitions {
		if def.ID == "" {
			return fmt.Errorf("issue definition without an id")
		}
		if seen[def.ID] {
			return fmt.Errorf("duplicate issue id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Title == "" {
			return fmt.Errorf("issue %q has no title", def.ID)
		}
		if _, ok := ValidIssueCategories[def.Category]; !ok {
			return fmt.Errorf("issue %q has invalid category %q", def.ID, def.Category)
		}
	}
	return nil
}

// Definition returns the definition for an issue id.
func (c *IssueCatalog) Definition(id string) (IssueDefinition, bool) {
	for _, def := range c.Definitions {
		if def.ID == id {
			return def, true
		}
	}
	return IssueDefinition{}, false
}

// MetricsFor returns the metric keys bound to an issue id, in binding order.
func (c *IssueCatalog) MetricsFor(id string) []string {
	return c.MetricSets[id]
}

// ChallengeFor returns the ready-made challenge phrase for a metric key.
func (c *IssueCatalog) ChallengeFor(key string) (string, bool) {
	text, ok := c.Challenges[key]
	return text, ok
}

// IDs returns every issue id in catalog order.
func (c *IssueCatalog) IDs() []string {
	ids := make([]string, len(c.Definitions))
	for i, def := range c.Definitions {
		ids[i] = def.ID
	}
	return ids
}

// DefaultCatalog returns the built-in issue catalog matched to the
// default rubric. Operators can replace it with a YAML file via
// LoadCatalogFile.
func DefaultCatalog() *IssueCatalog {
	return &IssueCatalog{
		Definitions: []IssueDefinition{
			{
				ID:            "weak_foundational_skills",
				Title:         "Weak foundational skills",
				PrincipalGoal: "Raise reading and mathematics proficiency through daily targeted practice blocks",
				Category:      PedagogicalIssue,
			},
			{
				ID:            "inconsistent_instruction",
				Title:         "Inconsistent instructional quality",
				PrincipalGoal: "Standardize lesson delivery through peer observation and coaching cycles",
				Category:      PedagogicalIssue,
			},
			{
				ID:            "curriculum_drift",
				Title:         "Curriculum drift",
				PrincipalGoal: "Re-align classroom pacing with the published curriculum maps",
				Category:      PedagogicalIssue,
			},
			{
				ID:            "assessment_blind_spots",
				Title:         "Assessment blind spots",
				PrincipalGoal: "Make formative assessment data a standing input to weekly planning",
				Category:      PedagogicalIssue,
			},
			{
				ID:            "weak_strategic_leadership",
				Title:         "Weak strategic leadership",
				PrincipalGoal: "Build a shared improvement plan with visible quarterly milestones",
				Category:      OrganizationalIssue,
			},
			{
				ID:            "staff_instability",
				Title:         "Staff instability",
				PrincipalGoal: "Stabilize the teaching roster with induction, mentoring and workload review",
				Category:      OrganizationalIssue,
			},
			{
				ID:            "operational_strain",
				Title:         "Operational strain",
				PrincipalGoal: "Tighten scheduling and record keeping so teaching time is protected",
				Category:      OrganizationalIssue,
			},
			{
				ID:            "disengaged_families",
				Title:         "Disengaged families",
				PrincipalGoal: "Rebuild family trust through regular two-way communication",
				Category:      CommunityIssue,
			},
			{
				ID:            "unsafe_climate",
				Title:         "Unsafe or disorderly climate",
				PrincipalGoal: "Restore calm corridors and classrooms with a whole-school behavior plan",
				Category:      CommunityIssue,
			},
			{
				ID:            "resource_shortfall",
				Title:         "Resource shortfall",
				PrincipalGoal: "Close the materials and technology gap through district procurement",
				Category:      StrategicIssue,
			},
			{
				ID:            "student_support_gap",
				Title:         "Student support gap",
				PrincipalGoal: "Guarantee baseline counseling and special needs provision in every school",
				Category:      StrategicIssue,
			},
		},
		MetricSets: map[string][]string{
			"weak_foundational_skills":  {"reading_results", "math_results", "growth_trend"},
			"inconsistent_instruction":  {"instruction_clarity", "differentiation", "student_feedback", "instructional_coaching"},
			"curriculum_drift":          {"curriculum_coverage", "lesson_planning"},
			"assessment_blind_spots":    {"assessment_use", "data_systems", "goal_tracking"},
			"weak_strategic_leadership": {"shared_vision", "goal_tracking", "resource_allocation"},
			"staff_instability":         {"teacher_retention", "pd_program", "instructional_coaching"},
			"operational_strain":        {"master_schedule", "data_systems", "resource_allocation"},
			"disengaged_families":       {"family_communication", "parent_participation", "community_partnerships"},
			"unsafe_climate":            {"student_safety", "behavior_culture", "attendance"},
			"resource_shortfall":        {"facility_condition", "learning_materials", "technology_access"},
			"student_support_gap":       {"counseling_support", "special_needs", "meal_program"},
		},
		Challenges: map[string]string{
			"curriculum_coverage":    "Classroom pacing has fallen behind the curriculum map",
			"lesson_planning":        "Lesson plans are missing or not aligned to objectives",
			"assessment_use":         "Formative assessment rarely informs next-day teaching",
			"instruction_clarity":    "Lesson objectives are unclear to students",
			"differentiation":        "Lessons are not adapted to different student levels",
			"student_feedback":       "Students receive little actionable feedback on their work",
			"reading_results":        "Reading proficiency is below the expected standard",
			"math_results":           "Mathematics proficiency is below the expected standard",
			"shared_vision":          "Staff do not share a common improvement vision",
			"goal_tracking":          "Improvement goals are not tracked against milestones",
			"resource_allocation":    "Budget and staffing are not aligned to priorities",
			"pd_program":             "Professional development is ad hoc and poorly attended",
			"teacher_retention":      "Teacher turnover is disrupting continuity of learning",
			"instructional_coaching": "Teachers receive little classroom-level coaching",
			"student_safety":         "Students report feeling unsafe at school",
			"behavior_culture":       "Behavior routines are applied inconsistently",
			"attendance":             "Chronic absence is eroding learning time",
			"family_communication":   "Families hear from the school rarely or only about problems",
			"facility_condition":     "Building condition disrupts teaching and learning",
			"learning_materials":     "Core learning materials are missing or outdated",
			"technology_access":      "Students lack reliable access to devices and connectivity",
			"counseling_support":     "Counseling capacity does not meet student need",
			"special_needs":          "Support for special educational needs is patchy",
		},
	}
}
