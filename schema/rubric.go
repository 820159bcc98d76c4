package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// taxonomyFile is the on-disk shape of a rubric override.
type taxonomyFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadTaxonomyFile reads a rubric override from a YAML file and builds
// its key index.
func LoadTaxonomyFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rubric file: %w", err)
	}
	var tf taxonomyFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse rubric file: %w", err)
	}
	t := NewTaxonomy(tf.Categories)
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rubric file %s: %w", path, err)
	}
	return t, nil
}

// Validate checks the structural rules of the rubric tree: non-empty
// categories and groups, named entries, and globally unique metric keys.
func (t *Taxonomy) Validate() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("rubric has no categories")
	}
	seen := make(map[string]bool)
	for _, cat := range t.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category without a name")
		}
		if len(cat.SubCategories) == 0 {
			return fmt.Errorf("category %q has no sub-categories", cat.Name)
		}
		for _, sub := range cat.SubCategories {
			if sub.Key == "" || sub.Name == "" {
				return fmt.Errorf("category %q has a sub-category without key or name", cat.Name)
			}
			if len(sub.Metrics) == 0 {
				return fmt.Errorf("sub-category %q has no metrics", sub.Name)
			}
			for _, m := range sub.Metrics {
				if m.Key == "" || m.Name == "" {
					return fmt.Errorf("sub-category %q has a metric without key or name", sub.Name)
				}
				if seen[m.Key] {
					return fmt.Errorf("duplicate metric key %q", m.Key)
				}
				seen[m.Key] = true
			}
		}
	}
	return nil
}

// DefaultTaxonomy returns the built-in assessment rubric: four domains,
// ten improvement themes, 29 metrics. Operators can replace it with a
// YAML file via LoadTaxonomyFile.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy([]Category{
		{
			Name: "Teaching & Learning",
			SubCategories: []SubCategory{
				{
					Key:  "curriculum",
					Name: "Curriculum & Planning",
					Metrics: []Metric{
						{Key: "curriculum_coverage", Name: "Curriculum coverage and pacing"},
						{Key: "lesson_planning", Name: "Lesson planning quality"},
						{Key: "assessment_use", Name: "Use of formative assessment"},
					},
				},
				{
					Key:  "instruction",
					Name: "Classroom Instruction",
					Metrics: []Metric{
						{Key: "instruction_clarity", Name: "Instructional clarity"},
						{Key: "differentiation", Name: "Differentiated instruction"},
						{Key: "student_feedback", Name: "Quality of feedback to students"},
					},
				},
				{
					Key:  "outcomes",
					Name: "Learning Outcomes",
					Metrics: []Metric{
						{Key: "reading_results", Name: "Reading proficiency results"},
						{Key: "math_results", Name: "Mathematics proficiency results"},
						{Key: "growth_trend", Name: "Year-over-year growth trend"},
					},
				},
			},
		},
		{
			Name: "Leadership & Management",
			SubCategories: []SubCategory{
				{
					Key:  "direction",
					Name: "Strategic Direction",
					Metrics: []Metric{
						{Key: "shared_vision", Name: "Shared improvement vision"},
						{Key: "goal_tracking", Name: "Progress tracking against goals"},
					},
				},
				{
					Key:  "operations",
					Name: "School Operations",
					Metrics: []Metric{
						{Key: "resource_allocation", Name: "Resource allocation"},
						{Key: "master_schedule", Name: "Master schedule quality"},
						{Key: "data_systems", Name: "Data systems and record keeping"},
					},
				},
				{
					Key:  "staffing",
					Name: "Staff Development",
					Metrics: []Metric{
						{Key: "pd_program", Name: "Professional development program"},
						{Key: "teacher_retention", Name: "Teacher retention and morale"},
						{Key: "instructional_coaching", Name: "Instructional coaching"},
					},
				},
			},
		},
		{
			Name: "School Climate & Community",
			SubCategories: []SubCategory{
				{
					Key:  "climate",
					Name: "Student Climate",
					Metrics: []Metric{
						{Key: "student_safety", Name: "Student safety and wellbeing"},
						{Key: "behavior_culture", Name: "Behavior culture and routines"},
						{Key: "attendance", Name: "Student attendance"},
					},
				},
				{
					Key:  "engagement",
					Name: "Family & Community Engagement",
					Metrics: []Metric{
						{Key: "family_communication", Name: "Family communication"},
						{Key: "community_partnerships", Name: "Community partnerships"},
						{Key: "parent_participation", Name: "Parent participation in school life"},
					},
				},
			},
		},
		{
			Name: "Resources & Support",
			SubCategories: []SubCategory{
				{
					Key:  "facilities",
					Name: "Facilities & Materials",
					Metrics: []Metric{
						{Key: "facility_condition", Name: "Facility condition and safety"},
						{Key: "learning_materials", Name: "Availability of learning materials"},
						{Key: "technology_access", Name: "Technology access for learning"},
					},
				},
				{
					Key:  "services",
					Name: "Student Support Services",
					Metrics: []Metric{
						{Key: "counseling_support", Name: "Counseling and wellbeing support"},
						{Key: "special_needs", Name: "Provision for special educational needs"},
						{Key: "meal_program", Name: "Meal program coverage"},
					},
				},
			},
		},
	})
}
