package schema

// CheckThresholds are the gate limits for CI usage.
type CheckThresholds struct {
	MaxUrgency  int     // Highest tolerated issue urgency
	MaxLowShare float64 // Highest tolerated percentage of low-tier schools
}

// CheckViolation is one violated gate.
type CheckViolation struct {
	Gate   string  // Gate name, e.g. "max-urgency"
	Detail string  // What tripped it
	Value  float64 // Observed value
	Limit  float64 // Configured limit
}

// CheckResult holds the results of a policy check run.
type CheckResult struct {
	Passed          bool
	TotalSchools    int
	TotalIssues     int
	MaxUrgency      int    // Highest urgency observed across issues
	MaxUrgencyIssue string // Issue carrying the highest urgency
	LowShare        float64
	Violations      []CheckViolation
	Thresholds      CheckThresholds
}
