package schema

// RubricRenderModel is the presentation model for the rubric display:
// the taxonomy tree plus the issue catalog with metric names resolved.
type RubricRenderModel struct {
	Title      string             `json:"title"`
	ScaleNote  string             `json:"scale_note"`
	Categories []Category         `json:"categories"`
	Issues     []RubricIssueEntry `json:"issues"`
}

// RubricIssueEntry extends an issue definition with the display names
// of the metrics it tracks.
type RubricIssueEntry struct {
	IssueDefinition
	Metrics []string `json:"metrics"`
}
