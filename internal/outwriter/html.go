package outwriter

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

//go:embed templates/report.html.tmpl
var reportTemplateSrc string

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"tierLabel": schema.GetTierLabel,
}).Parse(reportTemplateSrc))

// htmlReportModel wraps a network analysis with display-ready values
// the template cannot compute itself.
type htmlReportModel struct {
	*schema.NetworkAnalysis
	GeneratedDisplay string
	LowShareDisplay  string
	Categories       []schema.Category
}

// WriteAnalysisExport writes the full analysis as a standalone
// artifact: an HTML report by default, or JSON when requested.
func WriteAnalysisExport(analysis *schema.NetworkAnalysis, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, analysis)
		}, "Wrote JSON")
	case schema.CSVOut, schema.ParquetOut:
		return fmt.Errorf("%s output is not supported for export. use text (html) or json", cfg.Output)
	default:
		// The HTML artifact always lands in a file, never on stdout.
		target := cfg.OutputFile
		if target == "" {
			target = schema.DefaultHTMLReport
		}
		return writeWithFile(target, func(w io.Writer) error {
			return renderHTMLReport(w, analysis, cfg)
		}, "Wrote HTML report")
	}
}

// renderHTMLReport executes the embedded report template.
func renderHTMLReport(w io.Writer, analysis *schema.NetworkAnalysis, cfg *contract.Config) error {
	lowShare := 0.0
	if analysis.Summary.TotalSchools > 0 {
		lowShare = float64(analysis.Summary.LowPerformanceCount) / float64(analysis.Summary.TotalSchools) * 100
	}
	model := htmlReportModel{
		NetworkAnalysis:  analysis,
		GeneratedDisplay: analysis.GeneratedAt.Format("2006-01-02 15:04 MST"),
		LowShareDisplay:  fmt.Sprintf("%.1f%%", lowShare),
		Categories:       cfg.Taxonomy.Categories,
	}
	if err := reportTemplate.Execute(w, model); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}
