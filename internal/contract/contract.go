// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/pulseedu/schoolpulse/schema"

// WorkbookLoader defines the operations needed to read a school roster.
// This allows the analysis logic to run against fixtures without real
// workbook files.
type WorkbookLoader interface {
	// Load reads the workbook at path and slots every score against the
	// rubric. Warnings report rows and cells that were skipped or
	// zeroed; the error is reserved for unreadable or unparsable files.
	Load(path string, tax *schema.Taxonomy) ([]schema.School, []schema.RowWarning, error)
}
