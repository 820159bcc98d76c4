package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pulseedu/schoolpulse/schema"
)

// Severity label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	MediumValue   = "Medium"   // Medium value
	LowValue      = "Low"      // Low value
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	MediumColor   = color.New(color.FgYellow)              // mediumColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
	GoodColor     = color.New(color.FgGreen)               // goodColor represents healthy standing.
)

// GetPlainSeverityLabel returns the display label for an issue or
// school severity. This is the core logic used for CSV, JSON, and
// table printing.
func GetPlainSeverityLabel(sev schema.Severity) string {
	switch sev {
	case schema.SeverityCritical:
		return CriticalValue
	case schema.SeverityHigh:
		return HighValue
	case schema.SeverityMedium:
		return MediumValue
	default:
		return LowValue
	}
}

// GetColorSeverityLabel returns a colored severity label for console output (table).
// It uses GetPlainSeverityLabel to determine the string, and then applies the
// appropriate color.
func GetColorSeverityLabel(sev schema.Severity) string {
	text := GetPlainSeverityLabel(sev)

	switch sev {
	case schema.SeverityCritical:
		return CriticalColor.Sprint(text)
	case schema.SeverityHigh:
		return HighColor.Sprint(text)
	case schema.SeverityMedium:
		return MediumColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// GetColorTierLabel returns a colored tier label for console output (table).
func GetColorTierLabel(tier schema.PerformanceTier) string {
	text := schema.GetTierLabel(tier)

	switch tier {
	case schema.TierExcellent:
		return GoodColor.Sprint(text)
	case schema.TierLow:
		return CriticalColor.Sprint(text)
	default:
		return MediumColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. An empty path falls back to os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateName truncates a display name to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." suffix and at
// least one character of content. Without this check, small maxWidth values could
// cause slice bounds errors in the truncation calculation.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseTierString parses a tier filter value. Accepts tier numbers and
// names (case-insensitive); empty, "0" and "all" mean no filter.
func ParseTierString(s string) (schema.PerformanceTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "0":
		return 0, nil
	case "1", "excellent":
		return schema.TierExcellent, nil
	case "2", "medium":
		return schema.TierMedium, nil
	case "3", "low":
		return schema.TierLow, nil
	default:
		return 0, fmt.Errorf("invalid tier '%s'. must be excellent, medium, low, 1, 2, 3 or all", s)
	}
}

// ParseIssueList splits a comma-separated issue id list, trimming
// blanks and dropping duplicates while keeping first-seen order.
func ParseIssueList(s string) []string {
	var ids []string
	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(s, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
