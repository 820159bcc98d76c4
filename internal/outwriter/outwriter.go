// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/pulseedu/schoolpulse/internal/contract"
	"github.com/pulseedu/schoolpulse/schema"
)

// getMaxTableNameWidth calculates the maximum width for school names in
// table output based on terminal width and table configuration.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 25 // Rank + Average + Tier with borders/padding

	// Add detail columns with formatting
	if cfg.Detail {
		baseWidth += 45 // Scored + Students + Principal + Support with formatting
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 15

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable name width
		return 12
	}
	if available > 50 {
		// Maximum name width to prevent overly wide columns
		return 50
	}
	return available
}

// formatTierCell renders a tier for table display, honoring the color
// and emoji switches.
func formatTierCell(tier schema.PerformanceTier, cfg *contract.Config) string {
	label := schema.GetTierLabel(tier)
	if cfg.UseColors {
		label = contract.GetColorTierLabel(tier)
	}
	if cfg.UseEmojis {
		return tierGlyph(tier) + " " + label
	}
	return label
}

// formatSeverityCell renders a severity for table display, honoring the
// color and emoji switches.
func formatSeverityCell(sev schema.Severity, cfg *contract.Config) string {
	label := contract.GetPlainSeverityLabel(sev)
	if cfg.UseColors {
		label = contract.GetColorSeverityLabel(sev)
	}
	if cfg.UseEmojis {
		return severityGlyph(sev) + " " + label
	}
	return label
}

// tierGlyph returns the traffic-light glyph for a tier.
func tierGlyph(tier schema.PerformanceTier) string {
	switch tier {
	case schema.TierExcellent:
		return "🟢"
	case schema.TierLow:
		return "🔴"
	default:
		return "🟡"
	}
}

// severityGlyph returns the warning glyph for a severity grade.
func severityGlyph(sev schema.Severity) string {
	switch sev {
	case schema.SeverityCritical:
		return "🚨"
	case schema.SeverityHigh:
		return "⚠️"
	case schema.SeverityMedium:
		return "🟡"
	default:
		return "ℹ️"
	}
}

// sectionHeader prefixes a section title with its emoji when emojis are
// enabled.
func sectionHeader(emoji, title string, cfg *contract.Config) string {
	if cfg.UseEmojis {
		return emoji + " " + title
	}
	return title
}
