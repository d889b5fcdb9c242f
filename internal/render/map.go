// Package render turns validation reports into terminal output: the
// per-block validation map, size summaries, timing statistics, and
// progress bars. It consumes report data only and never touches devices.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deploymenttheory/go-drivecap/internal/validation"
)

// Map renders the validation map as a grid of one glyph per sampling
// block, width columns wide, followed by a legend.
func Map(report *validation.Report, width int, noColor bool) string {
	if width < 1 {
		width = 1
	}
	var b strings.Builder
	b.WriteString(styleFor(boldStyle, noColor).Render("Validation map:"))
	b.WriteByte('\n')
	for i, block := range report.Blocks {
		b.WriteString(glyph(block.Status, noColor))
		if i%width == width-1 {
			b.WriteByte('\n')
		}
	}
	if len(report.Blocks)%width != 0 {
		b.WriteByte('\n')
	}
	b.WriteString(legend(report.ReadOnly, noColor))
	return b.String()
}

func glyph(s validation.Status, noColor bool) string {
	var style lipgloss.Style
	var g string
	switch s {
	case validation.StatusValidated:
		style, g = okStyle, "◼"
	case validation.StatusNoStorage:
		style, g = badStyle, "✖"
	case validation.StatusIOError:
		style, g = warnStyle, "E"
	case validation.StatusReadOK:
		style, g = readStyle, "R"
	default:
		style, g = untestedStyle, "?"
	}
	return styleFor(style, noColor).Render(g)
}

func legend(readOnly bool, noColor bool) string {
	if readOnly {
		return fmt.Sprintf("Legend: %s Readable   %s I/O Error\n",
			styleFor(readStyle, noColor).Render("R"),
			styleFor(warnStyle, noColor).Render("E"))
	}
	return fmt.Sprintf("Legend: %s Validated   %s No storage   %s I/O Error\n",
		styleFor(okStyle, noColor).Render("◼"),
		styleFor(badStyle, noColor).Render("✖"),
		styleFor(warnStyle, noColor).Render("E"))
}
