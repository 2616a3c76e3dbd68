package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mozilla-platform-ops/relops-image-builder/internal/decision"
)

// Border style
var StyleBorder = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240"))

// Outcome styles
var (
	StyleSubmitted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("green")).
			Bold(true)

	StyleSkipped = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	StyleFailed = lipgloss.NewStyle().
			Foreground(lipgloss.Color("red")).
			Bold(true)
)

// StyleTitle is used for the tally line under the table.
var StyleTitle = lipgloss.NewStyle().
	Bold(true)

// outcomeStyle picks the style for an outcome cell.
func outcomeStyle(o decision.Outcome) lipgloss.Style {
	switch o {
	case decision.OutcomeSubmitted:
		return StyleSubmitted
	case decision.OutcomeFailed:
		return StyleFailed
	default:
		return StyleSkipped
	}
}
