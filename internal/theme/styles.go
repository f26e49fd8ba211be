package theme

import (
	"github.com/charmbracelet/lipgloss"

	"frota/internal/domain"
)

// Main styles
var (
	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// OutcomeStyle colors an outcome bucket
func OutcomeStyle(kind domain.OutcomeKind) lipgloss.Style {
	switch kind {
	case domain.OutcomeProcessed:
		return lipgloss.NewStyle().Foreground(ColorProcessed)
	case domain.OutcomeAlreadyInTargetState:
		return lipgloss.NewStyle().Foreground(ColorAlreadyDone)
	case domain.OutcomeNotFound:
		return lipgloss.NewStyle().Foreground(ColorNotFound)
	case domain.OutcomeFailed:
		return lipgloss.NewStyle().Foreground(ColorFailed).Bold(true)
	default:
		return NormalStyle
	}
}
