package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/racer/types"
)

// Default colors, used for any entry the settings leave empty.
const (
	defaultCorrect   = "34"
	defaultIncorrect = "196"
	defaultStatus    = "236"
)

var styleCursor = lipgloss.NewStyle().Reverse(true)

// newStyles builds the lipgloss style for every game style.
func newStyles(c types.Colors) map[types.Style]lipgloss.Style {
	highlight := lipgloss.NewStyle().Reverse(true)
	if c.Highlight != "" {
		highlight = highlight.Foreground(lipgloss.Color(c.Highlight))
	}

	return map[types.Style]lipgloss.Style{
		types.StyleNormal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")),

		types.StyleHighlight: highlight,

		types.StyleCorrect: lipgloss.NewStyle().
			Foreground(lipgloss.Color(orDefault(c.Correct, defaultCorrect))),

		types.StyleIncorrect: lipgloss.NewStyle().
			Foreground(lipgloss.Color(orDefault(c.Incorrect, defaultIncorrect))).
			Underline(true),

		types.StyleStatus: lipgloss.NewStyle().
			Background(lipgloss.Color(orDefault(c.Status, defaultStatus))).
			Foreground(lipgloss.Color("252")).
			Bold(true),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
