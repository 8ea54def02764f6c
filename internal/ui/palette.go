package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colors used by the CLI output.
type Palette struct {
	Text   string
	Muted  string
	Accent string
	Danger string
}

// DefaultPalette returns the nightfox colors.
func DefaultPalette() Palette {
	return Palette{
		Text:   "#cdcecf", // fg1
		Muted:  "#738091", // comment
		Accent: "#719cd6", // blue
		Danger: "#c94f6d", // red
	}
}

// Styles are lipgloss styles derived from a Palette.
type Styles struct {
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Spinner lipgloss.Style
	Danger  lipgloss.Style
}

// Styles returns lipgloss styles for this palette.
func (p Palette) Styles() Styles {
	return Styles{
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Danger)).Bold(true),
	}
}

// ErrorPrefix renders prefix in the danger color when w is a terminal.
func ErrorPrefix(w io.Writer, prefix string) string {
	if !IsTerminal(w) {
		return prefix
	}
	return DefaultPalette().Styles().Danger.Render(prefix)
}
