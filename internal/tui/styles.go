package tui

import (
	"f3os/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the console palette, derived from the configured colors
type Styles struct {
	App    lipgloss.Style
	Output lipgloss.Style
	Prompt lipgloss.Style
	Input  lipgloss.Style
}

// NewStyles builds every style from a foreground and background color
func NewStyles(fg, bg config.Color) Styles {
	fgc := lipgloss.Color(fg.Hex())
	bgc := lipgloss.Color(bg.Hex())
	base := lipgloss.NewStyle().Foreground(fgc).Background(bgc)

	return Styles{
		App:    base,
		Output: base,
		Prompt: base.Bold(true),
		Input:  base,
	}
}

func stylesFrom(s Settings) Styles {
	return NewStyles(
		s.Color(config.KeyColor, config.Color{G: 0xff}),
		s.Color(config.KeyBgColor, config.Color{}),
	)
}
