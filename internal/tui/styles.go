package tui

import "github.com/charmbracelet/lipgloss"

const (
	gridColumns = 3
	cardWidth   = 30
)

type Styles struct {
	Title   lipgloss.Style
	Input   lipgloss.Style
	Button  lipgloss.Style
	Focused lipgloss.Style
	Loading lipgloss.Style
	Error   lipgloss.Style
	Card    lipgloss.Style
	Name    lipgloss.Style
	Muted   lipgloss.Style
	Help    lipgloss.Style
}

func DefaultStyles() Styles {
	blue := lipgloss.Color("#3b82f6")
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(blue).
			Bold(true).
			MarginBottom(1),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#64748b")).
			Padding(0, 2).
			MarginLeft(2),

		Focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(blue).
			Bold(true).
			Padding(0, 2).
			MarginLeft(2),

		Loading: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#eab308")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444")),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(cardWidth),

		Name: lipgloss.NewStyle().
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8")),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8")).
			MarginTop(1),
	}
}
