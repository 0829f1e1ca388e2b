package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Header       lipgloss.Style
	Status       lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Accent       lipgloss.Style
	Pass         lipgloss.Style
	Fail         lipgloss.Style
	Warning      lipgloss.Style
	Muted        lipgloss.Style
	Selected     lipgloss.Style
	Flipped      lipgloss.Style
}

// DefaultTheme is a dim bar-at-night palette: walnut background tones,
// brass accents, neon pass/fail.
func DefaultTheme() Theme {
	brass := lipgloss.Color("#E0B15C")
	mint := lipgloss.Color("#7BE8A8")
	cherry := lipgloss.Color("#F26D78")
	walnut := lipgloss.Color("#1A120C")
	leather := lipgloss.Color("#35241A")
	cream := lipgloss.Color("#F3E9DA")
	ice := lipgloss.Color("#9AD7F5")
	border := lipgloss.Color("#6B543B")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(walnut).
			Foreground(cream).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(leather).
			Foreground(cream).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(brass).
			Bold(true),
		PanelBorder: lipgloss.NewStyle().
			Foreground(border),
		PanelBody: lipgloss.NewStyle().
			Foreground(cream),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(brass).
			Background(walnut).
			Foreground(cream).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().
			Foreground(brass).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(ice).
			Bold(true),
		Pass: lipgloss.NewStyle().
			Foreground(mint).
			Bold(true),
		Fail: lipgloss.NewStyle().
			Foreground(cherry).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(brass),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A89880")),
		Selected: lipgloss.NewStyle().
			Background(leather).
			Foreground(brass).
			Bold(true),
		Flipped: lipgloss.NewStyle().
			Foreground(ice),
	}
}
