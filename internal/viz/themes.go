package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the viewer chrome. The frame
// itself always shows the engine's true colors.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeEmber = Theme{
		Name:      "ember",
		Primary:   lipgloss.Color("#ff6b35"),
		Secondary: lipgloss.Color("#f7a440"),
		Accent:    lipgloss.Color("#ffd23f"),
		Text:      lipgloss.Color("#fff1e0"),
		Muted:     lipgloss.Color("#8a5a44"),
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
	}

	ThemeVoid = Theme{
		Name:      "void",
		Primary:   lipgloss.Color("#bb86fc"),
		Secondary: lipgloss.Color("#6200ee"),
		Accent:    lipgloss.Color("#03dac6"),
		Text:      lipgloss.Color("#e0e0e0"),
		Muted:     lipgloss.Color("#554466"),
	}

	// Default theme
	CurrentTheme = ThemeEmber

	Themes = []Theme{
		ThemeEmber,
		ThemePhosphor,
		ThemeVoid,
	}
)

// GetTheme returns a theme by name, falling back to ember.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

// SetTheme changes the current theme.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns the list of available theme names.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
