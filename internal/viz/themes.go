package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Dark       bool
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

// Available themes
var (
	ThemeDark = Theme{
		Name:       "dark",
		Dark:       true,
		Primary:    lipgloss.Color("#6366f1"), // indigo
		Secondary:  lipgloss.Color("#8b5cf6"), // violet
		Accent:     lipgloss.Color("#ec4899"), // pink
		Background: lipgloss.Color("#111827"),
		Text:       lipgloss.Color("#f9fafb"),
		Muted:      lipgloss.Color("#9ca3af"),
	}

	ThemeLight = Theme{
		Name:       "light",
		Dark:       false,
		Primary:    lipgloss.Color("#4f46e5"),
		Secondary:  lipgloss.Color("#7c3aed"),
		Accent:     lipgloss.Color("#db2777"),
		Background: lipgloss.Color("#f9fafb"),
		Text:       lipgloss.Color("#111827"),
		Muted:      lipgloss.Color("#6b7280"),
	}

	Themes = []Theme{ThemeDark, ThemeLight}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDark
}

// ThemeFor picks the theme matching a dark flag.
func ThemeFor(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
