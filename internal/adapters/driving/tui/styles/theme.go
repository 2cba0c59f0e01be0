// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the TUI palette. Accents follow the national flag; text colours
// adapt to light and dark terminals.
type Theme struct {
	Saffron lipgloss.Color
	White   lipgloss.Color
	Green   lipgloss.Color
	Chakra  lipgloss.Color

	Text  lipgloss.AdaptiveColor
	Faint lipgloss.AdaptiveColor
	Alert lipgloss.AdaptiveColor
	Line  lipgloss.AdaptiveColor
}

// DefaultTheme returns the flag palette.
func DefaultTheme() *Theme {
	return &Theme{
		Saffron: lipgloss.Color("#FF9933"),
		White:   lipgloss.Color("#FFFFFF"),
		Green:   lipgloss.Color("#138808"),
		Chakra:  lipgloss.Color("#000080"),

		Text:  lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6E6E6"},
		Faint: lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#7F8496"},
		Alert: lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F38BA8"},
		Line:  lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#45475A"},
	}
}

// Styles are the rendered styles every view shares.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Question   lipgloss.Style
	Citation   lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme:    theme,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Saffron),
		Subtitle: lipgloss.NewStyle().Italic(true).Foreground(theme.Faint),
		Normal:   lipgloss.NewStyle().Foreground(theme.Text),
		Muted:    lipgloss.NewStyle().Foreground(theme.Faint),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Saffron),
		Error:    lipgloss.NewStyle().Foreground(theme.Alert),
		Warning:  lipgloss.NewStyle().Foreground(theme.Saffron),
		Question: lipgloss.NewStyle().Bold(true).Foreground(theme.Text),
		Citation: lipgloss.NewStyle().Italic(true).Foreground(theme.Green),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Line).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().Foreground(theme.Faint).Padding(0, 1),
		Help:      lipgloss.NewStyle().Foreground(theme.Faint),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Tricolour renders a rule of the given width in saffron, white and green
// thirds. Widths under 3 render nothing.
func (s *Styles) Tricolour(width int) string {
	if width < 3 {
		return ""
	}
	third := width / 3
	band := func(c lipgloss.Color, n int) string {
		return lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("━", n))
	}
	return band(s.theme.Saffron, third) +
		band(s.theme.White, third) +
		band(s.theme.Green, width-2*third)
}
