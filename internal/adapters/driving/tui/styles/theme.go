// Package styles holds the colour theme shared by the terminal report
// and the interactive browser.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// Theme is the colour palette.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// Types colours the type badge of each source type.
	Types map[domain.SourceType]lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"),
		Secondary:  lipgloss.Color("#06B6D4"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Types: map[domain.SourceType]lipgloss.Color{
			domain.SourceTypeKarpathy:   lipgloss.Color("#89B4FA"),
			domain.SourceTypeDeepGitHub: lipgloss.Color("#A6E3A1"),
			domain.SourceTypeTelegram:   lipgloss.Color("#F5C2E7"),
			domain.SourceTypeManualList: lipgloss.Color("#FAB387"),
		},
	}
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Score    lipgloss.Style
	URL      lipgloss.Style
	Advisory lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
}

// NewStyles builds styles from theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Styles{
		theme:    theme,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground).Background(theme.Primary),
		Score:    lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
		URL:      lipgloss.NewStyle().Underline(true).Foreground(theme.Secondary),
		Advisory: lipgloss.NewStyle().Foreground(theme.Warning),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),
		Help:     lipgloss.NewStyle().Foreground(theme.Muted),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),
	}
}

// Plain returns styles that render text unchanged, for pipes and files.
func Plain() *Styles {
	p := lipgloss.NewStyle()
	return &Styles{
		theme:    &Theme{},
		Title:    p,
		Subtitle: p,
		Normal:   p,
		Muted:    p,
		Selected: p,
		Score:    p,
		URL:      p,
		Advisory: p,
		Error:    p,
		Help:     p,

		InputField: p,
		StatusBar:  p,
	}
}

// DefaultStyles returns styles for the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// TypeBadge renders a source type in its theme colour.
func (s *Styles) TypeBadge(t domain.SourceType) string {
	c, ok := s.theme.Types[t]
	if !ok {
		return t.String()
	}
	return lipgloss.NewStyle().Foreground(c).Render(t.String())
}
