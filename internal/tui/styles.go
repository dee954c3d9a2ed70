package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type AppTheme struct {
	Primary    string
	Secondary  string
	Accent     string
	Text       string
	Subtle     string
	Error      string
	Warning    string
	Success    string
	Background string
	Surface    string
}

func PurpleTheme() AppTheme {
	return AppTheme{
		Primary:    "#ccbeff",
		Secondary:  "#4a3e76",
		Accent:     "#e7deff",
		Text:       "#e6e1e9",
		Subtle:     "#cac4cf",
		Error:      "#ffb4ab",
		Warning:    "#eeb8ca",
		Success:    "#ccbeff",
		Background: "#141318",
		Surface:    "#201f24",
	}
}

func NewStyles(theme AppTheme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Primary)).
			Bold(true).
			MarginLeft(1).
			MarginBottom(1),

		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Text)),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#33275e")).
			Background(lipgloss.Color(theme.Primary)).
			Padding(0, 1),

		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)).
			Bold(true),

		SpinnerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Primary)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)).
			Bold(true),

		HighlightButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#33275e")).
			Background(lipgloss.Color(theme.Primary)).
			Padding(0, 2).
			Bold(true),

		SelectedOption: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Padding(0, 2),

		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#33275e")).
			Background(lipgloss.Color(theme.Primary)).
			Padding(0, 2).
			Bold(true),

		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Error)).
			Padding(0, 1),

		theme: theme,
	}
}

type Styles struct {
	Title           lipgloss.Style
	Normal          lipgloss.Style
	Subtle          lipgloss.Style
	Error           lipgloss.Style
	StatusBar       lipgloss.Style
	Key             lipgloss.Style
	SpinnerStyle    lipgloss.Style
	Success         lipgloss.Style
	HighlightButton lipgloss.Style
	SelectedOption  lipgloss.Style
	Tab             lipgloss.Style
	ActiveTab       lipgloss.Style
	Notice          lipgloss.Style

	theme AppTheme
}

// Help renders key/description pairs as a one-line hint.
func (s Styles) Help(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.Key.Render(pairs[i])+s.Subtle.Render(": "+pairs[i+1]))
	}
	return strings.Join(parts, s.Subtle.Render(", "))
}

// Faded renders content text at the given opacity by blending the text
// colour into the background.
func (s Styles) Faded(opacity float64) lipgloss.Style {
	if opacity >= 1 {
		return s.Normal
	}
	if opacity < 0 {
		opacity = 0
	}
	bg, err := colorful.Hex(s.theme.Background)
	if err != nil {
		return s.Normal
	}
	fg, err := colorful.Hex(s.theme.Text)
	if err != nil {
		return s.Normal
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(bg.BlendRgb(fg, opacity).Clamped().Hex()))
}

func (s Styles) NewThemedProgress(width int) progress.Model {
	theme := s.theme
	prog := progress.New(
		progress.WithGradient(theme.Secondary, theme.Primary),
	)

	prog.Width = width
	prog.ShowPercentage = true
	prog.PercentFormat = "%.0f%%"
	prog.PercentageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Text)).
		Bold(true)

	return prog
}