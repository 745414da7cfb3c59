package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/beastmode-on/ai-journal-app/internal/notify"
)

// Theme defines the colors for one display mode.
type Theme struct {
	Name string

	Text      string
	Muted     string
	Accent    string
	Border    string
	Selection string
	ButtonBg  string

	Success string
	Warning string
	Danger  string
	Info    string
}

func lightTheme() Theme {
	return Theme{
		Name:      "light",
		Text:      "#1f2933",
		Muted:     "#616e7c",
		Accent:    "#3f51b5",
		Border:    "#cbd2d9",
		Selection: "#e0e8f9",
		ButtonBg:  "#e4e7eb",
		Success:   "#2e7d32",
		Warning:   "#b7791f",
		Danger:    "#c62828",
		Info:      "#0277bd",
	}
}

func darkTheme() Theme {
	return Theme{
		Name:      "dark",
		Text:      "#e4e7eb",
		Muted:     "#9aa5b1",
		Accent:    "#8c9eff",
		Border:    "#3e4c59",
		Selection: "#323f4b",
		ButtonBg:  "#323f4b",
		Success:   "#81c784",
		Warning:   "#ffd54f",
		Danger:    "#ef9a9a",
		Info:      "#81d4fa",
	}
}

func themeFor(dark bool) Theme {
	if dark {
		return darkTheme()
	}
	return lightTheme()
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title        lipgloss.Style
	Button       lipgloss.Style
	Text         lipgloss.Style
	Muted        lipgloss.Style
	Label        lipgloss.Style
	Invalid      lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Tag          lipgloss.Style
	Bar          lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Info    lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.ButtonBg)).
			Padding(0, 1),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),
		Invalid: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		Card: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			PaddingLeft(1),
		CardSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Selection)).
			PaddingLeft(1),
		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		Bar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),
	}
}

// ForLevel returns the style for a notification level.
func (s Styles) ForLevel(l notify.Level) lipgloss.Style {
	switch l {
	case notify.Success:
		return s.Success
	case notify.Warning:
		return s.Warning
	case notify.Danger:
		return s.Danger
	default:
		return s.Info
	}
}
