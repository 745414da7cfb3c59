package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/beastmode-on/ai-journal-app/internal/config"
)

// keyMap holds the bindings built from the configured keymap.
type keyMap struct {
	// Global
	ForceQuit key.Binding
	NewEntry  key.Binding
	Save      key.Binding
	DarkMode  key.Binding
	Dismiss   key.Binding

	// Dashboard
	Quit      key.Binding
	Search    key.Binding
	Analytics key.Binding
	Open      key.Binding
	Preview   key.Binding
	Tag       key.Binding
	Up        key.Binding
	Down      key.Binding

	// Forms and detail views
	Back      key.Binding
	Copy      key.Binding
	NextField key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		NewEntry:  bind(k.NewEntry, "new entry"),
		Save:      bind(k.Save, "save"),
		DarkMode:  bind(k.DarkMode, "theme"),
		Dismiss:   bind(k.Dismiss, "dismiss"),
		Quit:      bind(k.Quit, "quit"),
		Search:    bind(k.Search, "search"),
		Analytics: bind(k.Analytics, "analytics"),
		Open:      bind(k.Open, "open"),
		Preview:   bind(k.Preview, "preview"),
		Tag:       bind(k.Tag, "filter tag"),
		Up: key.NewBinding(
			key.WithKeys(k.Up, "up"),
			key.WithHelp(k.Up+"/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(k.Down, "down"),
			key.WithHelp(k.Down+"/↓", "down"),
		),
		Back: bind(k.Back, "back"),
		Copy: bind(k.Copy, "copy"),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
	}
}

func bind(k, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc))
}

// helpBindings returns the short help for the current page.
func (m Model) helpBindings() []key.Binding {
	k := m.keys
	var out []key.Binding
	switch m.page {
	case pageNew:
		out = []key.Binding{k.NextField, k.Save, k.Back}
	case pageSearch:
		out = []key.Binding{k.NextField, k.Open, k.Back}
	case pageEntry:
		out = []key.Binding{k.Copy, k.Back, k.Quit}
	case pageAnalytics:
		out = []key.Binding{k.Back, k.Quit}
	default:
		out = []key.Binding{k.Up, k.Down, k.Open, k.Search, k.Analytics, k.Preview, k.Tag, k.Quit}
	}
	out = append(out, k.NewEntry, k.Dismiss)
	if m.prefs != nil {
		out = append(out, k.DarkMode)
	}
	return out
}
