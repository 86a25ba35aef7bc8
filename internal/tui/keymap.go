package tui

import (
	"github.com/Veraticus/appraise/internal/tui/components"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the application-wide shortcuts.
type KeyMap struct {
	// Focus
	FocusNext key.Binding
	FocusPrev key.Binding

	// Actions
	Submit  key.Binding
	Recheck key.Binding

	// Application
	Help key.Binding
	Quit key.Binding

	// Shown in full help only; handled by the panels themselves.
	form  components.FormKeyMap
	chart components.ImportanceKeyMap
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field / panel"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous field / panel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "predict price"),
		),
		Recheck: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "re-check model"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("Ctrl+C/Esc", "quit"),
		),
		form:  components.DefaultFormKeyMap(),
		chart: components.DefaultImportanceKeyMap(),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusNext, k.Submit, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusNext, k.FocusPrev, k.form.Enter},
		{k.chart.Up, k.chart.Down},
		{k.Submit, k.Recheck},
		{k.Help, k.Quit},
	}
}
