package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application keybindings.
type KeyMap struct {
	// Global
	Quit           key.Binding
	Run            key.Binding
	CommandPalette key.Binding
	Help           key.Binding

	// Panel navigation
	CycleFocus    key.Binding
	CycleFocusRev key.Binding
	ToggleHistory key.Binding

	// Operation kinds
	PrevKind key.Binding
	NextKind key.Binding
	Kind     key.Binding

	// Result
	CopyResult key.Binding
	CopyAsCurl key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Run: key.NewBinding(
			key.WithKeys("ctrl+r", "ctrl+enter"),
			key.WithHelp("ctrl+r", "run extraction"),
		),
		CommandPalette: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CycleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		CycleFocusRev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		ToggleHistory: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle history"),
		),
		PrevKind: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev kind"),
		),
		NextKind: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next kind"),
		),
		Kind: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "select kind"),
		),
		CopyResult: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy result"),
		),
		CopyAsCurl: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy as cURL"),
		),
	}
}
