package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/zencrawl/internal/ui/msgs"
	"github.com/sadopc/zencrawl/internal/ui/theme"
)

func (a App) handleSwitchTheme(msg msgs.SwitchThemeMsg) (tea.Model, tea.Cmd) {
	if msg.Name == "" {
		a.commandPalette.OpenThemePicker(theme.Names())
		a.mode = msgs.ModeCommandPalette
		return a, nil
	}

	t := theme.Resolve(msg.Name)
	s := theme.NewStyles(t)
	a.theme = t
	a.styles = s

	a.history.SetTheme(t, s)
	a.editor.SetStyles(s)
	a.result.SetTheme(t, s)
	a.tabBar.SetTheme(t, s)
	a.statusBar.SetTheme(t)
	a.commandPalette.SetTheme(t)
	a.help.SetTheme(t)
	a.toast.SetTheme(t)
	a.modal.SetTheme(t)

	cmd := a.toast.Show("Theme: "+t.Name, false, 2*time.Second)
	return a, cmd
}
