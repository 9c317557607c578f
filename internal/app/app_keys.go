package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/zencrawl/internal/protocol"
	"github.com/sadopc/zencrawl/internal/ui/msgs"
)

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.commandPalette.Visible {
		var cmd tea.Cmd
		a.commandPalette, cmd = a.commandPalette.Update(msg)
		return a, cmd
	}
	if a.help.Visible {
		var cmd tea.Cmd
		a.help, cmd = a.help.Update(msg)
		return a, cmd
	}
	if a.modal.Visible {
		var cmd tea.Cmd
		a.modal, cmd = a.modal.Update(msg)
		return a, cmd
	}

	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// a focused text input gets every other key
	switch {
	case a.focus == msgs.FocusForm && a.editor.Editing():
		return a.updateEditorInsert(msg)
	case a.focus == msgs.FocusHistory && a.history.Filtering():
		var cmd tea.Cmd
		a.history, cmd = a.history.Update(msg)
		return a, cmd
	case a.focus == msgs.FocusResult && a.result.Searching():
		var cmd tea.Cmd
		a.result, cmd = a.result.Update(msg)
		return a, cmd
	}

	if cmd := a.handleGlobalKey(msg); cmd != nil {
		return a, cmd
	}
	return a.handlePanelKey(msg)
}

func (a App) handleGlobalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.Run):
		return func() tea.Msg { return msgs.RunMsg{} }
	case key.Matches(msg, a.keys.CommandPalette):
		return func() tea.Msg { return msgs.OpenCommandPaletteMsg{} }
	case key.Matches(msg, a.keys.Help):
		return func() tea.Msg { return msgs.ShowHelpMsg{} }
	case key.Matches(msg, a.keys.ToggleHistory):
		return func() tea.Msg { return msgs.ToggleHistoryMsg{} }
	case key.Matches(msg, a.keys.CopyResult):
		return func() tea.Msg { return msgs.CopyResultMsg{} }
	case key.Matches(msg, a.keys.CopyAsCurl):
		return func() tea.Msg { return msgs.CopyAsCurlMsg{} }
	}
	return nil
}

func (a App) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.CycleFocus):
		a.cycleFocus(false)
		return a, nil
	case key.Matches(msg, a.keys.CycleFocusRev):
		a.cycleFocus(true)
		return a, nil
	case key.Matches(msg, a.keys.PrevKind, a.keys.NextKind):
		var cmd tea.Cmd
		a.tabBar, cmd = a.tabBar.Update(msg)
		return a, cmd
	case key.Matches(msg, a.keys.Kind):
		i := int(msg.Runes[0] - '1')
		a.switchKind(msgs.SwitchKindMsg{Kind: protocol.Kinds[i]})
		return a, nil
	}

	var cmd tea.Cmd
	switch a.focus {
	case msgs.FocusHistory:
		a.history, cmd = a.history.Update(msg)
	case msgs.FocusForm:
		a.editor, cmd = a.editor.Update(msg)
		a.syncMode()
	case msgs.FocusResult:
		a.result, cmd = a.result.Update(msg)
	}
	return a, cmd
}

func (a App) updateEditorInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Run) {
		a.editor.Commit()
		a.syncMode()
		return a.runExtraction()
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	a.syncMode()
	return a, cmd
}

// syncMode follows the editor in and out of insert mode.
func (a *App) syncMode() {
	mode := msgs.ModeNormal
	if a.editor.Editing() {
		mode = msgs.ModeInsert
	}
	a.mode = mode
	a.statusBar.SetMode(mode)
}

// switchKind selects an operation kind. It is ignored while an
// extraction runs.
func (a *App) switchKind(msg msgs.SwitchKindMsg) {
	if a.play.Busy() || !msg.Kind.Valid() {
		return
	}
	a.play.SetKind(msg.Kind)
	a.tabBar.SetActive(msg.Kind)
	a.editor.SetKind(msg.Kind)
	a.statusBar.SetKind(msg.Kind)
	a.syncMode()
}

func (a *App) cycleFocus(reverse bool) {
	panels := []msgs.PanelFocus{msgs.FocusHistory, msgs.FocusForm, msgs.FocusResult}
	if !a.layout.HistoryVisible && !a.layout.SinglePanel {
		panels = []msgs.PanelFocus{msgs.FocusForm, msgs.FocusResult}
	}

	idx := 0
	for i, p := range panels {
		if p == a.focus {
			idx = i
			break
		}
	}

	if reverse {
		idx = (idx - 1 + len(panels)) % len(panels)
	} else {
		idx = (idx + 1) % len(panels)
	}

	a.focus = panels[idx]
	a.updateFocus()
}

func (a *App) updateFocus() {
	a.history.SetFocused(a.focus == msgs.FocusHistory)
	a.editor.SetFocused(a.focus == msgs.FocusForm)
	a.result.SetFocused(a.focus == msgs.FocusResult)
	a.syncMode()
}
