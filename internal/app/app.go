// Package app is the root Bubble Tea model of the playground.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/config"
	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/playground"
	"github.com/sadopc/zencrawl/internal/ui/components"
	"github.com/sadopc/zencrawl/internal/ui/layout"
	"github.com/sadopc/zencrawl/internal/ui/msgs"
	"github.com/sadopc/zencrawl/internal/ui/panels/editor"
	historypanel "github.com/sadopc/zencrawl/internal/ui/panels/history"
	"github.com/sadopc/zencrawl/internal/ui/panels/result"
	"github.com/sadopc/zencrawl/internal/ui/theme"
)

// HistoryStore is the persisted history the playground records into
// and lists from. *history.Store implements it.
type HistoryStore interface {
	playground.Recorder
	List() []history.Record
	Remove(id string) error
	Clear() error
	Len() int
}

// App is the root Bubble Tea model.
type App struct {
	history historypanel.Model
	editor  editor.Model
	result  result.Model

	tabBar         components.TabBar
	statusBar      components.StatusBar
	commandPalette components.CommandPalette
	help           components.Help
	toast          components.Toast
	modal          components.Modal

	play   *playground.Orchestrator
	store  HistoryStore
	client *api.Client
	cfg    config.Config

	// display is what the status bar shows. The orchestrator itself
	// returns to idle as soon as an attempt is resolved.
	display playground.State
	started time.Time

	mode           msgs.AppMode
	focus          msgs.PanelFocus
	historyVisible bool
	layout         layout.PanelLayout
	keys           KeyMap

	theme  theme.Theme
	styles theme.Styles

	width  int
	height int
	ready  bool
}

// New creates the playground model. client sends the calls and store
// keeps the history; both outlive the model.
func New(cfg config.Config, client *api.Client, store HistoryStore) App {
	t := theme.Resolve(cfg.Theme)
	s := theme.NewStyles(t)

	a := App{
		history: historypanel.New(t, s),
		editor:  editor.New(s),
		result:  result.New(t, s),

		tabBar:         components.NewTabBar(t, s),
		statusBar:      components.NewStatusBar(t),
		commandPalette: components.NewCommandPalette(t),
		help:           components.NewHelp(t),
		toast:          components.NewToast(t),
		modal:          components.NewModal(t),

		play:   playground.New(client, store),
		store:  store,
		client: client,
		cfg:    cfg,

		mode:           msgs.ModeNormal,
		focus:          msgs.FocusForm,
		historyVisible: true,
		keys:           DefaultKeyMap(),

		theme:  t,
		styles: s,
	}

	a.statusBar.SetAPIURL(client.BaseURL())
	a.loadHistory()
	a.updateFocus()
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = layout.HandleResize(msg, a.historyVisible)
		a.resizePanels()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case msgs.RunMsg:
		return a.runExtraction()

	case msgs.ExtractionDoneMsg:
		return a.handleExtractionDone(msg)

	case msgs.SwitchKindMsg:
		a.switchKind(msg)
		return a, nil

	case msgs.HistorySelectedMsg:
		return a.handleHistorySelected(msg)

	case msgs.RemoveHistoryMsg:
		return a.handleRemoveHistory(msg)

	case msgs.ClearHistoryMsg:
		return a.handleClearHistory(msg)

	case msgs.HistoryChangedMsg:
		a.loadHistory()
		return a, nil

	case msgs.ToggleHistoryMsg:
		a.toggleHistory()
		return a, nil

	case msgs.CycleFocusMsg:
		a.cycleFocus(msg.Reverse)
		return a, nil

	case msgs.FocusPanelMsg:
		a.focus = msg.Panel
		a.updateFocus()
		return a, nil

	case msgs.ResetFormMsg:
		if a.play.Busy() {
			return a, nil
		}
		a.editor.Reset()
		cmd := a.toast.Show("Form reset", false, 2*time.Second)
		return a, cmd

	case msgs.CopyResultMsg:
		return a.copyResult()

	case msgs.CopyAsCurlMsg:
		return a.copyAsCurl()

	case msgs.GenerateCodeMsg:
		return a.handleGenerateCode(msg)

	case msgs.SwitchThemeMsg:
		return a.handleSwitchTheme(msg)

	case msgs.OpenCommandPaletteMsg:
		a.mode = msgs.ModeCommandPalette
		a.commandPalette.Open()
		return a, nil

	case msgs.ShowHelpMsg:
		a.mode = msgs.ModeModal
		a.help.SetSize(a.width, a.height)
		a.help.Toggle()
		return a, nil

	case msgs.SetModeMsg:
		a.mode = msg.Mode
		a.statusBar.SetMode(msg.Mode)
		return a, nil

	case msgs.StatusMsg:
		a.statusBar.SetMessage(msg.Text)
		if msg.Duration > 0 {
			return a, components.ClearStatusAfter(msg.Duration)
		}
		return a, nil

	case msgs.ToastMsg:
		cmd := a.toast.Show(msg.Text, msg.IsError, msg.Duration)
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.toast, cmd = a.toast.Update(msg)
	cmds = append(cmds, cmd)
	a.statusBar, cmd = a.statusBar.Update(msg)
	cmds = append(cmds, cmd)
	a.result, cmd = a.result.Update(msg)
	cmds = append(cmds, cmd)
	a.editor, cmd = a.editor.Update(msg)
	cmds = append(cmds, cmd)
	a.history, cmd = a.history.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a *App) resizePanels() {
	h := a.layout.ContentHeight
	a.history.SetSize(a.layout.HistoryWidth, h)
	a.editor.SetSize(a.layout.FormWidth, h)
	a.result.SetSize(a.layout.ResultWidth, h)
	a.tabBar.SetWidth(a.width)
	a.statusBar.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
}

func (a *App) toggleHistory() {
	a.historyVisible = !a.historyVisible
	if !a.historyVisible && a.focus == msgs.FocusHistory {
		a.focus = msgs.FocusForm
		a.updateFocus()
	}
	a.layout = layout.Calculate(a.width, a.height, a.historyVisible)
	a.resizePanels()
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var panels string
	if a.layout.SinglePanel {
		switch a.focus {
		case msgs.FocusHistory:
			a.history.SetSize(a.layout.FormWidth, a.layout.ContentHeight)
			panels = a.history.View()
		case msgs.FocusForm:
			panels = a.editor.View()
		case msgs.FocusResult:
			panels = a.result.View()
		}
	} else {
		var views []string
		if a.layout.HistoryVisible {
			views = append(views, a.history.View())
		}
		views = append(views, a.editor.View(), a.result.View())
		panels = lipgloss.JoinHorizontal(lipgloss.Top, views...)
	}

	main := lipgloss.JoinVertical(lipgloss.Left, a.tabBar.View(), panels, a.statusBar.View())

	if a.commandPalette.Visible {
		main = overlayCenter(a.commandPalette.View(), a.width, a.height, a.theme.Base)
	}
	if a.help.Visible {
		main = overlayCenter(a.help.View(), a.width, a.height, a.theme.Base)
	}
	if a.modal.Visible {
		main = overlayCenter(a.modal.View(), a.width, a.height, a.theme.Base)
	}
	if a.toast.Visible {
		main = overlayTopRight(main, a.toast.View(), a.width)
	}
	return main
}

func overlayCenter(overlay string, width, height int, bg lipgloss.Color) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(bg),
	)
}

func overlayTopRight(bg, overlay string, width int) string {
	gap := max(0, width-lipgloss.Width(overlay)-2)
	positioned := lipgloss.NewStyle().MarginLeft(gap).Render(overlay)
	return positioned + "\n" + bg
}
