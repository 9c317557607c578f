package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sadopc/zencrawl/internal/playground"
	"github.com/sadopc/zencrawl/internal/render"
	"github.com/sadopc/zencrawl/internal/ui/msgs"
)

// loadHistory refreshes the history panel from the store.
func (a *App) loadHistory() {
	a.history.SetRecords(a.store.List())
	a.statusBar.SetHistoryCount(a.store.Len())
}

// handleHistorySelected puts a past attempt back on display without
// calling the service.
func (a App) handleHistorySelected(msg msgs.HistorySelectedMsg) (tea.Model, tea.Cmd) {
	if a.play.Busy() {
		a.statusBar.SetMessage("An extraction is already running")
		return a, nil
	}

	loaded, err := a.play.LoadHistory(msg.ID)
	if err != nil {
		if errors.Is(err, playground.ErrNotFound) {
			a.loadHistory()
		}
		log.Error("loading history entry", "id", msg.ID, "err", err)
		cmd := a.toast.Show("Failed to load history item", true, errorToastDuration)
		return a, cmd
	}
	if loaded.Result == nil {
		cmd := a.toast.Show(loaded.Message, true, errorToastDuration)
		return a, cmd
	}

	rec := loaded.Record
	a.switchKind(msgs.SwitchKindMsg{Kind: rec.Kind})
	a.editor.SetTarget(rec.Kind, rec.Target)
	a.result.SetView(render.Preview)
	a.result.SetResult(loaded.Result, rec.Target)
	a.display = playground.ResultReady
	a.statusBar.SetState(playground.ResultReady, 0, itemCount(loaded.Result))

	a.focus = msgs.FocusResult
	a.updateFocus()
	return a, nil
}

func (a App) handleRemoveHistory(msg msgs.RemoveHistoryMsg) (tea.Model, tea.Cmd) {
	if err := a.store.Remove(msg.ID); err != nil {
		log.Error("removing history entry", "id", msg.ID, "err", err)
		cmd := a.toast.Show("Could not remove entry: "+err.Error(), true, errorToastDuration)
		return a, cmd
	}
	a.loadHistory()
	cmd := a.toast.Show("Entry removed", false, 2*time.Second)
	return a, cmd
}

// handleClearHistory asks for confirmation first; the modal sends the
// message back with Confirmed set.
func (a App) handleClearHistory(msg msgs.ClearHistoryMsg) (tea.Model, tea.Cmd) {
	if !msg.Confirmed {
		n := a.store.Len()
		if n == 0 {
			cmd := a.toast.Show("History is already empty", false, 2*time.Second)
			return a, cmd
		}
		a.mode = msgs.ModeModal
		a.modal.Show("Clear history",
			fmt.Sprintf("Remove all %d entries? This cannot be undone.", n),
			msgs.ClearHistoryMsg{Confirmed: true}, true)
		return a, nil
	}

	if err := a.store.Clear(); err != nil {
		log.Error("clearing history", "err", err)
		cmd := a.toast.Show("Could not clear history: "+err.Error(), true, errorToastDuration)
		return a, cmd
	}
	a.loadHistory()
	cmd := a.toast.Show("History cleared", false, 2*time.Second)
	return a, cmd
}
