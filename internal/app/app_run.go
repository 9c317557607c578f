package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/playground"
	"github.com/sadopc/zencrawl/internal/ui/components"
	"github.com/sadopc/zencrawl/internal/ui/msgs"
)

const errorToastDuration = 4 * time.Second

// runExtraction starts an attempt for the active kind. The call runs in
// a Cmd and reports back with an ExtractionDoneMsg.
func (a App) runExtraction() (tea.Model, tea.Cmd) {
	a.editor.Commit()
	kind := a.editor.Kind()

	attempt, err := a.play.Begin(kind, a.editor.Form())
	if err != nil {
		var verr *playground.ValidationError
		switch {
		case errors.Is(err, playground.ErrBusy):
			a.statusBar.SetMessage("An extraction is already running")
			return a, components.ClearStatusAfter(2 * time.Second)
		case errors.As(err, &verr):
			cmd := a.toast.Show(verr.Error(), true, errorToastDuration)
			return a, cmd
		default:
			cmd := a.toast.Show(err.Error(), true, errorToastDuration)
			return a, cmd
		}
	}

	a.started = time.Now()
	a.display = playground.Running
	a.editor.SetLocked(true)
	a.tabBar.SetLocked(true)
	a.syncMode()
	a.statusBar.SetMessage("")
	a.statusBar.SetState(playground.Running, 0, 0)
	spin := a.result.SetLoading(kind, attempt.Target())

	run := func() tea.Msg {
		return msgs.ExtractionDoneMsg{Outcome: attempt.Exec(context.Background())}
	}
	return a, tea.Batch(run, spin)
}

func (a App) handleExtractionDone(msg msgs.ExtractionDoneMsg) (tea.Model, tea.Cmd) {
	out, err := a.play.Resolve(msg.Outcome)
	if errors.Is(err, playground.ErrStale) {
		log.Warn("dropping stale extraction outcome", "kind", msg.Outcome.Kind, "target", msg.Outcome.Target)
		return a, nil
	}

	elapsed := time.Since(a.started)
	a.editor.SetLocked(false)
	a.tabBar.SetLocked(false)

	var cmds []tea.Cmd
	if out.Failed() {
		a.display = playground.Failed
		a.result.SetError(out.Message)
		cmds = append(cmds, a.toast.Show(out.Message, true, errorToastDuration))
	} else {
		a.display = playground.ResultReady
		a.result.SetResult(out.Result, out.Target)
		a.focus = msgs.FocusResult
		a.updateFocus()
		cmds = append(cmds, a.toast.Show("Extraction completed", false, 2*time.Second))
	}
	a.statusBar.SetState(a.display, elapsed, itemCount(out.Result))

	if err != nil {
		a.statusBar.SetMessage("History not saved: " + err.Error())
		cmds = append(cmds, components.ClearStatusAfter(5*time.Second))
	}
	a.loadHistory()
	return a, tea.Batch(cmds...)
}

// itemCount is the number of pages, hits or links in r.
func itemCount(r *api.Result) int {
	if r == nil {
		return 0
	}
	if len(r.Items) > 0 {
		return len(r.Items)
	}
	return len(r.Links)
}
