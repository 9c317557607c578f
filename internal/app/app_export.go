package app

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/export"
	"github.com/sadopc/zencrawl/internal/export/codegen"
	"github.com/sadopc/zencrawl/internal/ui/msgs"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func (a App) copyResult() (tea.Model, tea.Cmd) {
	text := a.result.Text()
	if text == "" {
		cmd := a.toast.Show("No result to copy", true, 2*time.Second)
		return a, cmd
	}
	if err := writeClipboard(text); err != nil {
		cmd := a.toast.Show("Clipboard error: "+err.Error(), true, errorToastDuration)
		return a, cmd
	}
	cmd := a.toast.Show("Copied "+a.result.ActiveView().String(), false, 2*time.Second)
	return a, cmd
}

// pendingRequest is the call the form would send right now.
func (a App) pendingRequest() (export.Request, error) {
	a.editor.Commit()
	call, err := a.editor.Form().Call(a.editor.Kind())
	if err != nil {
		return export.Request{}, err
	}
	return export.FromCall(a.client, call)
}

func (a App) copyAsCurl() (tea.Model, tea.Cmd) {
	req, err := a.pendingRequest()
	if err != nil {
		cmd := a.toast.Show(api.Message(err), true, errorToastDuration)
		return a, cmd
	}
	if err := writeClipboard(export.AsCurl(req)); err != nil {
		cmd := a.toast.Show("Clipboard error: "+err.Error(), true, errorToastDuration)
		return a, cmd
	}
	cmd := a.toast.Show("Copied as cURL", false, 2*time.Second)
	return a, cmd
}

func (a App) handleGenerateCode(msg msgs.GenerateCodeMsg) (tea.Model, tea.Cmd) {
	lang, err := codegen.ParseLanguage(msg.Language)
	if err != nil {
		cmd := a.toast.Show(err.Error(), true, errorToastDuration)
		return a, cmd
	}
	req, err := a.pendingRequest()
	if err != nil {
		cmd := a.toast.Show(api.Message(err), true, errorToastDuration)
		return a, cmd
	}
	code, err := codegen.Generate(req, lang)
	if err != nil {
		cmd := a.toast.Show(err.Error(), true, errorToastDuration)
		return a, cmd
	}
	if err := writeClipboard(code); err != nil {
		cmd := a.toast.Show("Clipboard error: "+err.Error(), true, errorToastDuration)
		return a, cmd
	}
	cmd := a.toast.Show("Copied "+string(lang)+" snippet", false, 2*time.Second)
	return a, cmd
}
