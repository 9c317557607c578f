// Package msgs defines the Bubble Tea messages exchanged between the
// playground panels and the root model.
package msgs

import (
	"time"

	"github.com/sadopc/zencrawl/internal/playground"
	"github.com/sadopc/zencrawl/internal/protocol"
)

// PanelFocus names a focusable panel.
type PanelFocus int

const (
	FocusHistory PanelFocus = iota
	FocusForm
	FocusResult
)

func (p PanelFocus) String() string {
	switch p {
	case FocusHistory:
		return "history"
	case FocusForm:
		return "form"
	case FocusResult:
		return "result"
	default:
		return "unknown"
	}
}

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeInsert
	ModeCommandPalette
	ModeModal
	ModeSearch
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommandPalette:
		return "COMMAND"
	case ModeModal:
		return "MODAL"
	case ModeSearch:
		return "SEARCH"
	default:
		return "UNKNOWN"
	}
}

// FocusPanelMsg requests focus change to a specific panel.
type FocusPanelMsg struct {
	Panel PanelFocus
}

// CycleFocusMsg cycles focus to the next/previous panel.
type CycleFocusMsg struct {
	Reverse bool
}

// ToggleHistoryMsg toggles the history panel.
type ToggleHistoryMsg struct{}

// RunMsg starts an extraction for the active kind.
type RunMsg struct{}

// ExtractionDoneMsg carries the settled attempt back to the root model.
type ExtractionDoneMsg struct {
	Outcome playground.Outcome
}

// SwitchKindMsg selects the active operation kind.
type SwitchKindMsg struct {
	Kind protocol.Kind
}

// HistorySelectedMsg is emitted when a history record is chosen.
type HistorySelectedMsg struct {
	ID string
}

// RemoveHistoryMsg deletes one history record.
type RemoveHistoryMsg struct {
	ID string
}

// ClearHistoryMsg asks for the whole history to be cleared. Confirmed is
// set once the user accepted the modal.
type ClearHistoryMsg struct {
	Confirmed bool
}

// HistoryChangedMsg tells the history panel to reload from the store.
type HistoryChangedMsg struct{}

// CopyResultMsg copies the result in the current view.
type CopyResultMsg struct{}

// CopyAsCurlMsg copies the pending request as a cURL command.
type CopyAsCurlMsg struct{}

// GenerateCodeMsg copies the pending request as a snippet.
type GenerateCodeMsg struct {
	Language string // curl, python, javascript, go
}

// SwitchThemeMsg requests switching to a named theme.
type SwitchThemeMsg struct {
	Name string
}

// ResetFormMsg restores the form defaults for every kind.
type ResetFormMsg struct{}

// OpenCommandPaletteMsg opens the command palette.
type OpenCommandPaletteMsg struct{}

// ShowHelpMsg toggles the help overlay.
type ShowHelpMsg struct{}

// SetModeMsg changes the app mode.
type SetModeMsg struct {
	Mode AppMode
}

// StatusMsg sets a temporary status bar message.
type StatusMsg struct {
	Text     string
	Duration time.Duration
}

// ToastMsg shows a toast notification.
type ToastMsg struct {
	Text     string
	Duration time.Duration
	IsError  bool
}
