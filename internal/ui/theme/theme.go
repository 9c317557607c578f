package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/protocol"
)

// Theme holds all colors for the application.
type Theme struct {
	Name string

	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color

	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color

	Mauve    lipgloss.Color
	Red      lipgloss.Color
	Peach    lipgloss.Color
	Yellow   lipgloss.Color
	Green    lipgloss.Color
	Teal     lipgloss.Color
	Blue     lipgloss.Color
	Lavender lipgloss.Color

	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
}

// KindColor returns the accent used for an operation kind in tabs and
// the history list.
func (t Theme) KindColor(k protocol.Kind) lipgloss.Color {
	switch k {
	case protocol.KindSingle:
		return t.Green
	case protocol.KindCrawl:
		return t.Peach
	case protocol.KindMap:
		return t.Teal
	case protocol.KindSearch:
		return t.Blue
	default:
		return t.Text
	}
}

// StatusColor returns the color for a history record status.
func (t Theme) StatusColor(s history.Status) lipgloss.Color {
	switch s {
	case history.StatusCompleted:
		return t.Green
	case history.StatusFailed:
		return t.Red
	default:
		return t.Muted
	}
}
