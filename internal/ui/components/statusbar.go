package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/playground"
	"github.com/sadopc/zencrawl/internal/protocol"
	"github.com/sadopc/zencrawl/internal/ui/msgs"
	"github.com/sadopc/zencrawl/internal/ui/theme"
)

// clearStatusMsg clears a temporary status message.
type clearStatusMsg struct{}

// ClearStatusAfter returns a Cmd that clears the status message after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = 3 * time.Second
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// StatusBar is a full-width bottom status bar.
type StatusBar struct {
	kind    protocol.Kind
	state   playground.State
	elapsed time.Duration
	items   int
	records int
	apiURL  string
	mode    msgs.AppMode
	message string
	width   int
	theme   theme.Theme
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme) StatusBar {
	return StatusBar{
		theme: t,
		mode:  msgs.ModeNormal,
		kind:  protocol.KindSingle,
	}
}

// SetKind sets the active operation kind.
func (m *StatusBar) SetKind(k protocol.Kind) { m.kind = k }

// SetState sets the orchestrator state and the duration of the last
// attempt. items is the number of pages or links in the result.
func (m *StatusBar) SetState(s playground.State, elapsed time.Duration, items int) {
	m.state = s
	m.elapsed = elapsed
	m.items = items
}

// SetHistoryCount sets the number of stored history records.
func (m *StatusBar) SetHistoryCount(n int) { m.records = n }

// SetAPIURL sets the service base URL shown on the right.
func (m *StatusBar) SetAPIURL(u string) { m.apiURL = u }

// SetMode sets the current app mode.
func (m *StatusBar) SetMode(mode msgs.AppMode) { m.mode = mode }

// SetWidth sets the available width.
func (m *StatusBar) SetWidth(w int) { m.width = w }

// SetMessage sets a temporary status message.
func (m *StatusBar) SetMessage(text string) { m.message = text }

// SetTheme swaps the colors used by the bar.
func (m *StatusBar) SetTheme(t theme.Theme) { m.theme = t }

// Update implements tea.Model.
func (m StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	if _, ok := msg.(clearStatusMsg); ok {
		m.message = ""
	}
	return m, nil
}

func (m StatusBar) segment(fg lipgloss.Color, bold bool, text string) string {
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(m.theme.Surface).
		Bold(bold).
		Render(text)
}

func (m StatusBar) stateColor() lipgloss.Color {
	switch m.state {
	case playground.Running:
		return m.theme.Yellow
	case playground.ResultReady:
		return m.theme.Green
	case playground.Failed:
		return m.theme.Red
	default:
		return m.theme.Subtext
	}
}

// View renders the status bar.
func (m StatusBar) View() string {
	barStyle := lipgloss.NewStyle().
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Width(m.width)

	var leftParts []string
	if m.message != "" {
		leftParts = append(leftParts, m.segment(m.theme.Text, false, m.message))
	} else {
		leftParts = append(leftParts, m.segment(m.theme.KindColor(m.kind), true, m.kind.Label()))
		leftParts = append(leftParts, m.segment(m.stateColor(), true, m.state.String()))
		if m.elapsed > 0 {
			leftParts = append(leftParts, m.segment(m.theme.Subtext, false, formatDuration(m.elapsed)))
		}
		if m.items > 0 {
			leftParts = append(leftParts, m.segment(m.theme.Subtext, false, humanize.Comma(int64(m.items))+" items"))
		}
		leftParts = append(leftParts, m.segment(m.theme.Muted, false,
			fmt.Sprintf("history %d/%d", m.records, history.MaxEntries)))
	}
	left := strings.Join(leftParts, " │ ")

	modeStr := m.segment(m.theme.Mauve, true, "["+m.mode.String()+"]")

	var rightParts []string
	if m.apiURL != "" {
		rightParts = append(rightParts, m.segment(m.theme.Teal, false, m.apiURL))
	}
	rightParts = append(rightParts, m.segment(m.theme.Muted, false, "?:help  Ctrl+K:command"))
	hint := strings.Join(rightParts, " ")

	total := lipgloss.Width(left) + lipgloss.Width(modeStr) + lipgloss.Width(hint)
	if total+2 >= m.width {
		return barStyle.Render(" " + left + " " + modeStr + " " + hint)
	}

	remaining := m.width - total - 2
	gap1 := remaining / 2
	gap2 := remaining - gap1
	line := " " + left +
		strings.Repeat(" ", gap1) + modeStr +
		strings.Repeat(" ", gap2) + hint
	return barStyle.Render(line)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
