package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/zencrawl/internal/ui/theme"
)

const defaultToastDuration = 3 * time.Second

// toastDismissMsg dismisses the toast shown at generation gen.
type toastDismissMsg struct{ gen int }

// Toast is an auto-dismiss notification.
type Toast struct {
	Visible  bool
	text     string
	isError  bool
	duration time.Duration
	gen      int
	theme    theme.Theme
}

// NewToast creates a new toast component.
func NewToast(t theme.Theme) Toast {
	return Toast{theme: t, duration: defaultToastDuration}
}

// Show displays a toast message and returns a Cmd for auto-dismiss. A
// later Show supersedes the pending dismissal of an earlier one.
func (m *Toast) Show(text string, isError bool, duration time.Duration) tea.Cmd {
	m.Visible = true
	m.text = text
	m.isError = isError
	m.duration = duration
	if m.duration <= 0 {
		m.duration = defaultToastDuration
	}
	m.gen++
	gen := m.gen
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return toastDismissMsg{gen: gen}
	})
}

// Text returns the message currently shown.
func (m Toast) Text() string { return m.text }

// IsError reports whether the toast is an error toast.
func (m Toast) IsError() bool { return m.isError }

// SetTheme swaps the colors used to render the toast.
func (m *Toast) SetTheme(t theme.Theme) { m.theme = t }

// Update implements tea.Model.
func (m Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	if d, ok := msg.(toastDismissMsg); ok && d.gen == m.gen {
		m.Visible = false
		m.text = ""
	}
	return m, nil
}

// View renders the toast notification.
func (m Toast) View() string {
	if !m.Visible || m.text == "" {
		return ""
	}

	fg := m.theme.Green
	if m.isError {
		fg = m.theme.Red
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(m.theme.Surface).
		Bold(true).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		MaxWidth(80).
		Render(m.text)
}
