package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/zencrawl/internal/ui/msgs"
	"github.com/sadopc/zencrawl/internal/ui/theme"
)

// Modal is a confirm dialog. It emits onConfirm when accepted.
type Modal struct {
	Visible   bool
	Title     string
	Message   string
	onConfirm tea.Msg
	focusOK   bool
	theme     theme.Theme
}

// NewModal creates a new modal dialog.
func NewModal(t theme.Theme) Modal {
	return Modal{theme: t, focusOK: true}
}

// Show displays the modal. Focus starts on Cancel for destructive
// confirmations so a stray enter does nothing.
func (m *Modal) Show(title, message string, onConfirm tea.Msg, destructive bool) {
	m.Visible = true
	m.Title = title
	m.Message = message
	m.onConfirm = onConfirm
	m.focusOK = !destructive
}

// SetTheme swaps the dialog colors.
func (m *Modal) SetTheme(t theme.Theme) { m.theme = t }

func toNormal() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }

// Update implements tea.Model.
func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !m.Visible || !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "n":
		m.Visible = false
		return m, toNormal
	case "y":
		m.focusOK = true
		return m.confirm()
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.focusOK = !m.focusOK
	case "enter":
		return m.confirm()
	}
	return m, nil
}

func (m Modal) confirm() (Modal, tea.Cmd) {
	m.Visible = false
	if !m.focusOK || m.onConfirm == nil {
		return m, toNormal
	}
	confirmed := m.onConfirm
	return m, tea.Batch(toNormal, func() tea.Msg { return confirmed })
}

// View renders the modal dialog.
func (m Modal) View() string {
	if !m.Visible {
		return ""
	}

	const boxWidth = 50
	inner := lipgloss.NewStyle().Width(boxWidth - 4).Align(lipgloss.Center)

	button := func(label string, focused bool, accent lipgloss.Color) string {
		st := lipgloss.NewStyle().Padding(0, 3)
		if focused {
			return st.Background(accent).Foreground(m.theme.Base).Bold(true).Render(label)
		}
		return st.Background(m.theme.Surface).Foreground(m.theme.Subtext).Render(label)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		button("OK", m.focusOK, m.theme.Mauve),
		"  ",
		button("Cancel", !m.focusOK, m.theme.Red),
	)

	content := inner.Foreground(m.theme.Text).Bold(true).Render(m.Title) + "\n\n" +
		inner.Foreground(m.theme.Subtext).Render(m.Message) + "\n\n" +
		inner.Render(buttons)

	return lipgloss.NewStyle().
		Width(boxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}
