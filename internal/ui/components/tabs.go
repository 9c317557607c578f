package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/zencrawl/internal/protocol"
	"github.com/sadopc/zencrawl/internal/ui/msgs"
	"github.com/sadopc/zencrawl/internal/ui/theme"
)

// TabBar shows one tab per operation kind.
type TabBar struct {
	active int
	locked bool
	width  int
	theme  theme.Theme
	styles theme.Styles
}

// NewTabBar creates a tab bar with single URL selected.
func NewTabBar(t theme.Theme, s theme.Styles) TabBar {
	return TabBar{theme: t, styles: s}
}

// Active returns the selected kind.
func (m TabBar) Active() protocol.Kind {
	return protocol.Kinds[m.active]
}

// SetActive selects kind k. Unknown kinds are ignored.
func (m *TabBar) SetActive(k protocol.Kind) {
	for i, kind := range protocol.Kinds {
		if kind == k {
			m.active = i
			return
		}
	}
}

// SetLocked disables tab switching while an extraction runs.
func (m *TabBar) SetLocked(locked bool) { m.locked = locked }

// SetWidth sets the available width.
func (m *TabBar) SetWidth(w int) { m.width = w }

// SetTheme swaps the theme and styles.
func (m *TabBar) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// Update implements tea.Model. [ and ] step through the kinds.
func (m TabBar) Update(msg tea.Msg) (TabBar, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.locked {
		return m, nil
	}
	n := len(protocol.Kinds)
	next := m.active
	switch key.String() {
	case "[":
		next = (m.active + n - 1) % n
	case "]":
		next = (m.active + 1) % n
	default:
		return m, nil
	}
	kind := protocol.Kinds[next]
	return m, func() tea.Msg { return msgs.SwitchKindMsg{Kind: kind} }
}

// View renders the tab bar.
func (m TabBar) View() string {
	sep := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("│")

	parts := make([]string, 0, len(protocol.Kinds))
	for i, k := range protocol.Kinds {
		num := lipgloss.NewStyle().Foreground(m.theme.Muted).Render(fmt.Sprintf("%d", i+1))
		label := num + " " + m.styles.KindStyle(k).Render(k.Label())
		if i == m.active {
			parts = append(parts, m.styles.TabActive.Render(label))
		} else {
			parts = append(parts, m.styles.TabInactive.Render(label))
		}
	}
	rendered := strings.Join(parts, sep)

	if m.locked {
		rendered += lipgloss.NewStyle().Foreground(m.theme.Yellow).Render("  extracting…")
	}
	if w := lipgloss.Width(rendered); w < m.width {
		rendered += strings.Repeat(" ", m.width-w)
	}
	return rendered
}
