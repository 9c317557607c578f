// Package history is the panel listing past extraction attempts.
package history

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"

	corehistory "github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/protocol"
	"github.com/sadopc/zencrawl/internal/ui/msgs"
	"github.com/sadopc/zencrawl/internal/ui/theme"
)

// Model is the history panel. Records are shown newest first, the order
// the store keeps them in.
type Model struct {
	records  []corehistory.Record
	filtered []int // indices into records that match the filter
	cursor   int   // index into filtered
	offset   int   // first visible row

	width   int
	height  int
	focused bool

	filtering   bool
	filterInput textinput.Model

	now    func() time.Time
	theme  theme.Theme
	styles theme.Styles
}

// New creates an empty history panel.
func New(t theme.Theme, s theme.Styles) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by url or kind"
	ti.CharLimit = 128

	return Model{
		theme:       t,
		styles:      s,
		filterInput: ti,
		now:         time.Now,
	}
}

// SetRecords replaces the displayed records.
func (m *Model) SetRecords(records []corehistory.Record) {
	m.records = records
	m.applyFilter()
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.scroll()
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) { m.focused = f }

// SetTheme swaps the theme and styles.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// Filtering reports whether the filter input has the keyboard.
func (m Model) Filtering() bool { return m.filtering }

// Selected returns the record under the cursor.
func (m Model) Selected() (corehistory.Record, bool) {
	if len(m.filtered) == 0 {
		return corehistory.Record{}, false
	}
	return m.records[m.filtered[m.cursor]], true
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case "C":
		if len(m.records) > 0 {
			return m, func() tea.Msg { return msgs.ClearHistoryMsg{} }
		}
		return m, nil
	}

	if len(m.filtered) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.filtered) - 1
	case "enter", "l":
		id := m.records[m.filtered[m.cursor]].ID
		return m, func() tea.Msg { return msgs.HistorySelectedMsg{ID: id} }
	case "d", "x", "delete":
		id := m.records[m.filtered[m.cursor]].ID
		return m, func() tea.Msg { return msgs.RemoveHistoryMsg{ID: id} }
	}
	m.scroll()
	return m, nil
}

func (m Model) updateFilter(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.applyFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

type searchable []corehistory.Record

func (s searchable) String(i int) string { return string(s[i].Kind) + " " + s[i].Target }
func (s searchable) Len() int            { return len(s) }

// applyFilter keeps store order; fuzzy only decides membership.
func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.filterInput.Value())
	m.filtered = m.filtered[:0]

	if query == "" {
		for i := range m.records {
			m.filtered = append(m.filtered, i)
		}
	} else {
		hit := make(map[int]bool)
		for _, match := range fuzzy.FindFrom(query, searchable(m.records)) {
			hit[match.Index] = true
		}
		for i := range m.records {
			if hit[i] {
				m.filtered = append(m.filtered, i)
			}
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.scroll()
}

// rows is the number of record lines that fit below the title.
func (m Model) rows() int {
	h := m.height - 2 - 2 // border, title and blank line
	if m.filtering {
		h--
	}
	return max(1, h)
}

func (m *Model) scroll() {
	rows := m.rows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(1, m.width-2)
	innerH := max(1, m.height-2)

	title := m.styles.Title.Render("History") + " " +
		m.styles.Muted.Render(humanize.Comma(int64(len(m.records))))
	lines := []string{title, ""}

	switch {
	case len(m.records) == 0:
		lines = append(lines, m.styles.Muted.Render(" No history yet"))
	case len(m.filtered) == 0:
		lines = append(lines, m.styles.Muted.Render(" No matches"))
	default:
		end := min(len(m.filtered), m.offset+m.rows())
		for vi := m.offset; vi < end; vi++ {
			lines = append(lines, m.renderRecord(m.records[m.filtered[vi]], vi == m.cursor, innerW))
		}
	}

	availH := innerH
	if m.filtering {
		availH--
	}
	content := fitHeight(strings.Join(lines, "\n"), availH)
	if m.filtering {
		content += "\n" + m.filterInput.View()
	}

	return border.
		Width(innerW).
		Height(innerH).
		Render(content)
}

func (m Model) renderRecord(r corehistory.Record, isCursor bool, width int) string {
	dot := lipgloss.NewStyle().Foreground(m.theme.StatusColor(r.Status)).Render("●")
	badge := m.styles.KindStyle(r.Kind).Render(kindBadge(r.Kind))
	when := humanize.RelTime(r.Timestamp, m.now(), "ago", "from now")

	// dot, badge, two spaces and the age take fixed room; the target gets the rest
	room := width - 1 - 1 - 3 - 1 - 1 - lipgloss.Width(when)
	line := dot + " " + badge + " " + truncate(r.Target, room) + " " + m.styles.Muted.Render(when)

	if isCursor {
		plain := "● " + kindBadge(r.Kind) + " " + truncate(r.Target, room) + " " + when
		return m.styles.Cursor.Width(width).Render(plain)
	}
	return line
}

func kindBadge(k protocol.Kind) string {
	switch k {
	case protocol.KindSingle:
		return "URL"
	case protocol.KindCrawl:
		return "CRL"
	case protocol.KindMap:
		return "MAP"
	case protocol.KindSearch:
		return "SRC"
	default:
		return "???"
	}
}

// truncate cuts s to at most w cells, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// fitHeight truncates or pads content to the given height.
func fitHeight(content string, h int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
