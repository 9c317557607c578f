package result

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/zencrawl/internal/ui/theme"
)

// SearchBar provides search within the displayed result.
type SearchBar struct {
	input   textinput.Model
	active  bool
	query   string
	matches []int // line indices of matches
	current int   // index into matches
	styles  theme.Styles
	width   int
}

// NewSearchBar creates a new search bar.
func NewSearchBar(s theme.Styles) SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 256
	ti.Prompt = "/ "
	return SearchBar{input: ti, styles: s}
}

// Active returns whether the search bar is visible.
func (m SearchBar) Active() bool { return m.active }

// Typing reports whether the query input has the keyboard.
func (m SearchBar) Typing() bool { return m.active && m.input.Focused() }

// Query returns the current search query.
func (m SearchBar) Query() string { return m.query }

// Open activates the search bar with an empty query.
func (m *SearchBar) Open() tea.Cmd {
	m.active = true
	m.input.SetValue("")
	m.query = ""
	m.matches = nil
	m.current = 0
	return m.input.Focus()
}

// Close deactivates the search bar.
func (m *SearchBar) Close() {
	m.active = false
	m.input.Blur()
	m.query = ""
	m.matches = nil
	m.current = 0
}

// SetWidth sets the search bar width.
func (m *SearchBar) SetWidth(w int) {
	m.width = w
	m.input.Width = max(10, w-20)
}

// Update handles messages for the search bar.
func (m SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Close()
			return m, nil
		case "enter":
			m.query = m.input.Value()
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query = m.input.Value()
	return m, cmd
}

// SetMatches updates the match positions.
func (m *SearchBar) SetMatches(matches []int) {
	m.matches = matches
	if m.current >= len(matches) {
		m.current = 0
	}
}

// NextMatch moves to the next match.
func (m *SearchBar) NextMatch() {
	if len(m.matches) > 0 {
		m.current = (m.current + 1) % len(m.matches)
	}
}

// PrevMatch moves to the previous match.
func (m *SearchBar) PrevMatch() {
	if len(m.matches) > 0 {
		m.current = (m.current - 1 + len(m.matches)) % len(m.matches)
	}
}

// CurrentMatchLine returns the line of the current match, or -1.
func (m SearchBar) CurrentMatchLine() int {
	if m.current < len(m.matches) {
		return m.matches[m.current]
	}
	return -1
}

// View renders the search bar.
func (m SearchBar) View() string {
	if !m.active {
		return ""
	}

	var info string
	if m.query != "" {
		if len(m.matches) == 0 {
			info = m.styles.Error.Render(" No matches")
		} else {
			info = m.styles.Muted.Render(fmt.Sprintf(" %d/%d", m.current+1, len(m.matches)))
		}
	}
	return lipgloss.NewStyle().Width(m.width).Render(m.input.View() + info)
}

// HighlightMatches marks every case-insensitive occurrence of query in
// content with style and returns the lines that matched.
func HighlightMatches(content, query string, style lipgloss.Style) (string, []int) {
	if query == "" {
		return content, nil
	}

	lines := strings.Split(content, "\n")
	lowerQuery := strings.ToLower(query)
	var matchLines []int

	for i, line := range lines {
		lowerLine := strings.ToLower(line)
		if !strings.Contains(lowerLine, lowerQuery) {
			continue
		}
		matchLines = append(matchLines, i)

		var b strings.Builder
		for {
			idx := strings.Index(lowerLine, lowerQuery)
			if idx < 0 {
				b.WriteString(line)
				break
			}
			b.WriteString(line[:idx])
			b.WriteString(style.Render(line[idx : idx+len(lowerQuery)]))
			line = line[idx+len(lowerQuery):]
			lowerLine = lowerLine[idx+len(lowerQuery):]
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n"), matchLines
}
