package result

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/render"
	"github.com/sadopc/zencrawl/internal/ui/theme"
)

// viewer shows one render.View of a result in a scrollable viewport
// with search and word wrap.
type viewer struct {
	viewport viewport.Model
	search   SearchBar
	styles   theme.Styles
	match    lipgloss.Style

	res  *api.Result
	view render.View
	text string // unstyled content, searched and copied

	width  int
	height int
	wrap   bool
}

func newViewer(t theme.Theme, s theme.Styles) viewer {
	return viewer{
		viewport: viewport.New(0, 0),
		search:   NewSearchBar(s),
		styles:   s,
		match:    matchStyle(t),
		wrap:     true,
	}
}

func matchStyle(t theme.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Yellow).Foreground(t.Base).Bold(true)
}

func (m *viewer) setTheme(t theme.Theme, s theme.Styles) {
	m.styles = s
	m.match = matchStyle(t)
	m.search.styles = s
	m.render()
}

func (m *viewer) setResult(r *api.Result, v render.View) {
	m.res = r
	m.view = v
	m.search.Close()
	m.viewport.Height = m.height
	m.render()
	m.viewport.GotoTop()
}

func (m *viewer) setView(v render.View) {
	if m.view == v {
		return
	}
	m.view = v
	m.render()
	m.viewport.GotoTop()
}

func (m *viewer) setSize(w, h int) {
	m.width = w
	m.height = h
	m.search.SetWidth(w)
	m.viewport.Width = w
	m.viewport.Height = h
	if m.search.Active() {
		m.viewport.Height--
	}
	m.render()
}

func (m *viewer) render() {
	if m.res == nil {
		m.text = ""
		m.viewport.SetContent("")
		return
	}
	m.text = render.Text(m.res, m.view)

	if q := m.search.Query(); q != "" {
		// plain text so match offsets line up
		content := m.wrapped(m.text)
		highlighted, lines := HighlightMatches(content, q, m.match)
		m.search.SetMatches(lines)
		m.viewport.SetContent(highlighted)
		if line := m.search.CurrentMatchLine(); line >= 0 {
			m.viewport.SetYOffset(line)
		}
		return
	}

	switch m.text {
	case render.NoMarkdown, render.NoHTML, render.NoPreview:
		m.viewport.SetContent(m.styles.Muted.Render(m.text))
	default:
		m.viewport.SetContent(m.wrapped(render.Highlight(m.text, render.Lexer(m.view))))
	}
}

func (m viewer) wrapped(s string) string {
	if !m.wrap || m.width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(m.width).Render(s)
}

func (m viewer) update(msg tea.Msg) (viewer, tea.Cmd) {
	if m.search.Typing() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if !m.search.Active() {
			m.viewport.Height = m.height
		}
		m.render()
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "/", "ctrl+f":
			cmd := m.search.Open()
			m.viewport.Height = m.height - 1
			return m, cmd
		case "w":
			m.wrap = !m.wrap
			m.render()
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		case "n", "N":
			if m.search.Active() && m.search.Query() != "" {
				if key.String() == "n" {
					m.search.NextMatch()
				} else {
					m.search.PrevMatch()
				}
				if line := m.search.CurrentMatchLine(); line >= 0 {
					m.viewport.SetYOffset(line)
				}
				return m, nil
			}
		case "esc":
			if m.search.Active() {
				m.search.Close()
				m.viewport.Height = m.height
				m.render()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewer) View() string {
	if m.search.Active() {
		return m.viewport.View() + "\n" + m.search.View()
	}
	return m.viewport.View()
}
