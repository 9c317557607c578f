// Package result is the panel showing the displayed extraction result.
package result

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/protocol"
	"github.com/sadopc/zencrawl/internal/render"
	"github.com/sadopc/zencrawl/internal/ui/theme"
)

// Model is the result panel: a loading state, an error state, or the
// result with one tab per render.View.
type Model struct {
	viewer  viewer
	spinner spinner.Model

	styles theme.Styles
	th     theme.Theme
	active render.View

	focused bool
	loading bool
	kind    protocol.Kind
	target  string
	errMsg  string
	width   int
	height  int
}

// New creates an empty result panel.
func New(t theme.Theme, s theme.Styles) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Mauve)

	return Model{
		viewer:  newViewer(t, s),
		spinner: sp,
		styles:  s,
		th:      t,
		active:  render.Preview,
	}
}

// SetResult shows r. A nil r clears the panel.
func (m *Model) SetResult(r *api.Result, target string) {
	m.loading = false
	m.errMsg = ""
	m.target = target
	if r != nil {
		m.kind = r.Kind
	}
	m.viewer.setResult(r, m.active)
}

// SetError shows a failure message in place of a result.
func (m *Model) SetError(msg string) {
	m.loading = false
	m.errMsg = msg
	m.viewer.setResult(nil, m.active)
}

// SetLoading puts the panel into the running state for kind and target.
// The previous result is dropped. The returned Cmd drives the spinner.
func (m *Model) SetLoading(kind protocol.Kind, target string) tea.Cmd {
	m.loading = true
	m.kind = kind
	m.target = target
	m.errMsg = ""
	m.viewer.setResult(nil, m.active)
	return m.spinner.Tick
}

// Loading reports whether an extraction is running.
func (m Model) Loading() bool { return m.loading }

// Result returns the displayed result, or nil.
func (m Model) Result() *api.Result { return m.viewer.res }

// ActiveView returns the selected tab.
func (m Model) ActiveView() render.View { return m.active }

// SetView selects a tab.
func (m *Model) SetView(v render.View) {
	m.active = v
	m.viewer.setView(v)
}

// Text returns the unstyled content of the selected tab.
func (m Model) Text() string { return m.viewer.text }

// Searching reports whether the search input has the keyboard.
func (m Model) Searching() bool { return m.viewer.search.Typing() }

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(focused bool) { m.focused = focused }

// SetTheme swaps the theme and styles.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.th = t
	m.styles = s
	m.spinner.Style = lipgloss.NewStyle().Foreground(t.Mauve)
	m.viewer.setTheme(t, s)
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	// border, tab bar and info line
	m.viewer.setSize(max(0, w-2), max(0, h-4))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok && !m.viewer.search.Typing() && m.viewer.res != nil {
		switch key.String() {
		case "p":
			m.SetView(render.Preview)
			return m, nil
		case "J":
			m.SetView(render.JSON)
			return m, nil
		case "m":
			m.SetView(render.Markdown)
			return m, nil
		case "H":
			m.SetView(render.HTML)
			return m, nil
		case "v", "right":
			m.SetView(render.Views[(int(m.active)+1)%len(render.Views)])
			return m, nil
		case "left":
			n := len(render.Views)
			m.SetView(render.Views[(int(m.active)+n-1)%n])
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}
	innerW := max(0, m.width-2)
	innerH := max(0, m.height-2)

	var content string
	switch {
	case m.loading:
		content = m.renderLoading(innerW, innerH)
	case m.errMsg != "":
		content = m.renderError(innerW, innerH)
	case m.viewer.res == nil:
		msg := m.styles.Muted.Render("Run an extraction to see the result")
		content = lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, msg)
	default:
		content = m.renderResult(innerW, innerH)
	}

	return border.Width(innerW).Height(innerH).Render(content)
}

func (m Model) renderLoading(w, h int) string {
	verb := map[protocol.Kind]string{
		protocol.KindSingle: "Scraping",
		protocol.KindCrawl:  "Crawling",
		protocol.KindMap:    "Mapping",
		protocol.KindSearch: "Searching",
	}[m.kind]
	if verb == "" {
		verb = "Extracting"
	}
	msg := fmt.Sprintf("%s %s %s…", m.spinner.View(), verb, m.styles.URL.Render(m.target))
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg)
}

func (m Model) renderError(w, h int) string {
	title := m.styles.Error.Bold(true).Render("Extraction failed")
	body := lipgloss.NewStyle().Width(max(10, w-4)).Foreground(m.th.Red).Render(m.errMsg)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", body))
}

func (m Model) renderResult(w, h int) string {
	var tabs []string
	for _, v := range render.Views {
		if v == m.active {
			tabs = append(tabs, m.styles.TabActive.Render(v.String()))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(v.String()))
		}
	}
	tabRow := lipgloss.NewStyle().Width(w).MaxHeight(1).Render(strings.Join(tabs, " "))

	body := lipgloss.NewStyle().Width(w).Height(max(0, h-2)).MaxHeight(max(0, h-2)).Render(m.viewer.View())
	return lipgloss.JoinVertical(lipgloss.Left, tabRow, m.renderInfo(w), body)
}

func (m Model) renderInfo(w int) string {
	r := m.viewer.res
	parts := []string{
		m.styles.KindStyle(r.Kind).Render(r.Kind.Label()),
		m.styles.Muted.Render(m.target),
	}
	if n := len(r.Items); n > 0 {
		parts = append(parts, m.styles.Subtitle.Render(humanize.Comma(int64(n))+" items"))
	}
	if n := len(r.Links); n > 0 {
		parts = append(parts, m.styles.Subtitle.Render(humanize.Comma(int64(n))+" links"))
	}
	parts = append(parts, m.styles.Subtitle.Render(humanize.Bytes(uint64(len(r.Raw)))))
	return lipgloss.NewStyle().Width(w).MaxHeight(1).Render(strings.Join(parts, m.styles.Muted.Render(" · ")))
}
