// Package editor is the form panel where the extraction input for the
// active kind is edited.
package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/zencrawl/internal/playground"
	"github.com/sadopc/zencrawl/internal/protocol"
	"github.com/sadopc/zencrawl/internal/ui/msgs"
	"github.com/sadopc/zencrawl/internal/ui/theme"
)

// Model is the form panel. It keeps one playground.Form for all kinds,
// so values survive switching tabs.
type Model struct {
	form   playground.Form
	kind   protocol.Kind
	fields []field
	cursor int
	offset int

	input   textinput.Model
	editing bool
	locked  bool

	focused bool
	width   int
	height  int
	styles  theme.Styles
}

// New creates a form panel with the default values and single URL
// selected.
func New(styles theme.Styles) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 2048

	m := Model{
		form:   playground.DefaultForm(),
		input:  ti,
		styles: styles,
		width:  60,
		height: 20,
	}
	m.SetKind(protocol.KindSingle)
	return m
}

// SetKind switches the rows shown to those of kind. Pending edits are
// discarded.
func (m *Model) SetKind(k protocol.Kind) {
	if !k.Valid() {
		return
	}
	m.stopEditing()
	m.kind = k
	m.fields = fieldsFor(k)
	m.cursor = 0
	m.offset = 0
}

// Kind returns the kind the form is showing.
func (m Model) Kind() protocol.Kind { return m.kind }

// Form returns the current values. An edit in progress is not included.
func (m Model) Form() playground.Form { return m.form }

// SetForm replaces all values.
func (m *Model) SetForm(f playground.Form) {
	m.stopEditing()
	m.form = f
}

// Reset restores the default values for every kind.
func (m *Model) Reset() { m.SetForm(playground.DefaultForm()) }

// SetTarget sets the URL, or the query for search, as loading a history
// entry does.
func (m *Model) SetTarget(k protocol.Kind, target string) {
	m.stopEditing()
	if k.TargetsQuery() {
		m.form.Query = target
	} else {
		m.form.URL = target
	}
}

// SetLocked blocks edits while an extraction runs.
func (m *Model) SetLocked(locked bool) {
	m.locked = locked
	if locked {
		m.stopEditing()
	}
}

// SetFocused sets whether the panel is focused.
func (m *Model) SetFocused(f bool) {
	m.focused = f
	if !f {
		m.Commit()
	}
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(10, w-2-labelWidth-2)
	m.scroll()
}

// SetStyles swaps the styles after a theme change.
func (m *Model) SetStyles(s theme.Styles) { m.styles = s }

// Editing reports whether a text field has the keyboard.
func (m Model) Editing() bool { return m.editing }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.editing {
		return m.updateEditing(key)
	}
	return m.updateNormal(key)
}

func (m Model) updateNormal(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.fields) - 1
	case "R":
		return m, func() tea.Msg { return msgs.ResetFormMsg{} }
	case "enter", "i", " ":
		if m.locked {
			return m, nil
		}
		return m.activate(1)
	case "h", "left":
		if !m.locked && m.fields[m.cursor].typ == fieldChoice {
			return m.activate(-1)
		}
	case "l", "right":
		if !m.locked && m.fields[m.cursor].typ == fieldChoice {
			return m.activate(1)
		}
	}
	m.scroll()
	return m, nil
}

// activate edits a text field, flips a toggle or steps a choice by dir.
func (m Model) activate(dir int) (Model, tea.Cmd) {
	f := m.fields[m.cursor]
	switch f.typ {
	case fieldText:
		m.editing = true
		m.input.Placeholder = f.hint
		m.input.SetValue(*f.text(&m.form))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case fieldToggle:
		p := f.flag(&m.form)
		*p = !*p
	case fieldChoice:
		cur := f.get(m.form)
		idx := 0
		for i, c := range f.choices {
			if c == cur {
				idx = i
				break
			}
		}
		n := len(f.choices)
		f.set(&m.form, f.choices[(idx+dir+n)%n])
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.Commit()
		return m, nil
	case "tab":
		m.Commit()
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		m.scroll()
		return m, nil
	case "esc":
		m.stopEditing()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Commit writes the edit in progress back to the form.
func (m *Model) Commit() {
	if !m.editing {
		return
	}
	if f := m.fields[m.cursor]; f.typ == fieldText {
		*f.text(&m.form) = m.input.Value()
	}
	m.stopEditing()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
}

const labelWidth = 16

func (m Model) rows() int {
	return max(1, m.height-2-2) // border, title and blank line
}

func (m *Model) scroll() {
	rows := m.rows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}
	innerW := max(10, m.width-2)
	innerH := max(1, m.height-2)

	title := m.styles.KindStyle(m.kind).Render(m.kind.Label())
	hint := m.styles.Hint.Render("ctrl+r run")
	if m.locked {
		hint = m.styles.Warning.Render("running…")
	}
	gap := max(1, innerW-lipgloss.Width(title)-lipgloss.Width(hint))
	lines := []string{title + strings.Repeat(" ", gap) + hint, ""}

	end := min(len(m.fields), m.offset+m.rows())
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, innerW))
	}

	return border.
		Width(innerW).
		Height(innerH).
		Render(fitHeight(strings.Join(lines, "\n"), innerH))
}

func (m Model) renderRow(i, width int) string {
	f := m.fields[i]
	label := m.styles.Label.Render(f.label)
	selected := i == m.cursor && m.focused

	if selected && m.editing {
		return label + " " + m.input.View()
	}

	var value string
	switch f.typ {
	case fieldToggle:
		mark := "[ ]"
		if f.value(m.form) == "on" {
			mark = "[x]"
		}
		value = m.styles.Toggle.Render(mark)
	case fieldChoice:
		value = m.styles.Toggle.Render("‹ " + f.value(m.form) + " ›")
	default:
		v := f.value(m.form)
		switch {
		case strings.TrimSpace(v) == "":
			value = m.styles.Hint.Render(f.hint)
		case f.numeric && !isNumber(v):
			value = m.styles.Error.Render(v)
		default:
			value = m.styles.Value.Render(v)
		}
	}

	row := label + " " + value
	if selected {
		return m.styles.Cursor.Width(width).MaxWidth(width).Render(row)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(row)
}

func isNumber(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= 0
}

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
