package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/sadopc/zencrawl/internal/protocol"
	"github.com/sadopc/zencrawl/internal/ui/msgs"
	"github.com/sadopc/zencrawl/internal/ui/theme"
)

// paletteCommand is a command entry in the palette.
type paletteCommand struct {
	Name     string
	Shortcut string
	Msg      tea.Msg
}

type paletteCommands []paletteCommand

// String and Len let fuzzy.FindFrom search the command names directly.
func (p paletteCommands) String(i int) string { return p[i].Name }
func (p paletteCommands) Len() int            { return len(p) }

var defaultCommands = paletteCommands{
	{Name: "Run Extraction", Shortcut: "Ctrl+R", Msg: msgs.RunMsg{}},
	{Name: "Mode: Single URL", Shortcut: "1", Msg: msgs.SwitchKindMsg{Kind: protocol.KindSingle}},
	{Name: "Mode: Crawl", Shortcut: "2", Msg: msgs.SwitchKindMsg{Kind: protocol.KindCrawl}},
	{Name: "Mode: Map", Shortcut: "3", Msg: msgs.SwitchKindMsg{Kind: protocol.KindMap}},
	{Name: "Mode: Search", Shortcut: "4", Msg: msgs.SwitchKindMsg{Kind: protocol.KindSearch}},
	{Name: "Copy Result", Shortcut: "y", Msg: msgs.CopyResultMsg{}},
	{Name: "Copy as cURL", Shortcut: "Y", Msg: msgs.CopyAsCurlMsg{}},
	{Name: "Get Code: cURL", Msg: msgs.GenerateCodeMsg{Language: "curl"}},
	{Name: "Get Code: Python", Msg: msgs.GenerateCodeMsg{Language: "python"}},
	{Name: "Get Code: JavaScript", Msg: msgs.GenerateCodeMsg{Language: "javascript"}},
	{Name: "Get Code: Go", Msg: msgs.GenerateCodeMsg{Language: "go"}},
	{Name: "Reset Form", Shortcut: "R", Msg: msgs.ResetFormMsg{}},
	{Name: "Toggle History", Shortcut: "b", Msg: msgs.ToggleHistoryMsg{}},
	{Name: "Clear History", Shortcut: "C", Msg: msgs.ClearHistoryMsg{}},
	{Name: "Switch Theme", Msg: msgs.SwitchThemeMsg{}},
	{Name: "Help", Shortcut: "?", Msg: msgs.ShowHelpMsg{}},
	{Name: "Quit", Shortcut: "Ctrl+C", Msg: tea.QuitMsg{}},
}

// CommandPalette is a fuzzy command palette overlay.
type CommandPalette struct {
	Visible  bool
	input    textinput.Model
	commands paletteCommands
	filtered paletteCommands
	cursor   int
	theme    theme.Theme
}

// NewCommandPalette creates a new command palette.
func NewCommandPalette(t theme.Theme) CommandPalette {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.CharLimit = 64
	ti.Width = 54

	return CommandPalette{
		input:    ti,
		commands: defaultCommands,
		filtered: defaultCommands,
		theme:    t,
	}
}

// SetTheme swaps the overlay colors.
func (m *CommandPalette) SetTheme(t theme.Theme) { m.theme = t }

// Open shows the palette with the default commands.
func (m *CommandPalette) Open() {
	m.open(defaultCommands, "Type a command...")
}

// OpenThemePicker opens the palette in theme selection mode.
func (m *CommandPalette) OpenThemePicker(themeNames []string) {
	cmds := make(paletteCommands, len(themeNames))
	for i, name := range themeNames {
		cmds[i] = paletteCommand{Name: name, Msg: msgs.SwitchThemeMsg{Name: name}}
	}
	m.open(cmds, "Select theme...")
}

func (m *CommandPalette) open(cmds paletteCommands, placeholder string) {
	m.Visible = true
	m.commands = cmds
	m.filtered = cmds
	m.cursor = 0
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
}

// Close hides the palette and restores the default commands.
func (m *CommandPalette) Close() {
	m.Visible = false
	m.input.Blur()
	m.commands = defaultCommands
	m.filtered = defaultCommands
}

// Update implements tea.Model.
func (m CommandPalette) Update(msg tea.Msg) (CommandPalette, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Close()
			return m, toNormal
		case "enter":
			if m.cursor >= len(m.filtered) {
				return m, nil
			}
			selected := m.filtered[m.cursor].Msg
			m.Close()
			return m, tea.Batch(toNormal, func() tea.Msg { return selected })
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter(m.input.Value())
	return m, cmd
}

func (m *CommandPalette) filter(query string) {
	if strings.TrimSpace(query) == "" {
		m.filtered = m.commands
	} else {
		matches := fuzzy.FindFrom(query, m.commands)
		m.filtered = make(paletteCommands, len(matches))
		for i, match := range matches {
			m.filtered[i] = m.commands[match.Index]
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the command palette overlay.
func (m CommandPalette) View() string {
	if !m.Visible {
		return ""
	}

	const boxWidth = 60
	const rowWidth = boxWidth - 6

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(boxWidth - 4).
		Align(lipgloss.Center).
		Render("Command Palette")

	nameStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	shortcutStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)
	cursorStyle := lipgloss.NewStyle().
		Background(m.theme.Overlay).
		Foreground(m.theme.Text).
		Width(boxWidth - 4)

	shown := m.filtered
	if len(shown) > 15 {
		shown = shown[:15]
	}

	items := make([]string, 0, len(shown))
	for i, c := range shown {
		name := c.Name
		if limit := rowWidth - len(c.Shortcut) - 1; len(name) > limit {
			name = name[:limit-1] + "…"
		}
		gap := rowWidth - len(name) - len(c.Shortcut)
		if gap < 1 {
			gap = 1
		}
		if i == m.cursor {
			items = append(items, cursorStyle.Render(name+strings.Repeat(" ", gap)+c.Shortcut))
			continue
		}
		items = append(items, nameStyle.Render(name)+strings.Repeat(" ", gap)+shortcutStyle.Render(c.Shortcut))
	}
	if len(items) == 0 {
		items = append(items, shortcutStyle.Render("No matching commands"))
	}

	return lipgloss.NewStyle().
		Width(boxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(title + "\n\n" + m.input.View() + "\n\n" + strings.Join(items, "\n"))
}
