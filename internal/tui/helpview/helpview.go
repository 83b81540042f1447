// Package helpview is a full-screen browser for a session's help snapshot.
package helpview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/replkit/internal/output"
	"github.com/Dicklesworthstone/replkit/internal/theme"
	"github.com/Dicklesworthstone/replkit/repl"
)

// KeyMap defines the browser's key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Quit}
}

// Model is the bubbletea model for the browser.
type Model struct {
	help   *repl.HelpContext
	keys   KeyMap
	theme  theme.Theme
	cursor int
	offset int
	width  int
	height int
}

// New creates a browser over help.
func New(help *repl.HelpContext) Model {
	return Model{
		help:   help,
		keys:   DefaultKeyMap(),
		theme:  theme.Current(),
		width:  theme.DefaultWidth,
		height: 24,
	}
}

// Selected returns the highlighted entry, if any.
func (m Model) Selected() (repl.HelpEntry, bool) {
	if len(m.help.Entries) == 0 {
		return repl.HelpEntry{}, false
	}
	return m.help.Entries[m.cursor], true
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampOffset()
	case tea.KeyMsg:
		last := len(m.help.Entries) - 1
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < last {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
		case key.Matches(msg, m.keys.Bottom):
			if last >= 0 {
				m.cursor = last
			}
		}
		m.clampOffset()
	}
	return m, nil
}

// listHeight is the number of command rows that fit above the detail pane.
func (m Model) listHeight() int {
	h := m.height/2 - 2 // title + blank line
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) clampOffset() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// View implements tea.Model
func (m Model) View() string {
	t := m.theme
	var b strings.Builder

	title := strings.TrimSpace(m.help.AppName + " " + m.help.Version)
	if title == "" {
		title = "Commands"
	}
	b.WriteString(t.Title.Render(title) + "\n\n")

	if len(m.help.Entries) == 0 {
		b.WriteString(t.Muted.Render("No commands registered") + "\n")
		return b.String()
	}

	selected := lipgloss.NewStyle().Bold(true).Reverse(true)
	end := m.offset + m.listHeight()
	if end > len(m.help.Entries) {
		end = len(m.help.Entries)
	}
	for i := m.offset; i < end; i++ {
		e := m.help.Entries[i]
		line := fmt.Sprintf("%-14s %s", e.Command, output.Truncate(e.Summary, m.width-18))
		if i == m.cursor {
			b.WriteString("> " + selected.Render(line) + "\n")
		} else {
			b.WriteString("  " + t.Command.Render(line) + "\n")
		}
	}

	entry, _ := m.Selected()
	b.WriteString("\n" + t.Heading.Render("USAGE") + "\n")
	b.WriteString("  " + entry.Usage() + "\n")
	if entry.Summary != "" {
		b.WriteString(output.Wrap(entry.Summary, m.width, 2) + "\n")
	}
	if len(entry.Parameters) > 0 {
		b.WriteString("\n" + t.Heading.Render("PARAMETERS") + "\n")
		for _, p := range entry.Parameters {
			b.WriteString("  " + t.Param.Render(p.Usage()) + "\n")
		}
	}

	b.WriteString("\n" + t.Muted.Render(m.footer()))
	return b.String()
}

func (m Model) footer() string {
	var parts []string
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// Run shows the browser until the user quits.
func Run(help *repl.HelpContext, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(help), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
