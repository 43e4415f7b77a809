package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/xvierd/calm-cli/internal/config"
)

// PickerItem represents one option in the picker.
type PickerItem struct {
	Label string
	Desc  string
}

// PickerResult holds the outcome of a picker interaction. Index refers to
// the items passed in, regardless of filtering.
type PickerResult struct {
	Index   int
	Aborted bool
}

type pickerItems []PickerItem

func (p pickerItems) String(i int) string { return p[i].Label + " " + p[i].Desc }
func (p pickerItems) Len() int            { return len(p) }

type pickerModel struct {
	title   string
	items   pickerItems
	footer  string
	filter  string
	visible []int
	cursor  int
	chosen  bool
	aborted bool
	st      styles
}

func newPicker(title string, items []PickerItem, footer string, theme config.ThemeConfig) pickerModel {
	m := pickerModel{title: title, items: items, footer: footer, st: newStyles(theme)}
	m.refilter()
	return m
}

// refilter recomputes the visible items from the typed filter.
func (m *pickerModel) refilter() {
	m.visible = m.visible[:0]
	if m.filter == "" {
		for i := range m.items {
			m.visible = append(m.visible, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(m.filter, m.items) {
			m.visible = append(m.visible, match.Index)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		if len(m.visible) == 0 {
			return m, nil
		}
		m.chosen = true
		return m, tea.Quit
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if m.filter != "" {
			m.filter = m.filter[:len(m.filter)-1]
			m.refilter()
		}
	case tea.KeyRunes:
		m.filter += string(key.Runes)
		m.refilter()
	}
	return m, nil
}

// selected returns the index of the highlighted item, or -1.
func (m pickerModel) selected() int {
	if len(m.visible) == 0 {
		return -1
	}
	return m.visible[m.cursor]
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.st.title.Render("  "+m.title) + "\n")
	if m.filter != "" {
		b.WriteString(m.st.help.Render("  filter: "+m.filter) + "\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(m.st.help.Render("    no matches") + "\n")
	}
	for i, idx := range m.visible {
		item := m.items[idx]
		if i == m.cursor {
			b.WriteString("  " + m.st.active.Render(fmt.Sprintf("▸ %-16s %s", item.Label, item.Desc)) + "\n")
		} else {
			b.WriteString(m.st.help.Render(fmt.Sprintf("    %-16s %s", item.Label, item.Desc)) + "\n")
		}
	}

	if m.footer != "" {
		b.WriteString("\n")
		b.WriteString(m.st.help.Render("  "+m.footer) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.st.help.Render("  ↑/↓ navigate · type to filter · enter select · esc back") + "\n")

	return b.String()
}

// RunPicker launches an interactive arrow-key picker and returns the selected index.
func RunPicker(title string, items []PickerItem, footer string, theme *config.ThemeConfig) PickerResult {
	p := tea.NewProgram(newPicker(title, items, footer, resolveTheme(theme)))
	result, err := p.Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}

	final := result.(pickerModel)
	if final.aborted || !final.chosen {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.selected()}
}

// --- Styled text prompt ---

// TextPromptResult holds the outcome of a text prompt.
type TextPromptResult struct {
	Value   string
	Aborted bool
}

type textPromptModel struct {
	title   string
	input   textinput.Model
	aborted bool
	st      styles
}

func newTextPrompt(title, placeholder string, theme config.ThemeConfig) textPromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()
	return textPromptModel{title: title, input: ti, st: newStyles(theme)}
}

func (m textPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textPromptModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.st.title.Render("  "+m.title) + " ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.st.help.Render("  enter confirm · esc back") + "\n")
	return b.String()
}

// RunTextPrompt launches a styled text input prompt.
func RunTextPrompt(title string, placeholder string, theme *config.ThemeConfig) TextPromptResult {
	p := tea.NewProgram(newTextPrompt(title, placeholder, resolveTheme(theme)))
	result, err := p.Run()
	if err != nil {
		return TextPromptResult{Aborted: true}
	}

	final := result.(textPromptModel)
	if final.aborted {
		return TextPromptResult{Aborted: true}
	}
	return TextPromptResult{Value: strings.TrimSpace(final.input.Value())}
}
