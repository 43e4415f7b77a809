package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/services"
)

const journalPageSize = 8

type journalTab struct {
	ctx       context.Context
	svc       *services.JournalService
	entries   []*domain.JournalEntry
	cursor    int
	composing bool
	input     textinput.Model
	status    string
	err       error
	st        styles
}

func newJournalTab(ctx context.Context, svc *services.JournalService, theme config.ThemeConfig) *journalTab {
	ti := textinput.New()
	ti.Placeholder = "How are you feeling today? What's on your mind?"
	ti.CharLimit = 2000
	ti.Width = 70
	return &journalTab{ctx: ctx, svc: svc, input: ti, st: newStyles(theme)}
}

func (t *journalTab) reload() {
	entries, err := t.svc.List(t.ctx)
	if err != nil {
		t.err = err
		return
	}
	t.err = nil
	t.entries = entries
	if t.cursor >= len(entries) {
		t.cursor = max(len(entries)-1, 0)
	}
}

func (t *journalTab) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if t.composing {
		if ok {
			switch key.Type {
			case tea.KeyEnter:
				t.save()
				return nil
			case tea.KeyEsc:
				t.composing = false
				t.input.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return cmd
	}
	if !ok {
		return nil
	}

	switch key.String() {
	case "n", "a":
		t.composing = true
		t.status = ""
		t.input.SetValue("")
		return t.input.Focus()
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < len(t.entries)-1 {
			t.cursor++
		}
	case "d":
		t.deleteSelected()
	}
	return nil
}

func (t *journalTab) save() {
	entry, err := t.svc.Add(t.ctx, "", t.input.Value())
	if err != nil {
		t.err = err
		return
	}
	t.composing = false
	t.input.Blur()
	t.status = "Entry saved " + entry.Timestamp.Local().Format("Jan 2 15:04")
	t.cursor = 0
	t.reload()
}

func (t *journalTab) deleteSelected() {
	if len(t.entries) == 0 {
		return
	}
	ref := t.entries[t.cursor].Ref()
	if err := t.svc.Delete(t.ctx, ref); err != nil {
		t.err = err
		return
	}
	t.status = "Entry deleted"
	t.reload()
}

func (t *journalTab) view() string {
	var b strings.Builder

	if t.composing {
		b.WriteString(t.st.accent.Render("New entry") + "\n")
		b.WriteString(t.input.View() + "\n")
		b.WriteString(t.st.help.Render("enter save · esc cancel") + "\n\n")
	}
	if t.status != "" {
		b.WriteString(t.st.active.Render(t.status) + "\n\n")
	}
	if t.err != nil {
		b.WriteString(t.st.err.Render("Error: "+t.err.Error()) + "\n\n")
	}

	if len(t.entries) == 0 {
		b.WriteString(t.st.help.Render("No journal entries yet. Start writing to track your emotional journey.") + "\n")
	}

	start := 0
	if t.cursor >= journalPageSize {
		start = t.cursor - journalPageSize + 1
	}
	end := min(start+journalPageSize, len(t.entries))
	for i := start; i < end; i++ {
		e := t.entries[i]
		header := fmt.Sprintf("%s · %s", e.Title(), e.Timestamp.Local().Format("Jan 2, 2006 15:04"))
		body := firstLine(e.Response, 70)
		if i == t.cursor {
			b.WriteString(t.st.active.Render("▸ "+header) + "\n")
			b.WriteString("  " + t.st.text.Render(body) + "\n")
		} else {
			b.WriteString(t.st.help.Render("  "+header) + "\n")
			b.WriteString("  " + t.st.help.Render(body) + "\n")
		}
	}
	if len(t.entries) > journalPageSize {
		b.WriteString(t.st.help.Render(fmt.Sprintf("  %d entries", len(t.entries))) + "\n")
	}

	if !t.composing {
		b.WriteString("\n" + t.st.help.Render("n new entry · ↑/↓ browse · d delete"))
	}
	return b.String()
}

// firstLine returns the first line of s, cut to width runes.
func firstLine(s string, width int) string {
	line, _, more := strings.Cut(s, "\n")
	r := []rune(line)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	if more {
		return line + " …"
	}
	return line
}
