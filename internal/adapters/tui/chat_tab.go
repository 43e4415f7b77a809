package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/calm-cli/internal/chat"
	"github.com/xvierd/calm-cli/internal/config"
)

const chatVisibleMessages = 8

type chatTab struct {
	transcript *chat.Transcript
	input      textinput.Model
	st         styles
}

func newChatTab(theme config.ThemeConfig) *chatTab {
	ti := textinput.New()
	ti.Placeholder = "Type your message here..."
	ti.CharLimit = 500
	ti.Width = 70
	ti.Focus()
	return &chatTab{transcript: chat.NewTranscript(), input: ti, st: newStyles(theme)}
}

func (t *chatTab) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if _, sent := t.transcript.Send(t.input.Value()); sent {
			t.input.SetValue("")
		}
		return nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *chatTab) view(width int) string {
	var b strings.Builder
	msgs := t.transcript.Messages()
	if len(msgs) > chatVisibleMessages {
		msgs = msgs[len(msgs)-chatVisibleMessages:]
	}

	wrapWidth := 70
	if width > 20 {
		wrapWidth = min(width-8, 90)
	}
	for _, m := range msgs {
		if m.Role == chat.RoleUser {
			b.WriteString(t.st.accent.Render("You: ") + t.st.text.Width(wrapWidth).Render(m.Content) + "\n\n")
		} else {
			b.WriteString(t.st.active.Render("🤖 ") + t.st.text.Width(wrapWidth).Render(m.Content) + "\n\n")
		}
	}
	b.WriteString("> " + t.input.View() + "\n")
	b.WriteString(t.st.help.Render("enter send · not a replacement for professional help"))
	return b.String()
}
