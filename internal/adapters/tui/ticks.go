package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg is sent once per second while a timer runs. Ticks carry the
// generation they were scheduled under; a tick from an older generation
// belongs to a view or run that no longer exists and is dropped.
type tickMsg struct {
	gen int
}

// timerStartedMsg asks the owning program to begin a fresh tick chain.
type timerStartedMsg struct{}

func timerStarted() tea.Msg { return timerStartedMsg{} }

// tickCmd creates a command that sends a tick message.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// ticker owns the generation counter of one program.
type ticker struct {
	gen int
}

// restart invalidates pending ticks and schedules the first tick of a new chain.
func (t *ticker) restart() tea.Cmd {
	t.gen++
	return tickCmd(t.gen)
}

// invalidate drops every pending tick.
func (t *ticker) invalidate() { t.gen++ }

// current reports whether msg belongs to the live chain.
func (t *ticker) current(msg tickMsg) bool { return msg.gen == t.gen }

// next schedules the following tick of the live chain.
func (t *ticker) next() tea.Cmd { return tickCmd(t.gen) }
