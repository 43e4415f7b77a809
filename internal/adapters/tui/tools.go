package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/services"
)

// Tool tabs in display order.
const (
	TabBreathing = iota
	TabJournal
	TabChat
	TabMood
)

var tabNames = []string{"Breathing Timer", "Journal", "Support Chat", "Mood Tracker"}

// toolsView hosts the four standalone tools. Switching tabs stops whatever
// timer the breathing tab was running.
type toolsView struct {
	tab       int
	breathing timerModel
	journal   *journalTab
	chat      *chatTab
	mood      *moodTab
	leave     bool
	width     int
	st        styles
}

func newToolsView(ctx context.Context, journal *services.JournalService, moods *services.MoodService, limits config.BreathingConfig, theme config.ThemeConfig) *toolsView {
	return &toolsView{
		breathing: newBreathingTool(limits, theme),
		journal:   newJournalTab(ctx, journal, theme),
		chat:      newChatTab(theme),
		mood:      newMoodTab(ctx, moods, theme),
		st:        newStyles(theme),
	}
}

// selectTab switches tabs, pausing the breathing timer and reloading data tabs.
func (v *toolsView) selectTab(tab int) {
	if tab < 0 || tab >= len(tabNames) {
		return
	}
	v.breathing.cd.Pause()
	v.tab = tab
	switch tab {
	case TabJournal:
		v.journal.reload()
	case TabMood:
		v.mood.reload()
	case TabChat:
		v.chat.input.Focus()
	}
}

// typing reports whether the active tab is capturing text.
func (v *toolsView) typing() bool {
	switch v.tab {
	case TabJournal:
		return v.journal.composing
	case TabChat:
		return true
	case TabMood:
		return v.mood.noting
	}
	return false
}

func (v *toolsView) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+n", "ctrl+right":
			v.selectTab((v.tab + 1) % len(tabNames))
			return nil
		case "ctrl+p", "ctrl+left":
			v.selectTab((v.tab + len(tabNames) - 1) % len(tabNames))
			return nil
		case "1", "2", "3", "4":
			if !v.typing() {
				v.selectTab(int(key.Runes[0] - '1'))
				return nil
			}
		case "esc":
			if !v.typing() || v.tab == TabChat {
				v.breathing.cd.Pause()
				v.leave = true
				return nil
			}
		}
	}

	switch v.tab {
	case TabBreathing:
		if key, ok := msg.(tea.KeyMsg); ok {
			return v.breathing.update(key)
		}
	case TabJournal:
		return v.journal.update(msg)
	case TabChat:
		return v.chat.update(msg)
	case TabMood:
		return v.mood.update(msg)
	}
	return nil
}

func (v *toolsView) tick() (bool, tea.Cmd) {
	if v.tab != TabBreathing || !v.breathing.running() {
		return false, nil
	}
	running, _ := v.breathing.tick()
	return running, nil
}

func (v *toolsView) view() string {
	var tabs []string
	for i, name := range tabNames {
		if i == v.tab {
			tabs = append(tabs, v.st.tabOn.Render(name))
		} else {
			tabs = append(tabs, v.st.tab.Render(name))
		}
	}

	var body string
	switch v.tab {
	case TabBreathing:
		body = v.breathing.view(v.width)
	case TabJournal:
		body = v.journal.view()
	case TabChat:
		body = v.chat.view(v.width)
	case TabMood:
		body = v.mood.view()
	}

	var b strings.Builder
	b.WriteString(v.st.title.Render("🛠  Wellness Tools") + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")
	b.WriteString(body)
	b.WriteString("\n\n" + v.st.help.Render("ctrl+n/ctrl+p switch tab · esc home · ctrl+c quit"))
	return b.String()
}
