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

type moodTab struct {
	ctx      context.Context
	svc      *services.MoodService
	selected int
	noting   bool
	note     textinput.Model
	summary  *domain.MoodSummary
	status   string
	err      error
	st       styles
}

func newMoodTab(ctx context.Context, svc *services.MoodService, theme config.ThemeConfig) *moodTab {
	ti := textinput.New()
	ti.Placeholder = "Optional note"
	ti.CharLimit = 200
	ti.Width = 50
	return &moodTab{ctx: ctx, svc: svc, selected: domain.MoodOkay, note: ti, st: newStyles(theme)}
}

func (t *moodTab) reload() {
	summary, err := t.svc.Summary(t.ctx)
	if err != nil {
		t.err = err
		return
	}
	t.err = nil
	t.summary = summary
	if summary.Today != nil {
		t.selected = summary.Today.Mood
	}
}

func (t *moodTab) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if t.noting {
		if ok {
			switch key.Type {
			case tea.KeyEnter:
				t.log()
				return nil
			case tea.KeyEsc, tea.KeyTab:
				t.noting = false
				t.note.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		t.note, cmd = t.note.Update(msg)
		return cmd
	}
	if !ok {
		return nil
	}

	switch key.String() {
	case "left", "h":
		if t.selected > domain.MoodVeryBad {
			t.selected--
		}
	case "right", "l":
		if t.selected < domain.MoodGreat {
			t.selected++
		}
	case "tab":
		t.noting = true
		return t.note.Focus()
	case "enter", " ":
		t.log()
	}
	return nil
}

func (t *moodTab) log() {
	entry, err := t.svc.Log(t.ctx, t.selected, strings.TrimSpace(t.note.Value()))
	if err != nil {
		t.err = err
		return
	}
	t.noting = false
	t.note.Blur()
	t.note.SetValue("")
	t.status = fmt.Sprintf("Logged %s %s for today", entry.Emoji(), entry.Label())
	t.reload()
}

func (t *moodTab) view() string {
	var b strings.Builder
	b.WriteString(t.st.accent.Render("How are you feeling today?") + "\n\n")

	var moods []string
	for mood := domain.MoodVeryBad; mood <= domain.MoodGreat; mood++ {
		cell := fmt.Sprintf(" %s %s ", domain.MoodEmoji(mood), domain.MoodLabel(mood))
		if mood == t.selected {
			moods = append(moods, t.st.tabOn.Render(cell))
		} else {
			moods = append(moods, t.st.tab.Render(cell))
		}
	}
	b.WriteString(strings.Join(moods, " ") + "\n\n")

	if t.noting {
		b.WriteString(t.note.View() + "\n\n")
	} else if v := t.note.Value(); v != "" {
		b.WriteString(t.st.help.Render("Note: "+v) + "\n\n")
	}

	if t.status != "" {
		b.WriteString(t.st.active.Render(t.status) + "\n\n")
	}
	if t.err != nil {
		b.WriteString(t.st.err.Render("Error: "+t.err.Error()) + "\n\n")
	}

	if s := t.summary; s != nil {
		if s.Today != nil {
			b.WriteString(t.st.text.Render(fmt.Sprintf("Today: %s %s", s.Today.Emoji(), s.Today.Label())) + "\n")
		}
		b.WriteString(t.st.title.Render("This week") + "\n")
		var days []string
		for _, d := range s.Days {
			mark := "·"
			if d.Mood != nil {
				mark = domain.MoodEmoji(*d.Mood)
			}
			days = append(days, fmt.Sprintf("%s %s", d.Weekday, mark))
		}
		b.WriteString(t.st.text.Render(strings.Join(days, "  ")) + "\n")
		if s.Average != nil {
			b.WriteString(t.st.text.Render(fmt.Sprintf("Weekly average: %s %s", domain.MoodEmoji(*s.Average), domain.MoodLabel(*s.Average))) + "\n")
		}
		if insight := s.Insight(); insight != "" {
			b.WriteString("\n" + t.st.accent.Render("💡 Insight") + "\n")
			b.WriteString(t.st.text.Width(70).Render(insight) + "\n")
		}
	}

	b.WriteString("\n" + t.st.help.Render("←/→ choose · tab add note · enter log"))
	return b.String()
}
