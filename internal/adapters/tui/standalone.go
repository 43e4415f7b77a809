package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/countdown"
)

// TimerOptions configures a standalone timer.
type TimerOptions struct {
	Title string
	// Pattern is the countdown to run. A nil pattern runs the adjustable
	// breathing tool.
	Pattern   *countdown.Pattern
	EmotionID string
	Breathing config.BreathingConfig
	Theme     *config.ThemeConfig
	// AutoStart starts the countdown immediately.
	AutoStart bool
}

// TimerResult reports how a standalone timer ended.
type TimerResult struct {
	Completed bool
	Cycles    int
}

type timerProgram struct {
	title  string
	timer  timerModel
	ticker ticker
	auto   bool
	width  int
	st     styles
}

func (m *timerProgram) Init() tea.Cmd {
	if m.auto {
		m.timer.cd.Start()
		return timerStarted
	}
	return nil
}

func (m *timerProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case timerStartedMsg:
		return m, m.ticker.restart()
	case tickMsg:
		if !m.ticker.current(msg) {
			return m, nil
		}
		running, ev := m.timer.tick()
		if ev.Completed {
			return m, tea.Quit
		}
		if running {
			return m, m.ticker.next()
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		return m, m.timer.update(msg)
	}
	return m, nil
}

func (m *timerProgram) View() string {
	body := m.st.title.Render(m.title) + "\n\n" + m.timer.view(m.width) + "\n" + m.st.help.Render("q quit")
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func newTimerProgram(opts TimerOptions) *timerProgram {
	theme := resolveTheme(opts.Theme)
	m := &timerProgram{title: opts.Title, auto: opts.AutoStart, st: newStyles(theme)}
	if opts.Pattern == nil {
		m.timer = newBreathingTool(opts.Breathing, theme)
	} else {
		m.timer = newTimer(*opts.Pattern, opts.EmotionID, theme)
	}
	if m.title == "" {
		m.title = theme.IconApp + " Breathing Timer"
	}
	return m
}

// RunTimer runs a full-screen countdown until it completes or the user quits.
func RunTimer(ctx context.Context, opts TimerOptions) (TimerResult, error) {
	p := tea.NewProgram(newTimerProgram(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return TimerResult{}, fmt.Errorf("failed to run timer: %w", err)
	}
	m := final.(*timerProgram)
	return TimerResult{Completed: m.timer.completed(), Cycles: m.timer.cd.Cycles()}, nil
}
