package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/exercises"
)

// timerModel renders and drives one countdown. The breathing tool variant
// loops forever with one adjustable duration for every phase; exercise
// timers run the pattern their step asks for.
type timerModel struct {
	cd         *countdown.Countdown
	emotionID  string
	adjustable bool
	seconds    int
	limits     config.BreathingConfig
	theme      config.ThemeConfig
	st         styles
}

func newBreathingTool(limits config.BreathingConfig, theme config.ThemeConfig) timerModel {
	secs := limits.Clamp(limits.PhaseSeconds)
	return timerModel{
		cd:         countdown.New(countdown.Breathing(secs, secs, secs, 0)),
		adjustable: true,
		seconds:    secs,
		limits:     limits,
		theme:      theme,
		st:         newStyles(theme),
	}
}

func newTimer(p countdown.Pattern, emotionID string, theme config.ThemeConfig) timerModel {
	return timerModel{
		cd:        countdown.New(p),
		emotionID: emotionID,
		theme:     theme,
		st:        newStyles(theme),
	}
}

// update handles a key. The returned command starts a tick chain when the
// timer was just started.
func (m *timerModel) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case " ":
		if m.cd.Status() == countdown.StatusCompleted {
			return nil
		}
		m.cd.Toggle()
		if m.running() {
			return timerStarted
		}
	case "r":
		m.cd.Pause()
		m.cd.Reset()
	case "left", "h", "-":
		m.adjust(-1)
	case "right", "l", "+", "=":
		m.adjust(1)
	}
	return nil
}

// adjust changes the phase duration. It only applies while not running and
// returns the timer to idle.
func (m *timerModel) adjust(delta int) {
	if !m.adjustable || m.running() {
		return
	}
	secs := m.limits.Clamp(m.seconds + delta)
	if secs == m.seconds {
		return
	}
	if err := m.cd.Reconfigure(countdown.Breathing(secs, secs, secs, 0)); err == nil {
		m.seconds = secs
	}
}

// tick advances one second and reports whether the timer keeps running.
func (m *timerModel) tick() (bool, countdown.Event) {
	ev := m.cd.Tick()
	return m.running(), ev
}

func (m timerModel) running() bool { return m.cd.Status() == countdown.StatusRunning }

func (m timerModel) completed() bool { return m.cd.Status() == countdown.StatusCompleted }

func (m timerModel) view(width int) string {
	snap := m.cd.Snapshot()
	pattern := m.cd.Pattern()
	color := phaseColor(m.theme, snap.Phase)

	sections := []string{
		lipgloss.NewStyle().Bold(true).Foreground(color).Render(exercises.PhaseLabel(m.emotionID, snap.Phase)),
		"",
		renderBigClock(snap.Remaining, color, width),
		"",
	}

	if len(pattern.Phases) > 1 {
		sections = append(sections, m.phaseDots(snap))
		if pattern.Looping() {
			sections = append(sections, m.st.text.Render(fmt.Sprintf("Cycles completed: %d", snap.Cycles)))
		} else {
			sections = append(sections, m.st.text.Render(fmt.Sprintf("Cycle %d of %d", min(snap.Cycles+1, snap.TotalCycles), snap.TotalCycles)))
		}
	}

	switch snap.Status {
	case countdown.StatusPaused:
		sections = append(sections, m.st.paused.Render("⏸ paused"))
	case countdown.StatusCompleted:
		sections = append(sections, m.st.active.Render("✓ Time's up. Notice how you feel."))
	}

	sections = append(sections, "")
	help := "space start/pause · r reset"
	if m.adjustable {
		sections = append(sections, m.st.help.Render(fmt.Sprintf("Phase length: ◀ %ds ▶ (%d-%ds)", m.seconds, m.limits.MinSeconds, m.limits.MaxSeconds)))
		help += " · ←/→ duration"
	}
	sections = append(sections, m.st.help.Render(help))
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

// phaseDots shows the phase sequence with the current phase highlighted.
func (m timerModel) phaseDots(snap countdown.Snapshot) string {
	var parts []string
	for i, ph := range m.cd.Pattern().Phases {
		if ph.Seconds <= 0 {
			continue
		}
		text := fmt.Sprintf("%s %ds", exercises.PhaseLabel(m.emotionID, ph.Name), ph.Seconds)
		if i == snap.PhaseIndex && snap.Status != countdown.StatusIdle {
			parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(phaseColor(m.theme, ph.Name)).Render("● "+text))
		} else {
			parts = append(parts, m.st.help.Render("○ "+text))
		}
	}
	return strings.Join(parts, "   ")
}
