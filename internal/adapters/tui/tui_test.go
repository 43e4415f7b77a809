package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/adapters/storage"
	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/emotions"
	"github.com/xvierd/calm-cli/internal/exercises"
	"github.com/xvierd/calm-cli/internal/flow"
	"github.com/xvierd/calm-cli/internal/services"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestDeps(t *testing.T, settings exercises.Settings) Deps {
	t.Helper()
	kv, err := storage.NewMemory()
	require.NoError(t, err)
	store := storage.NewStorage(kv, zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })

	journal := services.NewJournalService(store, nil)
	moods := services.NewMoodService(store, services.DefaultMoodSettings(), nil)
	catalog := exercises.NewCatalog(settings, emotions.All())
	return Deps{
		Coping:    services.NewCopingService(catalog, journal, nil, nil),
		Journal:   journal,
		Moods:     moods,
		Breathing: config.DefaultConfig().Breathing,
	}
}

// runTimer ticks until the countdown stops, running any hook commands.
func runTimer(t *testing.T, tick func() (bool, tea.Cmd)) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		running, cmd := tick()
		if cmd != nil {
			cmd()
		}
		if !running {
			return
		}
	}
	t.Fatal("timer never stopped")
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{65, "01:05"},
		{300, "05:00"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatClock(tt.seconds); got != tt.want {
				t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestRenderBigClock_NarrowFallsBackToText(t *testing.T) {
	got := renderBigClock(65, "#fff", 20)
	assert.Contains(t, got, "01:05")
	assert.NotContains(t, got, "\n")

	big := renderBigClock(65, "#fff", 80)
	assert.Equal(t, 4, strings.Count(big, "\n"), "big digits are five lines tall")
}

func TestTicker_DropsStaleGenerations(t *testing.T) {
	var tk ticker
	tk.restart()
	stale := tickMsg{gen: tk.gen}
	assert.True(t, tk.current(stale))

	tk.invalidate()
	assert.False(t, tk.current(stale))

	tk.restart()
	assert.True(t, tk.current(tickMsg{gen: tk.gen}))
	assert.False(t, tk.current(stale))
}

func TestBreathingTool(t *testing.T) {
	limits := config.DefaultConfig().Breathing
	m := newBreathingTool(limits, config.DefaultThemeConfig())
	assert.Equal(t, 4, m.seconds)
	assert.True(t, m.cd.Pattern().Looping())

	m.update(key("right"))
	m.update(key("right"))
	m.update(key("right"))
	assert.Equal(t, 6, m.seconds, "clamped to the maximum")
	assert.Equal(t, 6, m.cd.Remaining())

	cmd := m.update(key(" "))
	require.NotNil(t, cmd)
	assert.IsType(t, timerStartedMsg{}, cmd())
	assert.True(t, m.running())

	m.update(key("left"))
	assert.Equal(t, 6, m.seconds, "duration is locked while running")

	running, _ := m.tick()
	assert.True(t, running)
	assert.Equal(t, 5, m.cd.Remaining())
	assert.Contains(t, m.view(80), "Breathe In")

	assert.Nil(t, m.update(key(" ")), "pausing starts no tick chain")
	assert.Equal(t, countdown.StatusPaused, m.cd.Status())

	m.update(key("r"))
	assert.Equal(t, countdown.StatusIdle, m.cd.Status())
	assert.Equal(t, 6, m.cd.Remaining())

	m.update(key("left"))
	assert.Equal(t, 5, m.seconds)
}

func TestBreathingTool_CountsCycles(t *testing.T) {
	limits := config.BreathingConfig{PhaseSeconds: 3, MinSeconds: 3, MaxSeconds: 6}
	m := newBreathingTool(limits, config.DefaultThemeConfig())
	m.update(key(" "))
	for i := 0; i < 9; i++ {
		m.tick()
	}
	assert.Equal(t, 1, m.cd.Cycles())
	assert.True(t, m.running(), "the tool loops forever")
	assert.Contains(t, m.view(80), "Cycles completed: 1")
}

func TestForm_JournalingWritesEntry(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	ctx := context.Background()
	sess, err := deps.Coping.StartExercise(exercises.JournalingID("anger"))
	require.NoError(t, err)

	var finished []*flow.Session
	f := newForm(ctx, sess, formHooks{finished: func(s *flow.Session) { finished = append(finished, s) }}, config.DefaultThemeConfig())
	require.Len(t, f.slots, 3)
	assert.Contains(t, f.view(), "What triggered my anger?")

	f.update(key("enter"))
	assert.Equal(t, "Complete this step to continue.", f.notice)
	assert.True(t, sess.Active())

	for _, answer := range []string{"traffic", "please slow down", "a walk"} {
		f.update(key(answer))
		f.update(key("tab"))
	}
	assert.Equal(t, "please slow down", sess.Value("wish").Text)

	cmd := f.update(key("enter"))
	require.True(t, sess.Completed())
	require.NotNil(t, cmd)
	cmd()
	require.Len(t, finished, 1)

	view := f.view()
	assert.Contains(t, view, "Anger Journaling complete")
	assert.Contains(t, view, "Saved to your journal.")

	entries, err := deps.Journal.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Anger", entries[0].Emotion)
	assert.Contains(t, entries[0].Response, "What do I wish I could say?\nplease slow down")

	f.update(key("enter"))
	assert.True(t, sess.Active(), "enter on the completion screen starts over")
	assert.Equal(t, "", sess.Value("trigger").Text)
}

func TestForm_EscOnFirstStepLeaves(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	sess, err := deps.Coping.StartExercise(exercises.Grounding)
	require.NoError(t, err)

	f := newForm(context.Background(), sess, formHooks{}, config.DefaultThemeConfig())
	f.update(key("esc"))
	assert.True(t, f.leave)
}

func TestForm_UrgeSurfingTimerGatesNext(t *testing.T) {
	settings := exercises.DefaultSettings()
	settings.UrgeBreath = 3 * time.Second
	deps := newTestDeps(t, settings)
	sess, err := deps.Coping.StartExercise(exercises.UrgeSurfing)
	require.NoError(t, err)

	var timers []string
	f := newForm(context.Background(), sess, formHooks{timerDone: func(label string) { timers = append(timers, label) }}, config.DefaultThemeConfig())

	// scale, then confirm
	require.Len(t, f.slots, 2)
	f.update(key("+"))
	f.update(key("+"))
	assert.Equal(t, 7, sess.Value("craving").Number)
	f.update(key("-"))

	f.update(key("enter"))
	assert.Equal(t, 0, sess.Index(), "confirm is required")

	f.update(key("tab"))
	f.update(key(" "))
	f.update(key("enter"))
	require.Equal(t, 1, sess.Index())
	require.NotNil(t, f.timer)
	assert.Contains(t, f.view(), "Ride the Wave")

	f.update(key("enter"))
	assert.Equal(t, "Let the timer finish before continuing.", f.notice)

	cmd := f.update(key(" "))
	require.NotNil(t, cmd)
	assert.IsType(t, timerStartedMsg{}, cmd())

	runTimer(t, f.tick)
	assert.True(t, sess.TimerDone())
	assert.Equal(t, []string{"Urge Surfing"}, timers)
	assert.Contains(t, f.view(), "Timer complete")

	f.update(key("enter"))
	require.True(t, sess.Completed())
	assert.Contains(t, f.view(), "level 6/10")
}

func TestForm_ListItems(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	sess, err := deps.Coping.StartExercise(exercises.TaskChunking)
	require.NoError(t, err)
	f := newForm(context.Background(), sess, formHooks{}, config.DefaultThemeConfig())

	const listKey = "chunks"
	f.update(key("tab"))
	require.Equal(t, listKey, f.slots[f.focus].field.Key)

	before := len(sess.Value(listKey).Items)
	f.update(key("ctrl+a"))
	assert.Len(t, sess.Value(listKey).Items, before+1)
	assert.Equal(t, before, f.slots[f.focus].index, "focus moves to the new item")

	f.update(key("ctrl+r"))
	assert.Len(t, sess.Value(listKey).Items, before)
}

func TestApp_UnknownFlowRedirectsToEmotions(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	app := NewApp(context.Background(), deps, Route{Name: RouteFlow, ID: "boredom"})

	assert.Equal(t, RouteEmotions, app.route.Name)
	assert.Contains(t, app.View(), `Unknown emotion "boredom"`)

	entries, err := deps.Journal.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApp_HomeNavigation(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	app := NewApp(context.Background(), deps, Route{})
	assert.Equal(t, RouteHome, app.route.Name)
	assert.Contains(t, app.View(), Tagline)

	app.Update(key("enter"))
	assert.Equal(t, RouteEmotions, app.route.Name)

	app.Update(key("o"))
	assert.Equal(t, RouteOverview, app.route.Name)
	assert.Contains(t, app.View(), "Understanding Anger")

	app.Update(key("esc"))
	app.Update(key("esc"))
	assert.Equal(t, RouteHome, app.route.Name)

	app.Update(key("down"))
	app.Update(key("down"))
	app.Update(key("enter"))
	assert.Equal(t, RouteAbout, app.route.Name)
	assert.Contains(t, app.View(), "741741")

	_, cmd := app.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_CopingFlowExitsToOverview(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	app := NewApp(context.Background(), deps, Route{Name: RouteFlow, ID: "anger"})
	require.Equal(t, RouteFlow, app.route.Name)

	view := app.View()
	assert.Contains(t, view, "Step 1 of 5: Acknowledgement")
	assert.Contains(t, view, "It's okay to feel angry")
	assert.Contains(t, view, "ctrl+n next")

	app.Update(key("ctrl+n"))
	assert.Contains(t, app.View(), "Step 2 of 5")
	assert.Contains(t, app.View(), "Breathe In", "breathing exercise is embedded")

	app.Update(key("ctrl+p"))
	assert.Contains(t, app.View(), "Step 1 of 5")

	for i := 0; i < 4; i++ {
		app.Update(key("ctrl+n"))
	}
	assert.Contains(t, app.View(), "Learn More")

	app.Update(key("ctrl+n"))
	assert.Equal(t, RouteOverview, app.route.Name)
	assert.Equal(t, "anger", app.overview.ov.Emotion.ID)
}

func TestApp_EmbeddedExerciseKeepsState(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	app := NewApp(context.Background(), deps, Route{Name: RouteFlow, ID: "anger"})

	// acknowledgement, breathing, physical grounding, journaling
	for i := 0; i < 3; i++ {
		app.Update(key("ctrl+n"))
	}
	require.Contains(t, app.View(), "What triggered my anger?")
	app.Update(key("traffic"))

	app.Update(key("ctrl+p"))
	app.Update(key("ctrl+n"))
	f := app.flow.form()
	require.NotNil(t, f)
	assert.Equal(t, "traffic", f.sess.Value("trigger").Text)
}

func TestApp_LeavingStepPausesTimer(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	app := NewApp(context.Background(), deps, Route{Name: RouteFlow, ID: "anger"})

	app.Update(key("ctrl+n"))
	f := app.flow.form()
	require.NotNil(t, f)
	require.NotNil(t, f.timer)

	start := f.timer.update(key(" "))
	require.NotNil(t, start)
	app.Update(start())
	gen := app.ticker.gen
	_, next := app.Update(tickMsg{gen: gen})
	require.NotNil(t, next)
	remaining := f.timer.cd.Remaining()

	app.Update(key("ctrl+n"))
	assert.Equal(t, countdown.StatusPaused, f.timer.cd.Status())
	_, next = app.Update(tickMsg{gen: gen})
	assert.Nil(t, next, "the next step has no timer to drive")

	app.Update(key("ctrl+p"))
	require.Same(t, f, app.flow.form())
	assert.Equal(t, countdown.StatusPaused, f.timer.cd.Status())
	assert.Equal(t, remaining, f.timer.cd.Remaining())
	assert.Contains(t, app.View(), "⏸ paused")

	resume := f.timer.update(key(" "))
	require.NotNil(t, resume, "one press resumes")
	assert.Equal(t, countdown.StatusRunning, f.timer.cd.Status())
}

func TestForm_EscPausesStepTimer(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	sess, err := deps.Coping.StartExercise(exercises.UrgeSurfing)
	require.NoError(t, err)
	f := newForm(context.Background(), sess, formHooks{}, config.DefaultThemeConfig())

	f.update(key("tab"))
	f.update(key(" "))
	f.update(key("enter"))
	require.Equal(t, 1, sess.Index())
	require.NotNil(t, f.update(key(" ")))
	cd := f.timer.cd
	require.Equal(t, countdown.StatusRunning, cd.Status())

	f.update(key("esc"))
	assert.Equal(t, 0, sess.Index())
	assert.Equal(t, countdown.StatusPaused, cd.Status())
}

func TestApp_TicksFollowGeneration(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	app := NewApp(context.Background(), deps, Route{Name: RouteTools})
	require.Equal(t, RouteTools, app.route.Name)

	_, cmd := app.Update(key(" "))
	require.NotNil(t, cmd)
	_, tickCmd := app.Update(cmd())
	require.NotNil(t, tickCmd)
	gen := app.ticker.gen

	_, next := app.Update(tickMsg{gen: gen})
	assert.NotNil(t, next, "running timers reschedule")
	assert.Equal(t, 3, app.tools.breathing.cd.Remaining())

	_, next = app.Update(tickMsg{gen: gen - 1})
	assert.Nil(t, next, "stale ticks are dropped")
	assert.Equal(t, 3, app.tools.breathing.cd.Remaining())

	app.Update(key("esc"))
	assert.Equal(t, RouteHome, app.route.Name)
	assert.Equal(t, countdown.StatusPaused, app.tools.breathing.cd.Status())

	_, next = app.Update(tickMsg{gen: gen})
	assert.Nil(t, next, "leaving the view invalidates its ticks")
	assert.Equal(t, 3, app.tools.breathing.cd.Remaining())
}

func TestTools_JournalTab(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	ctx := context.Background()
	app := NewApp(ctx, deps, Route{Name: RouteTools, Tab: TabJournal})
	assert.Contains(t, app.View(), "No journal entries yet")

	app.Update(key("n"))
	app.Update(key("calmer after a walk"))
	app.Update(key("enter"))

	entries, err := deps.Journal.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Personal Entry", entries[0].Title())
	assert.Contains(t, app.View(), "calmer after a walk")

	app.Update(key("d"))
	entries, err = deps.Journal.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTools_ChatTab(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	app := NewApp(context.Background(), deps, Route{Name: RouteTools})

	app.Update(key("ctrl+n"))
	app.Update(key("ctrl+n"))
	require.Equal(t, TabChat, app.tools.tab)

	app.Update(key("I feel stressed"))
	app.Update(key("enter"))

	msgs := app.tools.chat.transcript.Messages()
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[2].Content, "feeling stressed")
	assert.Equal(t, "", app.tools.chat.input.Value())

	app.Update(key("1"))
	assert.Equal(t, TabChat, app.tools.tab, "digits are typed while chatting")
}

func TestTools_MoodTab(t *testing.T) {
	deps := newTestDeps(t, exercises.DefaultSettings())
	ctx := context.Background()
	app := NewApp(ctx, deps, Route{Name: RouteTools, Tab: TabMood})

	app.Update(key("right"))
	app.Update(key("tab"))
	app.Update(key("slept well"))
	app.Update(key("enter"))

	today, err := deps.Moods.Today(ctx)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, 3, today.Mood)
	assert.Equal(t, "slept well", today.Note)
	assert.Contains(t, app.View(), "Logged 🙂 Good for today")
}

func TestPicker_FiltersAndReturnsOriginalIndex(t *testing.T) {
	items := []PickerItem{
		{Label: "anger", Desc: "Anger"},
		{Label: "shyness", Desc: "Shyness"},
		{Label: "smoking", Desc: "Smoking"},
	}
	var m tea.Model = newPicker("Choose", items, "", config.DefaultThemeConfig())

	m, _ = m.Update(key("shy"))
	p := m.(pickerModel)
	require.Equal(t, []int{1}, p.visible)
	assert.Contains(t, p.View(), "filter: shy")

	m, cmd := m.Update(key("enter"))
	p = m.(pickerModel)
	assert.True(t, p.chosen)
	assert.Equal(t, 1, p.selected())
	require.NotNil(t, cmd)

	m, _ = newPicker("Choose", items, "", config.DefaultThemeConfig()).Update(key("zzz"))
	p = m.(pickerModel)
	assert.Empty(t, p.visible)
	assert.Contains(t, p.View(), "no matches")
	m, _ = m.Update(key("enter"))
	assert.False(t, m.(pickerModel).chosen)
}

func TestTextPrompt(t *testing.T) {
	var m tea.Model = newTextPrompt("Write:", "placeholder", config.DefaultThemeConfig())
	m, _ = m.Update(key("hello"))
	m, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, "hello", m.(textPromptModel).input.Value())

	m, _ = m.Update(key("esc"))
	assert.True(t, m.(textPromptModel).aborted)
}

func TestTimerProgram_QuitsOnCompletion(t *testing.T) {
	p := countdown.Single("delay", 2)
	m := newTimerProgram(TimerOptions{Title: "Response Delay", Pattern: &p, AutoStart: true})

	cmd := m.Init()
	require.NotNil(t, cmd)
	m.Update(cmd())
	gen := m.ticker.gen

	_, next := m.Update(tickMsg{gen: gen})
	require.NotNil(t, next)
	_, quit := m.Update(tickMsg{gen: gen})
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
	assert.True(t, m.timer.completed())
	assert.Contains(t, m.View(), "Wait Before Responding")
}
