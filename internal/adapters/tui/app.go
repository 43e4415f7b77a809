package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/services"
)

// Route names.
const (
	RouteHome     = "home"
	RouteEmotions = "emotions"
	RouteFlow     = "flow"
	RouteOverview = "overview"
	RouteTools    = "tools"
	RouteAbout    = "about"
	RouteExercise = "exercise"
)

// Route addresses a screen. ID is the emotion of the flow and overview
// routes or the exercise of the exercise route; Tab selects a tool tab.
type Route struct {
	Name string
	ID   string
	Tab  int
}

// Deps are the services and settings the TUI runs against.
type Deps struct {
	Coping    *services.CopingService
	Journal   *services.JournalService
	Moods     *services.MoodService
	Breathing config.BreathingConfig
	Theme     *config.ThemeConfig
	Logger    *zap.Logger
}

// App is the root bubbletea model. It owns routing and the tick generation;
// views own their state.
type App struct {
	ctx    context.Context
	deps   Deps
	theme  config.ThemeConfig
	st     styles
	logger *zap.Logger

	route  Route
	back   Route
	ticker ticker
	width  int
	notice string

	home     *homeView
	emotions *emotionsView
	overview *overviewView
	flow     *flowView
	exercise *formModel
	tools    *toolsView
	about    *aboutView
}

// NewApp creates the root model positioned on start.
func NewApp(ctx context.Context, deps Deps, start Route) *App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	theme := resolveTheme(deps.Theme)
	a := &App{
		ctx:    ctx,
		deps:   deps,
		theme:  theme,
		st:     newStyles(theme),
		logger: logger,
		home:   newHomeView(theme),
		about:  &aboutView{st: newStyles(theme)},
	}
	a.emotions = newEmotionsView(deps.Coping.Emotions(), theme)
	a.navigate(start)
	return a
}

// Run launches the TUI and blocks until it exits.
func Run(ctx context.Context, deps Deps, start Route) error {
	p := tea.NewProgram(NewApp(ctx, deps, start), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (a *App) hooks() formHooks {
	return formHooks{finished: a.deps.Coping.Finished, timerDone: a.deps.Coping.TimerDone}
}

// navigate switches screens. Pending ticks of the old screen are dropped.
// Unknown emotions and exercises fall back to the emotion list.
func (a *App) navigate(r Route) {
	a.ticker.invalidate()
	if a.tools != nil {
		a.tools.breathing.cd.Pause()
	}
	a.notice = ""

	switch r.Name {
	case RouteEmotions, RouteAbout:
	case RouteFlow:
		ov, err := a.deps.Coping.Overview(r.ID)
		if err != nil {
			a.redirect(r, err)
			return
		}
		sess, err := a.deps.Coping.StartFlow(r.ID)
		if err != nil {
			a.redirect(r, err)
			return
		}
		a.flow = newFlowView(a.ctx, ov.Emotion, sess, a.deps.Coping.StartExercise, a.hooks(), a.theme)
		a.flow.setWidth(a.width)
	case RouteOverview:
		ov, err := a.deps.Coping.Overview(r.ID)
		if err != nil {
			a.redirect(r, err)
			return
		}
		a.overview = newOverviewView(ov, a.theme)
	case RouteExercise:
		sess, err := a.deps.Coping.StartExercise(r.ID)
		if err != nil {
			a.redirect(r, err)
			return
		}
		if a.route.Name != RouteExercise {
			a.back = a.route
		}
		a.exercise = newForm(a.ctx, sess, a.hooks(), a.theme)
		a.exercise.width = a.width
	case RouteTools:
		if a.tools == nil {
			a.tools = newToolsView(a.ctx, a.deps.Journal, a.deps.Moods, a.deps.Breathing, a.theme)
		}
		a.tools.leave = false
		a.tools.width = a.width
		a.tools.selectTab(r.Tab)
	default:
		r = Route{Name: RouteHome}
	}
	a.route = r
}

func (a *App) redirect(from Route, err error) {
	a.logger.Debug("navigation redirected", zap.String("route", from.Name), zap.String("id", from.ID), zap.Error(err))
	a.navigate(Route{Name: RouteEmotions})
	switch {
	case errors.Is(err, domain.ErrEmotionNotFound):
		a.notice = fmt.Sprintf("Unknown emotion %q. Choose one below.", from.ID)
	case errors.Is(err, domain.ErrExerciseNotFound):
		a.notice = fmt.Sprintf("Unknown exercise %q.", from.ID)
	default:
		a.notice = err.Error()
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		if a.flow != nil {
			a.flow.setWidth(msg.Width)
		}
		if a.exercise != nil {
			a.exercise.width = msg.Width
		}
		if a.tools != nil {
			a.tools.width = msg.Width
		}
		return a, nil

	case tickMsg:
		if !a.ticker.current(msg) {
			return a, nil
		}
		running, cmd := a.tickActive()
		if running {
			return a, tea.Batch(cmd, a.ticker.next())
		}
		return a, cmd

	case timerStartedMsg:
		return a, a.ticker.restart()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if msg.String() == "q" {
			switch a.route.Name {
			case RouteHome, RouteEmotions, RouteOverview, RouteAbout:
				return a, tea.Quit
			}
		}
	}

	return a, a.updateActive(msg)
}

func (a *App) tickActive() (bool, tea.Cmd) {
	switch a.route.Name {
	case RouteFlow:
		return a.flow.tick()
	case RouteExercise:
		return a.exercise.tick()
	case RouteTools:
		return a.tools.tick()
	}
	return false, nil
}

func (a *App) updateActive(msg tea.Msg) tea.Cmd {
	key, isKey := msg.(tea.KeyMsg)

	var next *Route
	switch a.route.Name {
	case RouteHome:
		if isKey {
			next = a.home.update(key)
		}
	case RouteEmotions:
		if isKey {
			a.notice = ""
			next = a.emotions.update(key)
		}
	case RouteOverview:
		if isKey {
			next = a.overview.update(key)
		}
	case RouteAbout:
		if isKey {
			next = a.about.update(key)
		}
	case RouteFlow:
		cmd := a.flow.update(msg)
		switch {
		case a.flow.exited():
			a.navigate(Route{Name: RouteOverview, ID: a.flow.emotion.ID})
		case a.flow.leave:
			a.navigate(Route{Name: RouteEmotions})
		}
		return cmd
	case RouteExercise:
		cmd := a.exercise.update(msg)
		if a.exercise.leave {
			a.navigate(a.back)
		}
		return cmd
	case RouteTools:
		cmd := a.tools.update(msg)
		if a.tools.leave {
			a.navigate(Route{Name: RouteHome})
		}
		return cmd
	}

	if next != nil {
		a.navigate(*next)
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	var body string
	switch a.route.Name {
	case RouteHome:
		body = a.home.view()
	case RouteEmotions:
		body = a.emotions.view()
	case RouteOverview:
		body = a.overview.view()
	case RouteAbout:
		body = a.about.view()
	case RouteFlow:
		body = a.flow.view()
	case RouteExercise:
		body = a.exercise.view()
	case RouteTools:
		body = a.tools.view()
	}
	if a.notice != "" {
		body = a.st.paused.Render(a.notice) + "\n\n" + body
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}
