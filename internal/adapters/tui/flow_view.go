package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/flow"
)

// flowView runs an emotion's coping flow. Message steps are shown directly;
// exercise steps embed a form whose state is kept while moving between steps.
type flowView struct {
	ctx     context.Context
	emotion *domain.Emotion
	sess    *flow.Session
	start   func(id string) (*flow.Session, error)
	hooks   formHooks
	forms   map[int]*formModel
	bar     progress.Model
	err     error
	leave   bool
	width   int
	theme   config.ThemeConfig
	st      styles
}

func newFlowView(ctx context.Context, emotion *domain.Emotion, sess *flow.Session, start func(string) (*flow.Session, error), hooks formHooks, theme config.ThemeConfig) *flowView {
	bar := progress.New(progress.WithGradient(theme.GradientStart, theme.GradientEnd))
	bar.Width = 40
	return &flowView{
		ctx:     ctx,
		emotion: emotion,
		sess:    sess,
		start:   start,
		hooks:   hooks,
		forms:   make(map[int]*formModel),
		bar:     bar,
		theme:   theme,
		st:      newStyles(theme),
	}
}

// form returns the embedded exercise form of the current step, or nil.
func (v *flowView) form() *formModel {
	step := v.sess.Current()
	if step.Exercise == "" {
		return nil
	}
	idx := v.sess.Index()
	if f, ok := v.forms[idx]; ok {
		return f
	}
	sess, err := v.start(step.Exercise)
	if err != nil {
		v.err = err
		return nil
	}
	f := newForm(v.ctx, sess, v.hooks, v.theme)
	f.width = v.width
	v.forms[idx] = f
	return f
}

func (v *flowView) setWidth(w int) {
	v.width = w
	v.bar.Width = min(max(w-10, 20), 60)
	for _, f := range v.forms {
		f.width = w
	}
}

// exited reports whether the flow was finished and the overview should follow.
func (v *flowView) exited() bool { return v.sess.Exited() }

func (v *flowView) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+n":
			v.advance()
			return nil
		case "ctrl+p":
			v.back()
			return nil
		}

		if v.form() == nil {
			switch key.String() {
			case "enter":
				v.advance()
			case "esc":
				v.back()
			}
			return nil
		}
	}

	f := v.form()
	if f == nil {
		return nil
	}
	cmd := f.update(msg)
	if f.leave {
		f.leave = false
		v.back()
	}
	return cmd
}

// pauseStep pauses the current step's timer before the step is left; its
// tick chain ends once another step is shown.
func (v *flowView) pauseStep() {
	if f, ok := v.forms[v.sess.Index()]; ok {
		f.pauseTimer()
	}
}

func (v *flowView) advance() {
	v.err = nil
	v.pauseStep()
	if _, err := v.sess.Next(v.ctx); err != nil {
		v.err = err
	}
}

func (v *flowView) back() {
	v.pauseStep()
	if !v.sess.Back() {
		v.leave = true
	}
}

// tick forwards a tick to the embedded exercise timer.
func (v *flowView) tick() (bool, tea.Cmd) {
	f, ok := v.forms[v.sess.Index()]
	if !ok {
		return false, nil
	}
	return f.tick()
}

func (v *flowView) view() string {
	var b strings.Builder
	step := v.sess.Current()

	b.WriteString(v.st.title.Render(fmt.Sprintf("%s %s", v.emotion.Icon, v.emotion.Name)) + "\n")
	b.WriteString(v.st.help.Render(fmt.Sprintf("Step %d of %d: %s", v.sess.Index()+1, v.sess.Len(), step.Title)) + "\n")
	b.WriteString(v.bar.ViewAs(v.sess.Progress()/100) + "\n\n")

	if f := v.form(); f != nil {
		b.WriteString(f.view())
	} else {
		b.WriteString(v.st.accent.Bold(true).Render(step.Prompt) + "\n\n")
		if step.Detail != "" {
			style := v.st.text
			if v.width > 10 {
				style = style.Width(min(v.width-4, 80))
			}
			b.WriteString(style.Render(step.Detail) + "\n")
		}
	}

	if v.err != nil {
		b.WriteString("\n" + v.st.err.Render("Error: "+v.err.Error()) + "\n")
	}

	next := "ctrl+n next"
	if v.sess.IsFinal() {
		next = "ctrl+n Learn More"
	}
	b.WriteString("\n\n" + v.st.help.Render("ctrl+p previous · "+next+" · ctrl+c quit"))
	return b.String()
}
