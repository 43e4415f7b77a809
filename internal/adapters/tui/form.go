package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/flow"
)

type slotKind int

const (
	slotText slotKind = iota
	slotItem
	slotOption
	slotConfirm
	slotScale
	slotTimer
)

// slot is one focusable element of a step. index addresses the list item
// or option of multi-part fields.
type slot struct {
	kind  slotKind
	field flow.Field
	index int
}

// formHooks receive exercise events. Either may be nil.
type formHooks struct {
	finished  func(*flow.Session)
	timerDone func(label string)
}

// formModel renders one exercise session and maps keys onto its mutators.
type formModel struct {
	ctx   context.Context
	sess  *flow.Session
	hooks formHooks

	slots []slot
	focus int
	input textinput.Model

	timer     *timerModel
	timerStep int
	timerPat  countdown.Pattern

	notice string
	err    error
	leave  bool
	width  int

	theme config.ThemeConfig
	st    styles
}

func newForm(ctx context.Context, sess *flow.Session, hooks formHooks, theme config.ThemeConfig) *formModel {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 60
	ti.Prompt = ""

	m := &formModel{
		ctx:       ctx,
		sess:      sess,
		hooks:     hooks,
		input:     ti,
		timerStep: -1,
		theme:     theme,
		st:        newStyles(theme),
	}
	m.rebuild()
	return m
}

// rebuild recomputes the slots of the current step, keeping focus in range.
func (m *formModel) rebuild() {
	m.slots = m.slots[:0]
	if !m.sess.Active() {
		m.timer = nil
		m.input.Blur()
		return
	}

	for _, f := range m.sess.Current().Fields {
		switch f.Kind {
		case flow.FieldText:
			m.slots = append(m.slots, slot{kind: slotText, field: f})
		case flow.FieldTextList, flow.FieldChecklist:
			for i := range m.sess.Value(f.Key).Items {
				m.slots = append(m.slots, slot{kind: slotItem, field: f, index: i})
			}
		case flow.FieldChoice, flow.FieldMulti:
			for i := range f.Options {
				m.slots = append(m.slots, slot{kind: slotOption, field: f, index: i})
			}
		case flow.FieldConfirm:
			m.slots = append(m.slots, slot{kind: slotConfirm, field: f})
		case flow.FieldScale:
			m.slots = append(m.slots, slot{kind: slotScale, field: f})
		}
	}

	m.syncTimer()
	if m.timer != nil {
		m.slots = append(m.slots, slot{kind: slotTimer})
	}

	if m.focus >= len(m.slots) {
		m.focus = max(len(m.slots)-1, 0)
	}
	m.bindInput()
}

// syncTimer keeps the countdown in line with the pattern the step asks for.
// A timer already in use on this step survives as long as its pattern does.
func (m *formModel) syncTimer() {
	p := m.sess.Timer()
	if p == nil {
		m.timer = nil
		return
	}
	if m.timer != nil && m.timerStep == m.sess.Index() && samePattern(m.timerPat, *p) {
		return
	}
	t := newTimer(*p, phaseEmotion(m.sess.Definition()), m.theme)
	m.timer = &t
	m.timerStep = m.sess.Index()
	m.timerPat = *p
}

func samePattern(a, b countdown.Pattern) bool {
	if a.Cycles != b.Cycles || len(a.Phases) != len(b.Phases) {
		return false
	}
	for i := range a.Phases {
		if a.Phases[i] != b.Phases[i] {
			return false
		}
	}
	return true
}

// phaseEmotion returns the emotion whose phase labels a breathing exercise uses.
func phaseEmotion(def *flow.Definition) string {
	id, _ := strings.CutPrefix(def.ID, "breathing-")
	if id == def.ID {
		return ""
	}
	return id
}

func (m *formModel) focused() (slot, bool) {
	if m.focus < 0 || m.focus >= len(m.slots) {
		return slot{}, false
	}
	return m.slots[m.focus], true
}

// bindInput attaches the text input to the focused text slot.
func (m *formModel) bindInput() {
	s, ok := m.focused()
	if !ok || (s.kind != slotText && s.kind != slotItem) {
		m.input.Blur()
		return
	}
	m.input.Placeholder = s.field.Placeholder
	m.input.SetValue(m.slotText(s))
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *formModel) slotText(s slot) string {
	v := m.sess.Value(s.field.Key)
	if s.kind == slotItem {
		if s.index < len(v.Items) {
			return v.Items[s.index].Text
		}
		return ""
	}
	return v.Text
}

func (m *formModel) move(delta int) {
	if len(m.slots) == 0 {
		return
	}
	m.focus = (m.focus + delta + len(m.slots)) % len(m.slots)
	m.bindInput()
}

func (m *formModel) typing() bool {
	s, ok := m.focused()
	return ok && (s.kind == slotText || s.kind == slotItem)
}

// update handles a message for the form.
func (m *formModel) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.typing() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return cmd
		}
		return nil
	}

	if !m.sess.Active() {
		switch key.String() {
		case "enter":
			m.sess.Restart()
			m.focus = 0
			m.rebuild()
		case "esc":
			m.leave = true
		}
		return nil
	}

	m.notice = ""
	switch key.String() {
	case "tab", "down":
		m.move(1)
		return nil
	case "shift+tab", "up":
		m.move(-1)
		return nil
	case "enter":
		return m.next()
	case "esc":
		m.pauseTimer()
		if m.sess.Back() {
			m.focus = 0
			m.rebuild()
		} else {
			m.leave = true
		}
		return nil
	case "ctrl+a":
		m.addItem()
		return nil
	case "ctrl+r":
		m.removeItem()
		return nil
	case "ctrl+t":
		if s, ok := m.focused(); ok && s.kind == slotItem {
			m.sess.Check(s.field.Key, s.index)
		}
		return nil
	}

	s, ok := m.focused()
	if !ok {
		return nil
	}
	switch s.kind {
	case slotText, slotItem:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(key)
		if s.kind == slotText {
			m.sess.SetText(s.field.Key, m.input.Value())
		} else {
			m.sess.SetItem(s.field.Key, s.index, m.input.Value())
		}
		return cmd
	case slotOption:
		m.updateOption(s, key.String())
	case slotConfirm:
		if key.String() == " " {
			m.sess.Confirm(s.field.Key)
		}
	case slotScale:
		n := m.sess.Value(s.field.Key).Number
		switch key.String() {
		case "+", "=", "right", "l":
			m.sess.SetNumber(s.field.Key, n+1)
		case "-", "left", "h":
			m.sess.SetNumber(s.field.Key, n-1)
		}
	case slotTimer:
		return m.timer.update(key)
	}
	return nil
}

func (m *formModel) updateOption(s slot, key string) {
	label := s.field.Options[s.index].Label
	switch key {
	case " ":
		if s.field.Kind == flow.FieldChoice {
			m.sess.Choose(s.field.Key, label)
		} else {
			m.sess.Toggle(s.field.Key, label)
		}
		m.rebuild()
	case "+", "=", "right", "l":
		if r, ok := m.rating(s.field.Key, label); ok {
			m.sess.Rate(s.field.Key, label, r+1)
		}
	case "-", "left", "h":
		if r, ok := m.rating(s.field.Key, label); ok {
			m.sess.Rate(s.field.Key, label, r-1)
		}
	}
}

func (m *formModel) rating(key, label string) (int, bool) {
	for _, it := range m.sess.Value(key).Items {
		if it.Text == label {
			return it.Rating, true
		}
	}
	return 0, false
}

func (m *formModel) addItem() {
	s, ok := m.focused()
	if !ok || s.kind != slotItem {
		return
	}
	if !m.sess.AddItem(s.field.Key) {
		return
	}
	last := len(m.sess.Value(s.field.Key).Items) - 1
	m.rebuild()
	for i, other := range m.slots {
		if other.kind == slotItem && other.field.Key == s.field.Key && other.index == last {
			m.focus = i
		}
	}
	m.bindInput()
}

func (m *formModel) removeItem() {
	s, ok := m.focused()
	if !ok || s.kind != slotItem {
		return
	}
	if m.sess.RemoveItem(s.field.Key, s.index) {
		if s.index > 0 {
			m.focus--
		}
		m.rebuild()
	}
}

// next advances the session and reports completion through the hooks.
func (m *formModel) next() tea.Cmd {
	m.err = nil
	tr, err := m.sess.Next(m.ctx)
	if err != nil {
		m.err = err
		return nil
	}
	switch tr {
	case flow.Stayed:
		if m.timer != nil && !m.sess.TimerDone() {
			m.notice = "Let the timer finish before continuing."
		} else {
			m.notice = "Complete this step to continue."
		}
	case flow.Advanced:
		m.focus = 0
		m.rebuild()
	case flow.Completed:
		m.rebuild()
		if m.hooks.finished != nil {
			sess := m.sess
			finished := m.hooks.finished
			return func() tea.Msg {
				finished(sess)
				return nil
			}
		}
	}
	return nil
}

// pauseTimer stops a running step timer, keeping its count.
func (m *formModel) pauseTimer() {
	if m.timer != nil {
		m.timer.cd.Pause()
	}
}

// tick advances the step timer and reports whether it keeps running.
func (m *formModel) tick() (bool, tea.Cmd) {
	if m.timer == nil || !m.timer.running() {
		return false, nil
	}
	running, ev := m.timer.tick()
	if !ev.Completed {
		return running, nil
	}
	m.sess.MarkTimerDone()
	if m.hooks.timerDone == nil {
		return false, nil
	}
	label, done := m.sess.Definition().Title, m.hooks.timerDone
	return false, func() tea.Msg {
		done(label)
		return nil
	}
}

func (m *formModel) view() string {
	if m.sess.Completed() {
		return m.completedView()
	}

	var b strings.Builder
	def, step := m.sess.Definition(), m.sess.Current()

	if m.sess.Len() > 1 {
		b.WriteString(m.st.title.Render(fmt.Sprintf("%s · Step %d of %d: %s", def.Title, m.sess.Index()+1, m.sess.Len(), step.Title)))
	} else {
		b.WriteString(m.st.title.Render(def.Title))
	}
	b.WriteString("\n\n")
	if step.Prompt != "" {
		b.WriteString(m.wrap(m.st.text, step.Prompt) + "\n")
	}
	if step.Detail != "" {
		b.WriteString(m.wrap(m.st.help, step.Detail) + "\n")
	}
	b.WriteString("\n")

	lastField, lastGroup := "", ""
	for i, s := range m.slots {
		focused := i == m.focus
		if s.kind != slotTimer && s.field.Key != lastField {
			lastField, lastGroup = s.field.Key, ""
			if s.field.Label != "" && s.kind != slotConfirm {
				b.WriteString(m.st.accent.Render(s.field.Label) + "\n")
			}
		}
		if s.kind == slotOption {
			if g := s.field.Options[s.index].Group; g != "" && g != lastGroup {
				lastGroup = g
				b.WriteString(m.st.help.Render("  "+g) + "\n")
			}
		}
		b.WriteString(m.slotView(s, focused) + "\n")
	}

	if m.timer != nil && m.sess.TimerDone() {
		b.WriteString(m.st.active.Render("✓ Timer complete") + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + m.st.paused.Render(m.notice) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + m.st.err.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + m.st.help.Render(m.helpLine()))
	return b.String()
}

func (m *formModel) slotView(s slot, focused bool) string {
	cursor := "  "
	if focused {
		cursor = m.st.active.Render("▸ ")
	}
	line := func(text string) string {
		if focused {
			return cursor + m.st.active.Render(text)
		}
		return cursor + m.st.text.Render(text)
	}

	switch s.kind {
	case slotText:
		if focused {
			return cursor + m.input.View()
		}
		return cursor + m.valueOrPlaceholder(m.slotText(s), s.field.Placeholder)
	case slotItem:
		prefix := fmt.Sprintf("%d. ", s.index+1)
		if s.field.Kind == flow.FieldChecklist {
			prefix = "[ ] "
			if items := m.sess.Value(s.field.Key).Items; s.index < len(items) && items[s.index].Done {
				prefix = "[✓] "
			}
		}
		if focused {
			return cursor + prefix + m.input.View()
		}
		return cursor + prefix + m.valueOrPlaceholder(m.slotText(s), s.field.Placeholder)
	case slotOption:
		opt := s.field.Options[s.index]
		v := m.sess.Value(s.field.Key)
		var text string
		if s.field.Kind == flow.FieldChoice {
			mark := "( )"
			if v.Text == opt.Label {
				mark = "(•)"
			}
			text = mark + " " + opt.Label
		} else {
			mark := "[ ]"
			if v.Has(opt.Label) {
				mark = "[x]"
			}
			text = mark + " " + opt.Label
			if r, ok := m.rating(s.field.Key, opt.Label); ok && s.field.Rated {
				text += fmt.Sprintf("  %d/10", r)
			}
		}
		out := line(text)
		if focused && opt.Hint != "" {
			out += "\n" + m.st.help.Render("      "+opt.Hint)
		}
		return out
	case slotConfirm:
		if m.sess.Value(s.field.Key).Filled() {
			return cursor + m.st.active.Render("[✓ "+s.field.Label+"]")
		}
		return line("[ " + s.field.Label + " ]")
	case slotScale:
		n := m.sess.Value(s.field.Key).Number
		return line(fmt.Sprintf("◀ %d ▶  (%d-%d)", n, s.field.Min, s.field.Max))
	case slotTimer:
		return m.timer.view(m.width)
	}
	return ""
}

func (m *formModel) valueOrPlaceholder(v, placeholder string) string {
	if v == "" {
		return m.st.help.Render(placeholder)
	}
	return m.st.text.Render(v)
}

func (m *formModel) helpLine() string {
	parts := []string{"tab next field"}
	if s, ok := m.focused(); ok {
		switch s.kind {
		case slotOption:
			parts = append(parts, "space select")
			if s.field.Rated {
				parts = append(parts, "+/- intensity")
			}
		case slotConfirm:
			parts = append(parts, "space confirm")
		case slotScale:
			parts = append(parts, "+/- adjust")
		case slotItem:
			if s.field.Extendable {
				parts = append(parts, "ctrl+a add", "ctrl+r remove")
			}
			if s.field.Kind == flow.FieldChecklist {
				parts = append(parts, "ctrl+t done")
			}
		}
	}
	parts = append(parts, "enter continue", "esc back")
	return strings.Join(parts, " · ")
}

func (m *formModel) completedView() string {
	var b strings.Builder
	b.WriteString(m.st.active.Render("✓ "+m.sess.Definition().Title+" complete") + "\n\n")
	if sum := m.sess.Summary(); sum != "" {
		b.WriteString(m.wrap(m.st.text, sum) + "\n\n")
	}
	if m.sess.Entry() != nil {
		b.WriteString(m.st.accent.Render("Saved to your journal.") + "\n\n")
	}
	b.WriteString(m.st.help.Render("enter start over · esc back"))
	return b.String()
}

func (m *formModel) wrap(style lipgloss.Style, text string) string {
	if m.width > 10 {
		style = style.Width(min(m.width-4, 80))
	}
	return style.Render(text)
}
