// Package flow implements the step-sequenced exercise engine: an ordered
// list of steps, each gating forward navigation on its own validation rule,
// ending in a terminal state that summarises the inputs and writes at most
// one journal entry.
package flow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

// Step is one screen of a guided exercise.
type Step struct {
	Key    string
	Title  string
	Prompt string
	Detail string
	Fields []Field

	// Rule gates Next. A nil rule never blocks.
	Rule Rule

	// Timer returns the countdown this step requires to finish before Next
	// is allowed, or nil.
	Timer func(Inputs) *countdown.Pattern

	// Exercise names another definition embedded as this step.
	Exercise string
}

// Definition is the data table describing an exercise.
type Definition struct {
	ID          string
	Title       string
	Description string

	// Label is stored as the journal entry's emotion.
	Label string
	Steps []Step

	// Compose builds the journal response. A nil Compose writes nothing.
	Compose func(Inputs) string

	// Summarize builds the completion summary. Defaults to Compose.
	Summarize func(Inputs) string

	// ExitOnFinish makes Next on the final step leave the flow instead of
	// completing it.
	ExitOnFinish bool
}

// Writes reports whether completing the definition appends a journal entry.
func (d *Definition) Writes() bool {
	return d.Compose != nil
}

// Transition is the result of a Next call.
type Transition int

const (
	Stayed Transition = iota
	Advanced
	Completed
	Exited
)

// String returns a human-readable transition.
func (t Transition) String() string {
	switch t {
	case Stayed:
		return "stayed"
	case Advanced:
		return "advanced"
	case Completed:
		return "completed"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

type sessionState int

const (
	stateActive sessionState = iota
	stateCompleted
	stateExited
)

// Session is one run through a definition.
type Session struct {
	def        *Definition
	sink       ports.JournalAppender
	now        func() time.Time
	fields     map[string]Field
	index      int
	inputs     Inputs
	timersDone map[int]bool
	state      sessionState
	entry      *domain.JournalEntry
	summary    string
}

// Option configures a Session.
type SessionOption func(*Session)

// WithClock overrides the clock used to stamp journal entries.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// New starts a session on the first step. sink may be nil for definitions
// that never write.
func New(def *Definition, sink ports.JournalAppender, opts ...SessionOption) *Session {
	s := &Session{
		def:    def,
		sink:   sink,
		now:    time.Now,
		fields: make(map[string]Field),
	}
	for _, st := range def.Steps {
		for _, f := range st.Fields {
			s.fields[f.Key] = f
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Restart()
	return s
}

// Restart clears all inputs and returns to the first step. Entries written
// by earlier runs are left untouched.
func (s *Session) Restart() {
	s.index = 0
	s.state = stateActive
	s.entry = nil
	s.summary = ""
	s.timersDone = make(map[int]bool)
	s.inputs = make(Inputs, len(s.fields))
	for k, f := range s.fields {
		s.inputs[k] = f.initial()
	}
}

// Definition returns the definition being run.
func (s *Session) Definition() *Definition { return s.def }

// Index returns the current step index.
func (s *Session) Index() int { return s.index }

// Len returns the number of steps.
func (s *Session) Len() int { return len(s.def.Steps) }

// Current returns the current step, or a zero Step for an empty definition.
func (s *Session) Current() Step {
	if len(s.def.Steps) == 0 {
		return Step{}
	}
	return s.def.Steps[s.index]
}

// IsFinal reports whether the current step is the last one.
func (s *Session) IsFinal() bool { return s.index == len(s.def.Steps)-1 }

// Completed reports whether the session reached its terminal state.
func (s *Session) Completed() bool { return s.state == stateCompleted }

// Exited reports whether the session was left via ExitOnFinish.
func (s *Session) Exited() bool { return s.state == stateExited }

// Active reports whether the session still accepts input.
func (s *Session) Active() bool { return s.state == stateActive }

// Progress returns the percentage of steps reached, counting the current one.
func (s *Session) Progress() float64 {
	if len(s.def.Steps) == 0 {
		return 0
	}
	return float64(s.index+1) / float64(len(s.def.Steps)) * 100
}

// Inputs returns a copy of the collected inputs.
func (s *Session) Inputs() Inputs { return s.inputs.Clone() }

// Value returns the current value of a field.
func (s *Session) Value(key string) Value { return s.inputs[key].clone() }

// Timer returns the countdown pattern the current step requires, or nil.
func (s *Session) Timer() *countdown.Pattern {
	st := s.Current()
	if st.Timer == nil {
		return nil
	}
	return st.Timer(s.inputs)
}

// TimerDone reports whether the current step's timer has finished.
func (s *Session) TimerDone() bool { return s.timersDone[s.index] }

// MarkTimerDone records that the current step's timer ran to completion.
func (s *Session) MarkTimerDone() {
	if s.Active() {
		s.timersDone[s.index] = true
	}
}

// CanAdvance evaluates the current step's rule and timer gate.
func (s *Session) CanAdvance() bool {
	if !s.Active() || len(s.def.Steps) == 0 {
		return false
	}
	st := s.Current()
	if st.Rule != nil && !st.Rule(s.inputs) {
		return false
	}
	if s.Timer() != nil && !s.timersDone[s.index] {
		return false
	}
	return true
}

// Next moves forward one step when the current step validates. On the final
// step it either exits (ExitOnFinish) or completes the session, appending
// the composed journal entry. A failed append leaves the session on the
// final step.
func (s *Session) Next(ctx context.Context) (Transition, error) {
	if !s.CanAdvance() {
		return Stayed, nil
	}
	if !s.IsFinal() {
		s.index++
		return Advanced, nil
	}
	if s.def.ExitOnFinish {
		s.state = stateExited
		return Exited, nil
	}
	if err := s.finish(ctx); err != nil {
		return Stayed, err
	}
	return Completed, nil
}

// Back moves to the previous step, keeping every input.
func (s *Session) Back() bool {
	if !s.Active() || s.index == 0 {
		return false
	}
	s.index--
	return true
}

func (s *Session) finish(ctx context.Context) error {
	var response string
	if s.def.Compose != nil {
		response = s.def.Compose(s.inputs)
	}

	var entry *domain.JournalEntry
	if strings.TrimSpace(response) != "" {
		entry = &domain.JournalEntry{
			ID:        domain.NewID(),
			Emotion:   s.def.Label,
			Response:  response,
			Timestamp: s.now().UTC(),
		}
		if s.sink != nil {
			if err := s.sink.Append(ctx, entry.Clone()); err != nil {
				return fmt.Errorf("failed to save journal entry: %w", err)
			}
		}
	}

	s.entry = entry
	if s.def.Summarize != nil {
		s.summary = s.def.Summarize(s.inputs)
	} else {
		s.summary = response
	}
	s.state = stateCompleted
	return nil
}

// Entry returns a copy of the journal entry written on completion, or nil.
func (s *Session) Entry() *domain.JournalEntry {
	if s.entry == nil {
		return nil
	}
	return s.entry.Clone()
}

// Summary returns the completion summary.
func (s *Session) Summary() string { return s.summary }

// --- input mutators ---

func (s *Session) field(key string, kinds ...FieldKind) (Field, bool) {
	if !s.Active() {
		return Field{}, false
	}
	f, ok := s.fields[key]
	if !ok {
		return Field{}, false
	}
	for _, k := range kinds {
		if f.Kind == k {
			return f, true
		}
	}
	return Field{}, false
}

// SetText sets a free-text field.
func (s *Session) SetText(key, text string) bool {
	if _, ok := s.field(key, FieldText); !ok {
		return false
	}
	v := s.inputs[key]
	v.Text = text
	s.inputs[key] = v
	return true
}

// SetItem sets the i-th entry of a text list or checklist.
func (s *Session) SetItem(key string, i int, text string) bool {
	if _, ok := s.field(key, FieldTextList, FieldChecklist); !ok {
		return false
	}
	v := s.inputs[key].clone()
	if i < 0 || i >= len(v.Items) {
		return false
	}
	v.Items[i].Text = text
	s.inputs[key] = v
	return true
}

// AddItem appends an empty entry to an extendable list.
func (s *Session) AddItem(key string) bool {
	f, ok := s.field(key, FieldTextList, FieldChecklist)
	if !ok || !f.Extendable {
		return false
	}
	v := s.inputs[key].clone()
	v.Items = append(v.Items, Item{})
	s.inputs[key] = v
	return true
}

// RemoveItem removes the i-th entry of an extendable list, keeping at
// least one.
func (s *Session) RemoveItem(key string, i int) bool {
	f, ok := s.field(key, FieldTextList, FieldChecklist)
	if !ok || !f.Extendable {
		return false
	}
	v := s.inputs[key].clone()
	if len(v.Items) <= 1 || i < 0 || i >= len(v.Items) {
		return false
	}
	v.Items = append(v.Items[:i], v.Items[i+1:]...)
	s.inputs[key] = v
	return true
}

// Check toggles the done flag of a checklist entry.
func (s *Session) Check(key string, i int) bool {
	if _, ok := s.field(key, FieldChecklist); !ok {
		return false
	}
	v := s.inputs[key].clone()
	if i < 0 || i >= len(v.Items) {
		return false
	}
	v.Items[i].Done = !v.Items[i].Done
	s.inputs[key] = v
	return true
}

// Choose selects the option of a single-choice field.
func (s *Session) Choose(key, option string) bool {
	f, ok := s.field(key, FieldChoice)
	if !ok || !hasOption(f, option) {
		return false
	}
	s.inputs[key] = Value{Text: option}
	return true
}

// Toggle selects or deselects an option of a multi-choice field. Selection
// order is kept.
func (s *Session) Toggle(key, option string) bool {
	f, ok := s.field(key, FieldMulti)
	if !ok || !hasOption(f, option) {
		return false
	}
	v := s.inputs[key].clone()
	for i, it := range v.Items {
		if it.Text == option {
			v.Items = append(v.Items[:i], v.Items[i+1:]...)
			s.inputs[key] = v
			return true
		}
	}
	item := Item{Text: option}
	if f.Rated {
		item.Rating = ratingDefault
	}
	v.Items = append(v.Items, item)
	s.inputs[key] = v
	return true
}

// Rate sets the 1-10 intensity of a selected option.
func (s *Session) Rate(key, option string, rating int) bool {
	f, ok := s.field(key, FieldMulti)
	if !ok || !f.Rated {
		return false
	}
	v := s.inputs[key].clone()
	for i, it := range v.Items {
		if it.Text == option {
			v.Items[i].Rating = clamp(rating, 1, 10)
			s.inputs[key] = v
			return true
		}
	}
	return false
}

// SetNumber sets a scale field, clamped to its range.
func (s *Session) SetNumber(key string, n int) bool {
	f, ok := s.field(key, FieldScale)
	if !ok {
		return false
	}
	s.inputs[key] = Value{Number: clamp(n, f.Min, f.Max)}
	return true
}

// Confirm acknowledges a confirm field.
func (s *Session) Confirm(key string) bool {
	if _, ok := s.field(key, FieldConfirm); !ok {
		return false
	}
	s.inputs[key] = Value{Text: confirmedText}
	return true
}

func hasOption(f Field, option string) bool {
	for _, o := range f.Options {
		if o.Label == option {
			return true
		}
	}
	return false
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		return n
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
