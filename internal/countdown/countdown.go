// Package countdown implements a phase-sequenced, one-tick-per-second
// countdown used by every timed exercise: breathing cycles, response
// delays, the two-minute rule and urge surfing.
package countdown

import (
	"github.com/xvierd/calm-cli/internal/domain"
)

// Phase labels used by breathing patterns.
const (
	PhaseInhale = "inhale"
	PhaseHold   = "hold"
	PhaseExhale = "exhale"
)

// Phase is a named sub-interval of a countdown.
type Phase struct {
	Name    string
	Seconds int
}

// Pattern is an ordered phase sequence repeated for Cycles cycles.
// Cycles <= 0 repeats forever.
type Pattern struct {
	Phases []Phase
	Cycles int
}

// Single returns a plain countdown of one phase run once.
func Single(name string, seconds int) Pattern {
	return Pattern{Phases: []Phase{{Name: name, Seconds: seconds}}, Cycles: 1}
}

// Breathing returns an inhale/hold/exhale pattern. A zero hold is kept in
// the sequence and skipped while running.
func Breathing(inhale, hold, exhale, cycles int) Pattern {
	return Pattern{
		Phases: []Phase{
			{Name: PhaseInhale, Seconds: inhale},
			{Name: PhaseHold, Seconds: hold},
			{Name: PhaseExhale, Seconds: exhale},
		},
		Cycles: cycles,
	}
}

// FromBreathing converts a domain breathing pattern.
func FromBreathing(p domain.BreathingPattern) Pattern {
	return Breathing(p.Inhale, p.Hold, p.Exhale, p.Cycles)
}

// Looping reports whether the pattern repeats without end.
func (p Pattern) Looping() bool {
	return p.Cycles <= 0
}

// CycleSeconds returns the ticks needed for one cycle.
func (p Pattern) CycleSeconds() int {
	total := 0
	for _, ph := range p.Phases {
		if ph.Seconds > 0 {
			total += ph.Seconds
		}
	}
	return total
}

// TotalSeconds returns the ticks needed to complete the pattern, or 0 when
// it loops forever.
func (p Pattern) TotalSeconds() int {
	if p.Looping() {
		return 0
	}
	return p.CycleSeconds() * p.Cycles
}

// Status is the run state of a countdown.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusCompleted
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Event reports what a single tick changed.
type Event struct {
	PhaseChanged   bool
	CycleCompleted bool
	Completed      bool
}

// Snapshot is a read-only view of a countdown.
type Snapshot struct {
	Phase       string
	PhaseIndex  int
	Remaining   int
	Cycles      int
	TotalCycles int
	Status      Status
}

// Countdown is the timer state machine. It is not safe for concurrent use;
// Runner adds locking around it.
type Countdown struct {
	pattern   Pattern
	index     int
	remaining int
	cycles    int
	status    Status
}

// New creates an idle countdown positioned on the first non-empty phase.
func New(p Pattern) *Countdown {
	c := &Countdown{pattern: p}
	c.Reset()
	return c
}

// Pattern returns the configured pattern.
func (c *Countdown) Pattern() Pattern {
	return c.pattern
}

// Reset returns to the first phase with its full duration and zero cycles.
func (c *Countdown) Reset() {
	c.cycles = 0
	c.status = StatusIdle
	idx, ok := c.firstPhase(0)
	if !ok {
		c.index = 0
		c.remaining = 0
		return
	}
	c.index = idx
	c.remaining = c.pattern.Phases[idx].Seconds
}

// Reconfigure swaps the pattern and resets. It is refused while running.
func (c *Countdown) Reconfigure(p Pattern) error {
	if c.status == StatusRunning {
		return domain.ErrTimerRunning
	}
	c.pattern = p
	c.Reset()
	return nil
}

// Start begins or resumes ticking. It returns false when already running or
// completed. A pattern without any non-empty phase completes immediately.
func (c *Countdown) Start() bool {
	switch c.status {
	case StatusRunning, StatusCompleted:
		return false
	}
	if c.pattern.CycleSeconds() == 0 {
		c.status = StatusCompleted
		return false
	}
	c.status = StatusRunning
	return true
}

// Pause stops ticking and keeps the remaining count.
func (c *Countdown) Pause() bool {
	if c.status != StatusRunning {
		return false
	}
	c.status = StatusPaused
	return true
}

// Toggle starts a stopped countdown or pauses a running one.
func (c *Countdown) Toggle() {
	if c.status == StatusRunning {
		c.Pause()
		return
	}
	c.Start()
}

// Tick advances the countdown by one second.
func (c *Countdown) Tick() Event {
	var ev Event
	if c.status != StatusRunning {
		return ev
	}
	if c.remaining > 1 {
		c.remaining--
		return ev
	}

	next, ok := c.firstPhase(c.index + 1)
	if !ok {
		c.cycles++
		ev.CycleCompleted = true
		if !c.pattern.Looping() && c.cycles >= c.pattern.Cycles {
			c.remaining = 0
			c.status = StatusCompleted
			ev.Completed = true
			return ev
		}
		next, _ = c.firstPhase(0)
	}

	ev.PhaseChanged = next != c.index || ev.CycleCompleted
	c.index = next
	c.remaining = c.pattern.Phases[next].Seconds
	return ev
}

// firstPhase returns the first phase at or after from with a positive duration.
func (c *Countdown) firstPhase(from int) (int, bool) {
	for i := from; i < len(c.pattern.Phases); i++ {
		if c.pattern.Phases[i].Seconds > 0 {
			return i, true
		}
	}
	return 0, false
}

// Status returns the run state.
func (c *Countdown) Status() Status { return c.status }

// Remaining returns the seconds left in the current phase.
func (c *Countdown) Remaining() int { return c.remaining }

// Cycles returns the number of completed cycles.
func (c *Countdown) Cycles() int { return c.cycles }

// Phase returns the current phase, or the zero Phase for an empty pattern.
func (c *Countdown) Phase() Phase {
	if len(c.pattern.Phases) == 0 {
		return Phase{}
	}
	return c.pattern.Phases[c.index]
}

// Progress returns the completed fraction of the current phase (0-1).
func (c *Countdown) Progress() float64 {
	total := c.Phase().Seconds
	if total <= 0 {
		return 0
	}
	if c.status == StatusCompleted {
		return 1
	}
	return float64(total-c.remaining) / float64(total)
}

// Snapshot captures the current state.
func (c *Countdown) Snapshot() Snapshot {
	return Snapshot{
		Phase:       c.Phase().Name,
		PhaseIndex:  c.index,
		Remaining:   c.remaining,
		Cycles:      c.cycles,
		TotalCycles: c.pattern.Cycles,
		Status:      c.status,
	}
}
