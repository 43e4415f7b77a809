package countdown

import (
	"context"
	"sync"
	"time"
)

// TickFunc receives the state after each tick.
type TickFunc func(Snapshot, Event)

// Runner drives a Countdown from its own goroutine. The goroutine is owned
// by the runner: Stop cancels it and waits, so no callback fires after Stop
// returns.
type Runner struct {
	mu       sync.Mutex
	cd       *Countdown
	interval time.Duration
	onTick   TickFunc

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner creates a runner ticking every interval. A zero interval means
// one second.
func NewRunner(cd *Countdown, interval time.Duration, onTick TickFunc) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{cd: cd, interval: interval, onTick: onTick}
}

// Start launches the ticking goroutine. Calling Start on a running runner
// is a no-op.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}
	if !r.cd.Start() {
		if r.cd.Status() == StatusCompleted {
			done := make(chan struct{})
			close(done)
			r.done = done
		}
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.loop(ctx, r.done)
}

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			// Stop may have won the race for the lock.
			if ctx.Err() != nil {
				r.mu.Unlock()
				return
			}
			ev := r.cd.Tick()
			snap := r.cd.Snapshot()
			r.mu.Unlock()

			if r.onTick != nil {
				r.onTick(snap, ev)
			}
			if ev.Completed {
				r.mu.Lock()
				if r.cancel != nil {
					r.cancel()
					r.cancel = nil
				}
				r.mu.Unlock()
				return
			}
		}
	}
}

// Stop cancels the goroutine, waits for it to exit and pauses the countdown.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	if cancel != nil {
		cancel()
		r.cd.Pause()
	}
	r.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Reset stops the runner and resets the countdown.
func (r *Runner) Reset() {
	r.Stop()
	r.mu.Lock()
	r.cd.Reset()
	r.done = nil
	r.mu.Unlock()
}

// Done is closed when the countdown completes or the runner is stopped. It
// returns nil before the first Start.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Snapshot returns the countdown state.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cd.Snapshot()
}

// Wait blocks until the countdown finishes, the runner stops or ctx ends.
func (r *Runner) Wait(ctx context.Context) error {
	done := r.Done()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		r.Stop()
		return ctx.Err()
	}
}
