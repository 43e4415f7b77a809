package countdown

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunner_RunsToCompletion(t *testing.T) {
	var ticks atomic.Int32
	var completed atomic.Bool

	r := NewRunner(New(Single("two-minute", 5)), time.Millisecond, func(s Snapshot, ev Event) {
		ticks.Add(1)
		if ev.Completed {
			completed.Store(true)
		}
	})

	r.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx))

	assert.Equal(t, int32(5), ticks.Load())
	assert.True(t, completed.Load())
	assert.Equal(t, StatusCompleted, r.Snapshot().Status)
}

func TestRunner_StopPreventsFurtherTicks(t *testing.T) {
	var ticks atomic.Int32
	r := NewRunner(New(Breathing(1, 1, 1, 0)), time.Millisecond, func(Snapshot, Event) {
		ticks.Add(1)
	})

	r.Start(context.Background())
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	r.Stop()
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, after, ticks.Load(), "no tick may fire after Stop returns")
	assert.Equal(t, StatusPaused, r.Snapshot().Status)
}

func TestRunner_ResumeAfterStop(t *testing.T) {
	var ticks atomic.Int32
	r := NewRunner(New(Single("x", 6)), time.Millisecond, func(Snapshot, Event) {
		ticks.Add(1)
	})

	r.Start(context.Background())
	require.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
	r.Stop()

	r.Start(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx))

	assert.Equal(t, int32(6), ticks.Load())
}

func TestRunner_ContextCancel(t *testing.T) {
	r := NewRunner(New(Breathing(1, 1, 1, 0)), time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	require.NoError(t, r.Wait(waitCtx))
	r.Stop()
}

func TestRunner_Reset(t *testing.T) {
	r := NewRunner(New(Single("x", 50)), time.Millisecond, nil)
	r.Start(context.Background())
	time.Sleep(5 * time.Millisecond)

	r.Reset()
	snap := r.Snapshot()
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Equal(t, 50, snap.Remaining)
	assert.Nil(t, r.Done())
}

func TestRunner_StartTwiceIsNoop(t *testing.T) {
	r := NewRunner(New(Single("x", 1000)), time.Millisecond, nil)
	r.Start(context.Background())
	first := r.Done()
	r.Start(context.Background())
	assert.Equal(t, first, r.Done())
	r.Stop()
}

// foreignCtx is a context that is not one of the standard library's cancel
// contexts, so deriving from it starts a propagation goroutine that only
// ends once the child is cancelled.
type foreignCtx struct {
	context.Context
	done chan struct{}
}

func (c foreignCtx) Done() <-chan struct{} { return c.done }

func TestRunner_CompletionReleasesContext(t *testing.T) {
	parent := foreignCtx{Context: context.Background(), done: make(chan struct{})}
	defer close(parent.done)

	r := NewRunner(New(Single("delay", 2)), time.Millisecond, nil)
	r.Start(parent)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx))

	goleak.VerifyNone(t)
}
