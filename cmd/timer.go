package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/adapters/tui"
	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/exercises"
)

// tickInterval is the plain runner's tick period.
var tickInterval = time.Second

var (
	timerMinutes int
	timerPlain   bool
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run one of the exercise countdowns on its own",
}

var timerTwoMinuteCmd = &cobra.Command{
	Use:   "two-minute",
	Short: "Commit to a task for just two minutes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := time.Duration(app.config.Timers.TwoMinute)
		return runCountdown(cmd, "⏱  Two-Minute Rule", countdown.Single("work", int(d/time.Second)), "")
	},
}

var timerDelayCmd = &cobra.Command{
	Use:   "delay",
	Short: "Wait before responding to a message that stung",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := time.Duration(app.config.Timers.ResponseDelay)
		if timerMinutes > 0 {
			d = time.Duration(timerMinutes) * time.Minute
		}
		return runCountdown(cmd, "⏳ Response Delay", countdown.Single("delay", int(d/time.Second)), "")
	},
}

var timerUrgeCmd = &cobra.Command{
	Use:   "urge",
	Short: "Ride out an urge until it passes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := time.Duration(app.config.Timers.UrgeBreath)
		return runCountdown(cmd, "🌊 Urge Surfing", countdown.Single("breathe", int(d/time.Second)), "")
	},
}

func init() {
	timerCmd.PersistentFlags().BoolVar(&timerPlain, "plain", false, "Print progress lines instead of the full-screen timer")
	timerDelayCmd.Flags().IntVar(&timerMinutes, "minutes", 0, "Delay length in minutes (default from config)")

	timerCmd.AddCommand(timerTwoMinuteCmd)
	timerCmd.AddCommand(timerDelayCmd)
	timerCmd.AddCommand(timerUrgeCmd)
}

// runCountdown runs p full screen on a terminal, or with line output when
// plain is requested or stdout is not a terminal.
func runCountdown(cmd *cobra.Command, title string, p countdown.Pattern, emotionID string) error {
	ctx := setupSignalHandler()
	if timerPlain || breathePlain || !stdoutIsTerminal() {
		snap, err := runPlain(ctx, cmd.OutOrStdout(), title, p, emotionID)
		if err != nil {
			return err
		}
		if snap.Status == countdown.StatusCompleted {
			app.coping.TimerDone(title)
		}
		return nil
	}

	res, err := tui.RunTimer(ctx, tui.TimerOptions{
		Title:     title,
		Pattern:   &p,
		EmotionID: emotionID,
		Breathing: app.config.Breathing,
		Theme:     &app.config.Theme,
		AutoStart: true,
	})
	if err != nil && ctx.Err() == nil {
		return err
	}
	if res.Completed {
		app.coping.TimerDone(title)
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Time's up. Notice how you feel.")
	} else if p.Looping() && res.Cycles > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Cycles completed: %d\n", res.Cycles)
	}
	return nil
}

// runPlain drives p with a Runner and prints a line per phase change. An
// interrupted run is not an error.
func runPlain(ctx context.Context, w io.Writer, title string, p countdown.Pattern, emotionID string) (countdown.Snapshot, error) {
	if p.CycleSeconds() == 0 {
		return countdown.Snapshot{}, fmt.Errorf("countdown %q has no duration", title)
	}

	fmt.Fprintln(w, title)
	single := len(p.Phases) == 1
	cd := countdown.New(p)
	announce := func(s countdown.Snapshot) {
		fmt.Fprintf(w, "%s %s\n", exercises.PhaseLabel(emotionID, s.Phase), tui.FormatClock(s.Remaining))
	}
	announce(cd.Snapshot())

	runner := countdown.NewRunner(cd, tickInterval, func(s countdown.Snapshot, ev countdown.Event) {
		switch {
		case ev.Completed:
			fmt.Fprintln(w, "✓ Time's up. Notice how you feel.")
		case ev.CycleCompleted && p.Looping():
			fmt.Fprintf(w, "Cycles completed: %d\n", s.Cycles)
			announce(s)
		case ev.PhaseChanged:
			announce(s)
		case single && s.Remaining > 0 && s.Remaining%30 == 0:
			announce(s)
		}
	})
	runner.Start(ctx)
	if err := runner.Wait(ctx); err != nil {
		app.logger.Debug("countdown interrupted", zap.String("timer", title), zap.Error(err))
	}
	return runner.Snapshot(), nil
}
