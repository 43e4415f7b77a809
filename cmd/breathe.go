package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/adapters/tui"
	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/emotions"
)

var (
	breatheEmotion string
	breatheSeconds int
	breatheCycles  int
	breathePlain   bool
)

var breatheCmd = &cobra.Command{
	Use:   "breathe",
	Short: "Run the breathing timer",
	Long: `Run a breathing timer: inhale, hold and exhale, repeated.

With --emotion the timer uses that emotion's breathing pattern. With
--seconds every phase lasts that long (clamped to the configured range).
Without either, the adjustable breathing tool opens; use left and right
to change the phase length before starting.

--cycles 0 repeats until you stop it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, emotionID, err := breathingPattern(cmd)
		if err != nil {
			return err
		}

		if p == nil && !breathePlain && stdoutIsTerminal() {
			res, err := tui.RunTimer(setupSignalHandler(), tui.TimerOptions{
				Breathing: app.config.Breathing,
				Theme:     &app.config.Theme,
			})
			if err != nil {
				return err
			}
			if res.Cycles > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Cycles completed: %d\n", res.Cycles)
			}
			return nil
		}

		if p == nil {
			s := app.config.Breathing.PhaseSeconds
			def := countdown.Breathing(s, s, s, breatheCycles)
			p = &def
		}
		return runCountdown(cmd, "🌬  Breathing", *p, emotionID)
	},
}

func init() {
	breatheCmd.Flags().StringVarP(&breatheEmotion, "emotion", "e", "", "Use the breathing pattern of an emotion")
	breatheCmd.Flags().IntVarP(&breatheSeconds, "seconds", "s", 0, "Seconds per phase")
	breatheCmd.Flags().IntVarP(&breatheCycles, "cycles", "c", 0, "Number of cycles (0 repeats until stopped)")
	breatheCmd.Flags().BoolVar(&breathePlain, "plain", false, "Print progress lines instead of the full-screen timer")
}

// breathingPattern resolves the flags into a pattern. A nil pattern means
// the adjustable tool with configured defaults.
func breathingPattern(cmd *cobra.Command) (*countdown.Pattern, string, error) {
	if breatheCycles < 0 {
		return nil, "", fmt.Errorf("--cycles must be 0 or more")
	}

	var emotionID string
	if breatheEmotion != "" {
		emotionID = strings.ToLower(breatheEmotion)
		if _, err := emotions.Find(emotionID); err != nil {
			printSuggestions(cmd.OutOrStdout(), emotionID)
			return nil, "", err
		}
	}

	switch {
	case breatheSeconds > 0:
		s := app.config.Breathing.Clamp(breatheSeconds)
		p := countdown.Breathing(s, s, s, breatheCycles)
		return &p, emotionID, nil
	case emotionID != "":
		p := app.coping.Catalog().Breathing(emotionID)
		if cmd.Flags().Changed("cycles") {
			p.Cycles = breatheCycles
		}
		return &p, emotionID, nil
	case cmd.Flags().Changed("cycles"):
		s := app.config.Breathing.PhaseSeconds
		p := countdown.Breathing(s, s, s, breatheCycles)
		return &p, "", nil
	}
	return nil, "", nil
}
