package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/domain"
)

var moodNote string

var moodCmd = &cobra.Command{
	Use:   "mood [0-4]",
	Short: "Log today's mood or show it",
	Long: `Log how you feel today on a scale from 0 (very bad) to 4 (great).
Logging again the same day replaces the earlier entry.

Without a value, today's mood is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			today, err := app.moods.Today(ctx)
			if err != nil {
				return fmt.Errorf("failed to load today's mood: %w", err)
			}
			if jsonOutput {
				return printJSON(out, today)
			}
			if today == nil {
				fmt.Fprintln(out, "No mood logged today. Log one with: calm mood <0-4>")
				printScale(out)
				return nil
			}
			fmt.Fprintf(out, "Today: %s %s\n", today.Emoji(), today.Label())
			if today.Note != "" {
				fmt.Fprintf(out, "Note:  %s\n", today.Note)
			}
			return nil
		}

		mood, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q", domain.ErrInvalidMood, args[0])
		}
		entry, err := app.moods.Log(ctx, mood, moodNote)
		if err != nil {
			return fmt.Errorf("failed to log mood: %w", err)
		}
		if jsonOutput {
			return printJSON(out, entry)
		}
		fmt.Fprintf(out, "Logged %s %s for today\n", entry.Emoji(), entry.Label())
		return nil
	},
}

var moodWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the mood of the last days and the weekly average",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := app.moods.Summary(context.Background())
		if err != nil {
			return fmt.Errorf("failed to summarize moods: %w", err)
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, summary)
		}

		fmt.Fprintln(out, "This week:")
		for _, d := range summary.Days {
			mark := "·"
			label := ""
			if d.Mood != nil {
				mark = domain.MoodEmoji(*d.Mood)
				label = domain.MoodLabel(*d.Mood)
			}
			fmt.Fprintf(out, "  %-3s %s  %s %s\n", d.Weekday, d.Date, mark, label)
		}
		if summary.Average != nil {
			fmt.Fprintf(out, "\nAverage: %s %s\n", domain.MoodEmoji(*summary.Average), domain.MoodLabel(*summary.Average))
		} else {
			fmt.Fprintln(out, "\nAverage: no moods logged this week")
		}
		if insight := summary.Insight(); insight != "" {
			fmt.Fprintf(out, "\n💡 Insight: %s\n", insight)
		}
		return nil
	},
}

func init() {
	moodCmd.Flags().StringVarP(&moodNote, "note", "n", "", "Add a note to the entry")
	moodCmd.AddCommand(moodWeekCmd)
}

func printScale(w io.Writer) {
	var parts []string
	for m := domain.MoodVeryBad; m <= domain.MoodGreat; m++ {
		parts = append(parts, fmt.Sprintf("%d %s %s", m, domain.MoodEmoji(m), domain.MoodLabel(m)))
	}
	fmt.Fprintf(w, "Scale: %s\n", strings.Join(parts, " · "))
}
