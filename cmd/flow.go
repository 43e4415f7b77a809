package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/adapters/tui"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/emotions"
)

var flowCmd = &cobra.Command{
	Use:   "flow [emotion]",
	Short: "Run the guided coping flow for an emotion",
	Long: `Run the coping flow for an emotion: acknowledge it, breathe, ground
yourself and write it down, then learn about it.

Without an emotion, or with one calm does not know, a picker opens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = strings.ToLower(strings.TrimSpace(args[0]))
		}
		id, ok, err := resolveEmotion(cmd.OutOrStdout(), id)
		if err != nil || !ok {
			return err
		}
		if !stdoutIsTerminal() {
			return errNotInteractive
		}
		return tui.Run(setupSignalHandler(), app.tuiDeps(), tui.Route{Name: tui.RouteFlow, ID: id})
	},
}

var overviewCmd = &cobra.Command{
	Use:   "overview <emotion>",
	Short: "Show triggers, symptoms and coping strategies for an emotion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ov, err := app.coping.Overview(strings.ToLower(args[0]))
		if err != nil {
			if errors.Is(err, domain.ErrEmotionNotFound) {
				printSuggestions(cmd.OutOrStdout(), args[0])
			}
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			ids := make([]string, 0, len(ov.Exercises))
			for _, def := range ov.Exercises {
				ids = append(ids, def.ID)
			}
			return printJSON(out, map[string]any{
				"emotion":   ov.Emotion,
				"exercises": ids,
			})
		}

		e := ov.Emotion
		fmt.Fprintf(out, "%s  Understanding %s\n", e.Icon, e.Name)
		fmt.Fprintf(out, "   %s\n", e.Description)
		printSection(out, "Common triggers", e.Triggers)
		printSection(out, "Symptoms", e.Symptoms)
		printSection(out, "Healthy coping strategies", e.CopingStrategies)

		fmt.Fprintln(out, "\nExercises:")
		for _, def := range ov.Exercises {
			fmt.Fprintf(out, "  %-24s %s\n", def.ID, def.Title)
		}
		fmt.Fprintf(out, "\nStart the coping flow with: calm flow %s\n", e.ID)
		return nil
	},
}

var emotionsCmd = &cobra.Command{
	Use:   "emotions",
	Short: "List the emotions calm can help with",
	RunE: func(cmd *cobra.Command, args []string) error {
		list := app.coping.Emotions()
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, list)
		}
		for _, e := range list {
			fmt.Fprintf(out, "%s  %-16s %-18s %s\n", e.Icon, e.ID, e.Name, e.Description)
		}
		return nil
	},
}

// resolveEmotion returns a known emotion id. Unknown ids print suggestions
// and fall back to the picker on a terminal. ok is false when the user
// aborted the picker.
func resolveEmotion(w io.Writer, id string) (string, bool, error) {
	if id != "" {
		if _, err := emotions.Find(id); err == nil {
			return id, true, nil
		}
		fmt.Fprintf(w, "Unknown emotion %q.\n", id)
		printSuggestions(w, id)
	}

	if !stdoutIsTerminal() {
		if id == "" {
			return "", false, fmt.Errorf("an emotion is required: run \"calm emotions\" to list them")
		}
		return "", false, fmt.Errorf("%w: %s", domain.ErrEmotionNotFound, id)
	}

	list := app.coping.Emotions()
	items := make([]tui.PickerItem, 0, len(list))
	for _, e := range list {
		items = append(items, tui.PickerItem{Label: e.Icon + " " + e.Name, Desc: e.Description})
	}
	res := tui.RunPicker("What are you feeling?", items, "type to filter · enter select · esc cancel", &app.config.Theme)
	if res.Aborted {
		return "", false, nil
	}
	return list[res.Index].ID, true, nil
}

func printSuggestions(w io.Writer, query string) {
	if ids := app.coping.Suggest(query); len(ids) > 0 {
		fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(ids, ", "))
	}
}

func printSection(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  • %s\n", it)
	}
}
