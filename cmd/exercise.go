package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/adapters/tui"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise <id>",
	Short: "Practice a single exercise",
	Long: `Practice a single coping exercise outside of a flow.

Run "calm exercise list" to see the available exercises.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := app.coping.Catalog().Lookup(args[0]); err != nil {
			return err
		}
		if !stdoutIsTerminal() {
			return errNotInteractive
		}
		return tui.Run(setupSignalHandler(), app.tuiDeps(), tui.Route{Name: tui.RouteExercise, ID: args[0]})
	},
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available exercises",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := app.coping.Exercises()
		out := cmd.OutOrStdout()
		if jsonOutput {
			type exercise struct {
				ID          string `json:"id"`
				Title       string `json:"title"`
				Description string `json:"description"`
				Steps       int    `json:"steps"`
			}
			list := make([]exercise, 0, len(defs))
			for _, def := range defs {
				list = append(list, exercise{def.ID, def.Title, def.Description, len(def.Steps)})
			}
			return printJSON(out, list)
		}

		for _, def := range defs {
			fmt.Fprintf(out, "%-26s %s\n", def.ID, def.Title)
		}
		return nil
	},
}

func init() {
	exerciseCmd.AddCommand(exerciseListCmd)
}
