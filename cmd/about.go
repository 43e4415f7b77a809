package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/adapters/tui"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "What calm is, and where to find help",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "calm %s\n%s\n\n%s\n\nImportant\n%s\n", Version, tui.Tagline, tui.About, tui.Disclaimer)
		return nil
	},
}
