// Package cmd provides the CLI commands for calm.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dataDir    string
	engineFlag string
	jsonOutput bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "calm",
	Short: "calm - guided emotional coping exercises for the terminal",
	Long: `calm helps you regulate an emotion before analyzing it:
cope first with breathing, grounding and journaling, learn later.

Run "calm" with no arguments to open the interactive app.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !stdoutIsTerminal() {
			return errNotInteractive
		}
		ctx := setupSignalHandler()
		return tui.Run(ctx, app.tuiDeps(), tui.Route{Name: tui.RouteHome})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when a command fails.
	_ = cleanupServices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for calm's data (default: ~/.calm)")
	rootCmd.PersistentFlags().StringVar(&engineFlag, "engine", "", "Storage engine: sqlite or json")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("calm\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(flowCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(emotionsCmd)
	rootCmd.AddCommand(breatheCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(aboutCmd)
}
