package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/adapters/tui"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/services"
)

var (
	journalLimit   int
	journalEmotion string
	exportFormat   string
	exportOutput   string
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Read and write your journal",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := app.journal.Latest(context.Background(), journalLimit)
		if err != nil {
			return fmt.Errorf("failed to list journal entries: %w", err)
		}
		return printEntries(cmd.OutOrStdout(), entries)
	},
}

var journalAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Write a journal entry",
	Long: `Write a free-form journal entry. Without text, a prompt opens on a
terminal; otherwise the text is read from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			var err error
			if text, err = readEntryText(cmd); err != nil {
				return err
			}
		}

		entry, err := app.journal.Add(context.Background(), journalEmotion, text)
		if err != nil {
			return fmt.Errorf("failed to add journal entry: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), entry)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved entry %s\n", shortID(entry.Ref()))
		return nil
	},
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journal entry",
	Long:  `Delete a journal entry by id. A unique id prefix is enough.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ref, err := resolveEntryRef(ctx, args[0])
		if err != nil {
			return err
		}
		if err := app.journal.Delete(ctx, ref); err != nil {
			return fmt.Errorf("failed to delete journal entry: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted entry %s\n", shortID(ref))
		return nil
	},
}

var journalSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search journal entries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := app.journal.Search(context.Background(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to search journal: %w", err)
		}
		if journalLimit > 0 && len(entries) > journalLimit {
			entries = entries[:journalLimit]
		}
		return printEntries(cmd.OutOrStdout(), entries)
	},
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal as md, csv, json or yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := app.journal.Export(context.Background(), w, exportFormat); err != nil {
			return fmt.Errorf("failed to export journal: %w", err)
		}
		if exportOutput != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported journal to %s\n", exportOutput)
		}
		return nil
	},
}

func init() {
	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "Maximum number of entries (0 for all)")
	journalSearchCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "Maximum number of entries (0 for all)")
	journalAddCmd.Flags().StringVarP(&journalEmotion, "emotion", "e", "", "Label the entry with an emotion or exercise")
	journalExportCmd.Flags().StringVarP(&exportFormat, "format", "f", services.FormatMarkdown, "Export format: md, csv, json, yaml")
	journalExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalSearchCmd)
	journalCmd.AddCommand(journalExportCmd)
}

func readEntryText(cmd *cobra.Command) (string, error) {
	if stdoutIsTerminal() {
		res := tui.RunTextPrompt("📝 What's on your mind?", "Write freely…", &app.config.Theme)
		if res.Aborted {
			return "", fmt.Errorf("cancelled")
		}
		return res.Value, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read entry from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// resolveEntryRef expands a unique id prefix to the full reference.
func resolveEntryRef(ctx context.Context, prefix string) (string, error) {
	entries, err := app.journal.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list journal entries: %w", err)
	}
	var matches []string
	for _, e := range entries {
		ref := e.Ref()
		if ref == prefix {
			return ref, nil
		}
		if strings.HasPrefix(ref, prefix) {
			matches = append(matches, ref)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrEntryNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d entries", prefix, len(matches))
	}
}

func printEntries(w io.Writer, entries []*domain.JournalEntry) error {
	if jsonOutput {
		return printJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No journal entries yet. Start writing to track your emotional journey.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %s\n", shortID(e.Ref()), e.Timestamp.Local().Format("2006-01-02 15:04"), e.Title())
		for _, line := range strings.Split(strings.TrimSpace(e.Response), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func shortID(ref string) string {
	if len(ref) > 8 {
		return ref[:8]
	}
	return ref
}
