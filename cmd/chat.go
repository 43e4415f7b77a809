package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the supportive chat",
	Long: `Get a supportive reply to a message. Without a message, an interactive
session starts; type "exit" or press Ctrl+D to leave.

The chat is not a replacement for professional help and nothing you type
is stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) > 0 {
			msg := strings.Join(args, " ")
			reply := chat.Reply(msg)
			if jsonOutput {
				return printJSON(out, []chat.Message{
					{Role: chat.RoleUser, Content: msg},
					{Role: chat.RoleBot, Content: reply},
				})
			}
			fmt.Fprintln(out, reply)
			return nil
		}

		t := chat.NewTranscript()
		fmt.Fprintf(out, "💬 %s\n", chat.Greeting)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "\n> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "exit" || line == "quit" {
				break
			}
			if reply, ok := t.Send(line); ok {
				fmt.Fprintf(out, "💬 %s\n", reply.Content)
			}
		}
		fmt.Fprintln(out)
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if jsonOutput {
			return printJSON(out, t.Messages())
		}
		return nil
	},
}
