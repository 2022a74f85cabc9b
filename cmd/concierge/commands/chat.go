// ABOUTME: CLI command for talking to the support assistant
// ABOUTME: Supports single-turn questions and an interactive session
package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/skyway/concierge/internal/models"
)

var (
	chatCustomerID string
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the support assistant",
		Long: `Talk to the SkyWay support assistant.

With a message argument, runs a single turn and prints the response.
Without one, starts an interactive session that keeps conversation
history across turns. Type 'exit' or press Ctrl-D to leave.

Examples:
  concierge chat "How many bags can I check?"
  concierge chat --customer C001 "What is my flight status?"
  concierge chat`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatCustomerID, "customer", "", "Customer ID for personalized responses (e.g., C001)")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	ctx := cmd.Context()
	b, err := initBackend(ctx)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return chatTurn(cmd, b, args[0], nil)
	}
	return chatInteractive(cmd, b)
}

// chatTurn runs one turn and prints the result in the selected format.
func chatTurn(cmd *cobra.Command, b *backend, message string, history []models.Message) error {
	result, err := b.engine.ProcessChat(cmd.Context(), chatCustomerID, message, history)
	if err != nil {
		return fmt.Errorf("processing chat: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Response)
	if result.NeedsEscalation && !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "\n[This conversation has been flagged for a human agent]")
		if verbose && result.Summary != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "\nEscalation %s:\n%s\n", result.Summary.ID, result.Summary.RawText)
		}
	}
	return nil
}

// chatInteractive loops over stdin turns, accumulating history.
func chatInteractive(cmd *cobra.Command, b *backend) error {
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "SkyWay Airlines support. Type 'exit' to leave.")
	}

	var history []models.Message
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			break
		}

		result, err := b.engine.ProcessChat(cmd.Context(), chatCustomerID, message, history)
		if err != nil {
			return fmt.Errorf("processing chat: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Response)
		if result.NeedsEscalation && !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "[This conversation has been flagged for a human agent]")
		}

		history = append(history,
			models.Message{Role: models.RoleUser, Content: message},
			models.Message{Role: models.RoleAssistant, Content: result.Response},
		)
	}

	return scanner.Err()
}
