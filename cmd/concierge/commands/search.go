// ABOUTME: CLI command to search policy documents
// ABOUTME: Prints ranked chunks with relevance scores
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	searchTopN int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search policy documents",
		Long: `Search airline policy documents.

Queries the retrieval index and prints the most relevant policy
chunks with their scores. Common customer phrasings are expanded
with policy terminology before matching.

Examples:
  concierge search "checked baggage fees"
  concierge search --top 5 "cancel my flight"
  concierge search --format json "wheelchair assistance"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchTopN, "top", 3, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if err := validatePositiveInt(searchTopN, "top"); err != nil {
		return err
	}

	ctx := cmd.Context()
	b, err := initBackend(ctx)
	if err != nil {
		return err
	}

	query := args[0]
	results, err := b.retriever.Search(ctx, query, searchTopN)
	if err != nil {
		return fmt.Errorf("searching policies: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No policy information found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tPOLICY\tCHUNK\n")
	fmt.Fprintf(w, "-----\t------\t-----\n")
	for _, result := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n",
			result.Score,
			truncate(result.PolicyName, 25),
			truncate(result.ChunkText, 70))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
