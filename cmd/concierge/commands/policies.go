// ABOUTME: CLI command to list indexed policy documents
// ABOUTME: Shows document names and index chunk counts
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewPoliciesCmd creates the policies command
func NewPoliciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "List indexed policy documents",
		Long: `List the policy documents currently indexed for retrieval.

Reads the policy directory, builds the index, and shows the
document names in order.

Examples:
  concierge policies
  concierge policies --format json`,
		RunE: runPolicies,
	}

	return cmd
}

func runPolicies(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	b, err := initBackend(cmd.Context())
	if err != nil {
		return err
	}

	names := b.retriever.PolicyNames()

	if outputFormat == "json" {
		response := map[string]interface{}{
			"policies":    names,
			"chunk_count": b.retriever.ChunkCount(),
		}
		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No policy documents found in %s\n", b.cfg.PolicyDir)
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'concierge seed' to create sample policies.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "POLICY\n")
	fmt.Fprintf(w, "------\n")
	for _, name := range names {
		fmt.Fprintf(w, "%s\n", name)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d document(s), %d chunk(s) indexed\n", len(names), b.retriever.ChunkCount())
	}
	return nil
}
