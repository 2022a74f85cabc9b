// ABOUTME: CLI command to create sample policies and customer data
// ABOUTME: Writes starter files for local development and demos
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyway/concierge/internal/config"
	"github.com/skyway/concierge/internal/customers"
	"github.com/skyway/concierge/internal/policy"
)

// NewSeedCmd creates the seed command
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create sample policies and customer data",
		Long: `Create sample policy documents and customer data files.

Writes five SkyWay Airlines policy documents into the policy
directory and sample flight and customer records into the data
directory. Existing files with the same names are overwritten.

Examples:
  concierge seed
  CONCIERGE_POLICY_DIR=./my-policies concierge seed`,
		RunE: runSeed,
	}

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if err := policy.WriteSamples(cfg.PolicyDir); err != nil {
		return fmt.Errorf("writing sample policies: %w", err)
	}
	if err := customers.WriteSamples(cfg.DataDir); err != nil {
		return fmt.Errorf("writing sample customer data: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %d sample policies in %s\n", len(policy.SampleFiles), cfg.PolicyDir)
		fmt.Fprintf(cmd.OutOrStdout(), "Created sample customer data in %s\n", cfg.DataDir)
	}
	return nil
}
