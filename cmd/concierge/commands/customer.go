// ABOUTME: CLI command to look up customer records
// ABOUTME: Shows customer details with joined flight information
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/skyway/concierge/internal/config"
	"github.com/skyway/concierge/internal/customers"
)

// NewCustomerCmd creates the customer command
func NewCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer <id>",
		Short: "Look up a customer record",
		Long: `Look up a customer record by ID.

Shows the customer's details with their booked flight joined in,
the same view the assistant uses to personalize responses.

Examples:
  concierge customer C001
  concierge customer --format json C002`,
		Args: cobra.ExactArgs(1),
		RunE: runCustomer,
	}

	return cmd
}

func runCustomer(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	directory, err := customers.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading customer data: %w", err)
	}

	customer, ok := directory.GetCustomer(args[0])
	if !ok {
		return fmt.Errorf("customer not found: %s", args[0])
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(customer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Customer: %s (%s)\n", customer.Name, customer.CustomerID)
	fmt.Fprintf(cmd.OutOrStdout(), "Email:    %s\n", customer.Email)
	fmt.Fprintf(cmd.OutOrStdout(), "Tier:     %s\n", customer.LoyaltyTier)
	if customer.Flight != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Flight:   %s (%s to %s)\n",
			customer.Flight.FlightID, customer.Flight.Origin, customer.Flight.Destination)
		fmt.Fprintf(cmd.OutOrStdout(), "Departs:  %s\n", customer.Flight.Departure)
		fmt.Fprintf(cmd.OutOrStdout(), "Status:   %s\n", customer.Flight.Status)
	}
	return nil
}
