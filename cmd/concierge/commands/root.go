// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for the SkyWay concierge command-line interface
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███████╗██╗  ██╗██╗   ██╗██╗    ██╗ █████╗ ██╗   ██╗
██╔════╝██║ ██╔╝╚██╗ ██╔╝██║    ██║██╔══██╗╚██╗ ██╔╝
███████╗█████╔╝  ╚████╔╝ ██║ █╗ ██║███████║ ╚████╔╝
╚════██║██╔═██╗   ╚██╔╝  ██║███╗██║██╔══██║  ╚██╔╝
███████║██║  ██╗   ██║   ╚███╔███╔╝██║  ██║   ██║
╚══════╝╚═╝  ╚═╝   ╚═╝    ╚══╝╚══╝ ╚═╝  ╚═╝   ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concierge",
		Short: "SkyWay Airlines customer support backend",
		Long: banner + `
Concierge is the SkyWay Airlines customer support backend. It answers
customer questions using indexed policy documents, personalizes replies
with customer and flight data, and escalates conversations it cannot
resolve to a human agent.

Run 'concierge seed' once to create sample policies and customer data,
then 'concierge chat' to talk to the assistant.`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json, table)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Register subcommands
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewPoliciesCmd())
	cmd.AddCommand(NewCustomerCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
