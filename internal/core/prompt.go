// ABOUTME: Renders retrieved policy passages into a deterministic prompt block
// ABOUTME: Also formats the customer-context section for personalization
package core

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skyway/concierge/internal/models"
)

// NoPolicyFound is the sentinel returned when retrieval produced no
// passages. Callers treat it as a valid, non-error state.
const NoPolicyFound = "No specific policy information found for this query."

const policyBanner = "Relevant SkyWay Airlines policies:\n\n"

// FormatPolicyContext renders ranked retrieval results into the
// context block injected into the model prompt. Deterministic; no
// truncation beyond what retrieval already applied.
func FormatPolicyContext(results []models.RetrievalResult) string {
	if len(results) == 0 {
		return NoPolicyFound
	}

	titler := cases.Title(language.English)
	var sb strings.Builder
	sb.WriteString(policyBanner)
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("From %s Policy:\n%s\n\n", titler.String(r.PolicyName), r.ChunkText))
	}
	return sb.String()
}

// formatCustomerContext renders the personalization block for a known
// customer. Flight lines are omitted when no flight is joined.
func formatCustomerContext(c *models.Customer) string {
	var sb strings.Builder
	sb.WriteString("Customer Information:\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", c.Name))
	sb.WriteString(fmt.Sprintf("- Email: %s\n", c.Email))
	sb.WriteString(fmt.Sprintf("- Loyalty Tier: %s\n", c.LoyaltyTier))
	if c.Flight != nil {
		sb.WriteString(fmt.Sprintf("- Flight: %s (%s to %s)\n", c.Flight.FlightID, c.Flight.Origin, c.Flight.Destination))
		sb.WriteString(fmt.Sprintf("- Departure: %s\n", c.Flight.Departure))
		sb.WriteString(fmt.Sprintf("- Status: %s\n", c.Flight.Status))
	}
	sb.WriteString("\nWhen responding, personalize your answers using the customer's name and loyalty tier.\n")
	sb.WriteString("For flight-related questions, reference their specific flight details.")
	return sb.String()
}
