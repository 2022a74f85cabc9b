// ABOUTME: Tests for the policy context formatter
// ABOUTME: Verifies sentinel, banner, title-cased headers, and determinism
package core

import (
	"strings"
	"testing"

	"github.com/skyway/concierge/internal/models"
)

func TestFormatPolicyContext_EmptyResults(t *testing.T) {
	if got := FormatPolicyContext(nil); got != NoPolicyFound {
		t.Errorf("FormatPolicyContext(nil) = %q, want sentinel", got)
	}
	if got := FormatPolicyContext([]models.RetrievalResult{}); got != NoPolicyFound {
		t.Errorf("FormatPolicyContext([]) = %q, want sentinel", got)
	}
}

func TestFormatPolicyContext_SingleResult(t *testing.T) {
	results := []models.RetrievalResult{
		{PolicyName: "baggage policy", ChunkText: "Gold members get two free checked bags.", Score: 0.8},
	}

	got := FormatPolicyContext(results)

	if !strings.HasPrefix(got, "Relevant SkyWay Airlines policies:\n\n") {
		t.Errorf("missing banner, got %q", got)
	}
	want := "From Baggage Policy Policy:\nGold members get two free checked bags.\n\n"
	if !strings.Contains(got, want) {
		t.Errorf("output %q missing section %q", got, want)
	}
}

func TestFormatPolicyContext_PreservesRankOrder(t *testing.T) {
	results := []models.RetrievalResult{
		{PolicyName: "cancellation policy", ChunkText: "refund terms", Score: 0.9},
		{PolicyName: "baggage policy", ChunkText: "bag rules", Score: 0.4},
	}

	got := FormatPolicyContext(results)

	first := strings.Index(got, "From Cancellation Policy Policy:")
	second := strings.Index(got, "From Baggage Policy Policy:")
	if first == -1 || second == -1 {
		t.Fatalf("missing headers in %q", got)
	}
	if first > second {
		t.Error("results rendered out of rank order")
	}
}

func TestFormatPolicyContext_Deterministic(t *testing.T) {
	results := []models.RetrievalResult{
		{PolicyName: "loyalty program", ChunkText: "miles expire after 24 months", Score: 0.7},
		{PolicyName: "special assistance", ChunkText: "wheelchair assistance is free", Score: 0.6},
	}

	first := FormatPolicyContext(results)
	for i := 0; i < 3; i++ {
		if again := FormatPolicyContext(results); again != first {
			t.Fatal("formatter output varies across calls")
		}
	}
}

func TestFormatCustomerContext(t *testing.T) {
	c := &models.Customer{
		CustomerID:  "C001",
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		LoyaltyTier: "Gold",
		Flight: &models.Flight{
			FlightID: "FL001", Origin: "NYC", Destination: "LAX",
			Departure: "2025-03-04 10:00", Status: "On Time",
		},
	}

	got := formatCustomerContext(c)

	for _, want := range []string{
		"- Name: Jane Doe",
		"- Loyalty Tier: Gold",
		"- Flight: FL001 (NYC to LAX)",
		"- Status: On Time",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q", want)
		}
	}
}

func TestFormatCustomerContext_NoFlight(t *testing.T) {
	c := &models.Customer{Name: "Sam Lee", Email: "sam@example.com", LoyaltyTier: "Silver"}

	got := formatCustomerContext(c)

	if strings.Contains(got, "- Flight:") {
		t.Errorf("context should omit flight lines, got %q", got)
	}
	if !strings.Contains(got, "- Loyalty Tier: Silver") {
		t.Errorf("context missing loyalty tier, got %q", got)
	}
}
