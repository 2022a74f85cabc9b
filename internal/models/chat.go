// ABOUTME: Conversation result types returned by the engine
// ABOUTME: Escalation summaries carry the handoff text for human agents
package models

// EscalationSummary is the structured handoff generated when a
// conversation is flagged for a human agent.
type EscalationSummary struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	RawText    string `json:"summary"`
}

// ChatResult is the outcome of one conversation turn.
type ChatResult struct {
	Response        string             `json:"response"`
	NeedsEscalation bool               `json:"needs_escalation"`
	Summary         *EscalationSummary `json:"structured_summary,omitempty"`
}
