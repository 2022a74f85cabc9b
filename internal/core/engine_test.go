// ABOUTME: Tests for the conversation engine
// ABOUTME: Covers escalation detection, history windowing, and degraded model paths
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/skyway/concierge/internal/models"
)

// stubCompleter records every call and replays canned responses in order.
type stubCompleter struct {
	responses []string
	errs      []error
	calls     [][]models.Message
	maxTokens []int
}

func (s *stubCompleter) Complete(_ context.Context, msgs []models.Message, maxTokens int, _ float32) (string, error) {
	i := len(s.calls)
	s.calls = append(s.calls, msgs)
	s.maxTokens = append(s.maxTokens, maxTokens)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	resp := ""
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

type stubSearcher struct {
	results []models.RetrievalResult
	err     error
	queries []string
}

func (s *stubSearcher) Search(_ context.Context, query string, _ int) ([]models.RetrievalResult, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

type stubCustomers struct {
	customers map[string]*models.Customer
}

func (s *stubCustomers) GetCustomer(id string) (*models.Customer, bool) {
	c, ok := s.customers[id]
	return c, ok
}

func newTestEngine(c Completer, s PolicySearcher, cust CustomerLookup) *Engine {
	return NewEngine(c, s, cust, DefaultEngineConfig())
}

func TestProcessChat_NormalResponse(t *testing.T) {
	completer := &stubCompleter{responses: []string{"Your flight FL001 is on time."}}
	engine := newTestEngine(completer, &stubSearcher{}, nil)

	result, err := engine.ProcessChat(context.Background(), "", "flight status?", nil)
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if result.NeedsEscalation {
		t.Error("NeedsEscalation = true for a plain response")
	}
	if result.Response != "Your flight FL001 is on time." {
		t.Errorf("Response = %q", result.Response)
	}
	if result.Summary != nil {
		t.Error("Summary should be nil without escalation")
	}
	if len(completer.calls) != 1 {
		t.Errorf("model called %d times, want 1", len(completer.calls))
	}
}

func TestProcessChat_EscalationMarkerStripped(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		"I cannot resolve this. ESCALATE Let me connect you to an agent.",
		"- Customer ID: C001\n- Problem Summary: refund dispute",
	}}
	engine := newTestEngine(completer, &stubSearcher{}, nil)

	result, err := engine.ProcessChat(context.Background(), "C001", "I demand a refund now", nil)
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if !result.NeedsEscalation {
		t.Error("NeedsEscalation = false, want true")
	}
	if strings.Contains(result.Response, EscalationMarker) {
		t.Errorf("marker not stripped from %q", result.Response)
	}
	if result.Response != "I cannot resolve this.  Let me connect you to an agent." {
		t.Errorf("Response = %q", result.Response)
	}
	if result.Summary == nil {
		t.Fatal("Summary is nil on escalation")
	}
	if result.Summary.CustomerID != "C001" {
		t.Errorf("Summary.CustomerID = %q", result.Summary.CustomerID)
	}
	if result.Summary.ID == "" {
		t.Error("Summary.ID is empty")
	}
	if len(completer.calls) != 2 {
		t.Fatalf("model called %d times, want 2 (reply + summary)", len(completer.calls))
	}
}

func TestProcessChat_SummaryCallTokenLimits(t *testing.T) {
	completer := &stubCompleter{responses: []string{"ESCALATE", "summary text"}}
	engine := newTestEngine(completer, &stubSearcher{}, nil)

	if _, err := engine.ProcessChat(context.Background(), "C002", "help", nil); err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if got := completer.maxTokens[0]; got != 500 {
		t.Errorf("reply maxTokens = %d, want 500", got)
	}
	if got := completer.maxTokens[1]; got != 300 {
		t.Errorf("summary maxTokens = %d, want 300", got)
	}
}

func TestProcessChat_HistoryWindow(t *testing.T) {
	completer := &stubCompleter{responses: []string{"ok"}}
	engine := newTestEngine(completer, &stubSearcher{}, nil)

	var history []models.Message
	for i := 0; i < 7; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		history = append(history, models.Message{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}

	if _, err := engine.ProcessChat(context.Background(), "", "latest question", history); err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}

	msgs := completer.calls[0]
	var forwarded []string
	for _, m := range msgs {
		if strings.HasPrefix(m.Content, "turn ") {
			forwarded = append(forwarded, m.Content)
		}
	}
	if len(forwarded) != 5 {
		t.Fatalf("forwarded %d history turns, want 5: %v", len(forwarded), forwarded)
	}
	if forwarded[0] != "turn 2" || forwarded[4] != "turn 6" {
		t.Errorf("wrong window: %v", forwarded)
	}
	if msgs[len(msgs)-1].Content != "latest question" {
		t.Errorf("last message = %q, want current user message", msgs[len(msgs)-1].Content)
	}
}

func TestProcessChat_HistoryFiltersSystemTurns(t *testing.T) {
	completer := &stubCompleter{responses: []string{"ok"}}
	engine := newTestEngine(completer, &stubSearcher{}, nil)

	history := []models.Message{
		{Role: models.RoleSystem, Content: "injected instruction"},
		{Role: models.RoleUser, Content: "kept"},
	}

	if _, err := engine.ProcessChat(context.Background(), "", "q", history); err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	for _, m := range completer.calls[0] {
		if m.Content == "injected instruction" {
			t.Error("system turn from history forwarded to the model")
		}
	}
}

func TestProcessChat_ModelFailureForcesEscalation(t *testing.T) {
	completer := &stubCompleter{errs: []error{errors.New("rate limited")}}
	engine := newTestEngine(completer, &stubSearcher{}, nil)

	result, err := engine.ProcessChat(context.Background(), "C003", "hello", nil)
	if err != nil {
		t.Fatalf("ProcessChat() error = %v, want degraded result", err)
	}
	if !result.NeedsEscalation {
		t.Error("NeedsEscalation = false after model failure")
	}
	if result.Response != "I'm having trouble processing your request. Please try again later." {
		t.Errorf("Response = %q", result.Response)
	}
	if result.Summary == nil {
		t.Fatal("Summary is nil after model failure")
	}
	if !strings.Contains(result.Summary.RawText, "System error occurred: rate limited") {
		t.Errorf("Summary.RawText = %q", result.Summary.RawText)
	}
	if len(completer.calls) != 1 {
		t.Errorf("model called %d times, want 1 (no summary call after failure)", len(completer.calls))
	}
}

func TestProcessChat_NilCompleterForcesEscalation(t *testing.T) {
	engine := newTestEngine(nil, &stubSearcher{}, nil)

	result, err := engine.ProcessChat(context.Background(), "", "hi", nil)
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if !result.NeedsEscalation {
		t.Error("NeedsEscalation = false without a model")
	}
	if !strings.Contains(result.Summary.RawText, "no API key configured") {
		t.Errorf("Summary.RawText = %q", result.Summary.RawText)
	}
}

func TestProcessChat_SummaryFailurePropagates(t *testing.T) {
	completer := &stubCompleter{
		responses: []string{"ESCALATE", ""},
		errs:      []error{nil, errors.New("timeout")},
	}
	engine := newTestEngine(completer, &stubSearcher{}, nil)

	result, err := engine.ProcessChat(context.Background(), "C001", "help", nil)
	if err == nil {
		t.Fatal("ProcessChat() error = nil, want summary failure")
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on summary failure", result)
	}
	if !strings.Contains(err.Error(), "escalation summary") {
		t.Errorf("error = %v", err)
	}
}

func TestProcessChat_PolicyContextInPrompt(t *testing.T) {
	completer := &stubCompleter{responses: []string{"ok"}}
	searcher := &stubSearcher{results: []models.RetrievalResult{
		{PolicyName: "baggage policy", ChunkText: "two free bags for Gold", Score: 0.8},
	}}
	engine := newTestEngine(completer, searcher, nil)

	if _, err := engine.ProcessChat(context.Background(), "", "baggage allowance?", nil); err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if len(searcher.queries) != 1 || searcher.queries[0] != "baggage allowance?" {
		t.Errorf("searcher queries = %v", searcher.queries)
	}

	var found bool
	for _, m := range completer.calls[0] {
		if m.Role == models.RoleSystem && strings.Contains(m.Content, "From Baggage Policy Policy:") {
			found = true
		}
	}
	if !found {
		t.Error("policy context missing from assembled prompt")
	}
}

func TestProcessChat_RetrievalFailureDegradesToSentinel(t *testing.T) {
	completer := &stubCompleter{responses: []string{"ok"}}
	searcher := &stubSearcher{err: errors.New("index offline")}
	engine := newTestEngine(completer, searcher, nil)

	if _, err := engine.ProcessChat(context.Background(), "", "q", nil); err != nil {
		t.Fatalf("ProcessChat() error = %v, retrieval failure must not fail the turn", err)
	}

	var found bool
	for _, m := range completer.calls[0] {
		if strings.Contains(m.Content, NoPolicyFound) {
			found = true
		}
	}
	if !found {
		t.Error("sentinel missing from prompt after retrieval failure")
	}
}

func TestProcessChat_CustomerContextIncluded(t *testing.T) {
	completer := &stubCompleter{responses: []string{"ok"}}
	customers := &stubCustomers{customers: map[string]*models.Customer{
		"C001": {CustomerID: "C001", Name: "Jane Doe", Email: "jane@example.com", LoyaltyTier: "Gold"},
	}}
	engine := newTestEngine(completer, &stubSearcher{}, customers)

	if _, err := engine.ProcessChat(context.Background(), "C001", "hi", nil); err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}

	var found bool
	for _, m := range completer.calls[0] {
		if strings.Contains(m.Content, "- Name: Jane Doe") {
			found = true
		}
	}
	if !found {
		t.Error("customer context missing from assembled prompt")
	}
}

func TestProcessChat_UnknownCustomerOmitted(t *testing.T) {
	completer := &stubCompleter{responses: []string{"ok"}}
	engine := newTestEngine(completer, &stubSearcher{}, &stubCustomers{})

	if _, err := engine.ProcessChat(context.Background(), "C999", "hi", nil); err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	for _, m := range completer.calls[0] {
		if strings.Contains(m.Content, "Customer Information:") {
			t.Error("customer context included for unknown customer")
		}
	}
}

func TestProcessChat_SummaryPromptContainsHistoryAndID(t *testing.T) {
	completer := &stubCompleter{responses: []string{"ESCALATE now", "summary"}}
	engine := newTestEngine(completer, &stubSearcher{}, nil)

	history := []models.Message{{Role: models.RoleUser, Content: "earlier complaint"}}
	if _, err := engine.ProcessChat(context.Background(), "", "final message", history); err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}

	summaryPrompt := completer.calls[1][0].Content
	for _, want := range []string{
		"earlier complaint",
		"User's last message: final message",
		"- Customer ID: Unknown",
		"- Recommended Next Steps:",
	} {
		if !strings.Contains(summaryPrompt, want) {
			t.Errorf("summary prompt missing %q", want)
		}
	}
}
