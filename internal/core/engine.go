// ABOUTME: Conversation engine: assembles prompts, calls the model, handles escalation
// ABOUTME: Two states per request, Responding then optionally Escalating
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/skyway/concierge/internal/models"
)

// EscalationMarker is the literal token the model emits when a
// conversation must be handed to a human agent. Case-sensitive
// substring match anywhere in the output.
const EscalationMarker = "ESCALATE"

// apologyResponse is returned whenever the model call itself fails.
const apologyResponse = "I'm having trouble processing your request. Please try again later."

const systemPrompt = `You are an airline customer service chatbot for SkyWay Airlines. Your role is to assist customers with
flight inquiries, booking issues, and general travel questions.

Be helpful, concise, and friendly. If you cannot resolve an issue, prepare a
structured summary for a human agent by including "ESCALATE" in your response.

When answering questions about policies, use the specific policy information provided.
If no policy information is provided for a specific question, give a general answer
and suggest the customer check the official website for detailed information.

For flight status inquiries, provide the exact status and any relevant details like gate changes.
For loyalty program questions, explain benefits based on the customer's tier when available.`

// Completer is the external language-model collaborator.
type Completer interface {
	Complete(ctx context.Context, msgs []models.Message, maxTokens int, temperature float32) (string, error)
}

// PolicySearcher answers top-k policy retrieval queries.
type PolicySearcher interface {
	Search(ctx context.Context, query string, topN int) ([]models.RetrievalResult, error)
}

// CustomerLookup resolves optional customer context. Absence of a
// record is not an error.
type CustomerLookup interface {
	GetCustomer(id string) (*models.Customer, bool)
}

// EngineConfig tunes the conversation engine.
type EngineConfig struct {
	TopN              int
	HistoryWindow     int
	MaxResponseTokens int
	SummaryMaxTokens  int
	Temperature       float32
}

// DefaultEngineConfig returns the stock tuning.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TopN:              3,
		HistoryWindow:     5,
		MaxResponseTokens: 500,
		SummaryMaxTokens:  300,
		Temperature:       0.7,
	}
}

// Engine orchestrates a single chat turn. Stateless across requests;
// history is caller-supplied and never mutated.
type Engine struct {
	completer Completer
	searcher  PolicySearcher
	customers CustomerLookup
	cfg       EngineConfig
}

// NewEngine creates a conversation engine. customers may be nil when
// no personalization dataset is available.
func NewEngine(completer Completer, searcher PolicySearcher, customers CustomerLookup, cfg EngineConfig) *Engine {
	if cfg.TopN <= 0 {
		cfg.TopN = 3
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 5
	}
	return &Engine{
		completer: completer,
		searcher:  searcher,
		customers: customers,
		cfg:       cfg,
	}
}

// ProcessChat runs one conversation turn. Model-call failures degrade
// to a forced-escalation response; only a failed escalation-summary
// call propagates as an error.
func (e *Engine) ProcessChat(ctx context.Context, customerID, userMessage string, history []models.Message) (*models.ChatResult, error) {
	var customer *models.Customer
	if customerID != "" && e.customers != nil {
		customer, _ = e.customers.GetCustomer(customerID)
	}

	policyInfo := e.retrievePolicyContext(ctx, userMessage)

	msgs := e.assembleMessages(policyInfo, customer, history, userMessage)

	if e.completer == nil {
		return e.forcedEscalation(customerID, fmt.Errorf("language model unavailable: no API key configured")), nil
	}

	reply, err := e.completer.Complete(ctx, msgs, e.cfg.MaxResponseTokens, e.cfg.Temperature)
	if err != nil {
		log.Printf("Error: chat completion failed: %v", err)
		return e.forcedEscalation(customerID, err), nil
	}

	if !strings.Contains(reply, EscalationMarker) {
		return &models.ChatResult{Response: reply, NeedsEscalation: false}, nil
	}

	summary, err := e.generateEscalationSummary(ctx, customerID, userMessage, history)
	if err != nil {
		return nil, fmt.Errorf("generating escalation summary: %w", err)
	}

	return &models.ChatResult{
		Response:        strings.ReplaceAll(reply, EscalationMarker, ""),
		NeedsEscalation: true,
		Summary: &models.EscalationSummary{
			ID:         uuid.New().String(),
			CustomerID: customerID,
			RawText:    summary,
		},
	}, nil
}

// retrievePolicyContext searches the policy index with the raw user
// message and formats the results. Retrieval failures degrade to the
// no-policy sentinel rather than failing the turn.
func (e *Engine) retrievePolicyContext(ctx context.Context, userMessage string) string {
	if e.searcher == nil {
		return NoPolicyFound
	}
	results, err := e.searcher.Search(ctx, userMessage, e.cfg.TopN)
	if err != nil {
		log.Printf("Warning: policy retrieval failed: %v", err)
		results = nil
	}
	return FormatPolicyContext(results)
}

// assembleMessages builds the ordered message list: base instruction,
// policy context, customer context, bounded history window, current
// user message. Turns older than the window are silently dropped.
func (e *Engine) assembleMessages(policyInfo string, customer *models.Customer, history []models.Message, userMessage string) []models.Message {
	msgs := []models.Message{{Role: models.RoleSystem, Content: systemPrompt}}

	if policyInfo != "" {
		msgs = append(msgs, models.Message{
			Role:    models.RoleSystem,
			Content: "Reference the following policy information in your responses when relevant:\n\n" + policyInfo,
		})
	}

	if customer != nil {
		msgs = append(msgs, models.Message{Role: models.RoleSystem, Content: formatCustomerContext(customer)})
	}

	recent := history
	if len(recent) > e.cfg.HistoryWindow {
		recent = recent[len(recent)-e.cfg.HistoryWindow:]
	}
	for _, m := range recent {
		if m.Role != models.RoleUser && m.Role != models.RoleAssistant {
			continue
		}
		msgs = append(msgs, m)
	}

	return append(msgs, models.Message{Role: models.RoleUser, Content: userMessage})
}

// generateEscalationSummary issues the second model call that produces
// the structured handoff for a human agent.
func (e *Engine) generateEscalationSummary(ctx context.Context, customerID, userMessage string, history []models.Message) (string, error) {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("marshaling chat history: %w", err)
	}

	id := customerID
	if id == "" {
		id = "Unknown"
	}

	prompt := fmt.Sprintf(`Generate a structured summary for a human agent based on the following conversation:
%s
User's last message: %s

Format:
- Customer ID: %s
- Problem Summary:
- Attempted Solutions:
- Recommended Next Steps:`, historyJSON, userMessage, id)

	return e.completer.Complete(ctx, []models.Message{{Role: models.RoleUser, Content: prompt}}, e.cfg.SummaryMaxTokens, e.cfg.Temperature)
}

// forcedEscalation is the degraded response for a failed model call.
// The raw error text rides along in the summary for agent visibility.
func (e *Engine) forcedEscalation(customerID string, cause error) *models.ChatResult {
	return &models.ChatResult{
		Response:        apologyResponse,
		NeedsEscalation: true,
		Summary: &models.EscalationSummary{
			ID:         uuid.New().String(),
			CustomerID: customerID,
			RawText:    fmt.Sprintf("System error occurred: %v", cause),
		},
	}
}
