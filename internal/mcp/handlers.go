// ABOUTME: MCP tool handler implementations for the concierge server
// ABOUTME: Contains handler implementations with proper error handling for all 5 tools
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/skyway/concierge/internal/core"
	"github.com/skyway/concierge/internal/customers"
	"github.com/skyway/concierge/internal/models"
	"github.com/skyway/concierge/internal/retrieval"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine    *core.Engine
	retriever *retrieval.Retriever
	customers *customers.Directory
}

// SupportChat handles the support_chat tool
func (h *Handlers) SupportChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	customerID := request.GetString("customer_id", "")
	history := extractHistory(request)

	result, err := h.engine.ProcessChat(ctx, customerID, message, history)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chat processing failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchPolicies handles the search_policies tool
func (h *Handlers) SearchPolicies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	topN := request.GetInt("top_n", 3)

	results, err := h.retriever.Search(ctx, query, topN)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("policy search failed: %v", err)), nil
	}
	if results == nil {
		results = []models.RetrievalResult{}
	}

	response := map[string]interface{}{
		"query":   query,
		"results": results,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListPolicies handles the list_policies tool
func (h *Handlers) ListPolicies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := h.retriever.PolicyNames()
	if names == nil {
		names = []string{}
	}

	response := map[string]interface{}{
		"policies":    names,
		"chunk_count": h.retriever.ChunkCount(),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetCustomer handles the get_customer tool
func (h *Handlers) GetCustomer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	customerID, err := request.RequireString("customer_id")
	if err != nil {
		return mcp.NewToolResultError("customer_id argument is required and must be a string"), nil
	}

	if h.customers == nil {
		return mcp.NewToolResultError("no customer data loaded"), nil
	}

	customer, ok := h.customers.GetCustomer(customerID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("customer not found: %s", customerID)), nil
	}

	responseJSON, err := json.Marshal(customer)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// RebuildIndex handles the rebuild_index tool
func (h *Handlers) RebuildIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.retriever.Rebuild(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("index rebuild failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"success":     true,
		"policies":    h.retriever.PolicyNames(),
		"chunk_count": h.retriever.ChunkCount(),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// extractHistory parses the optional history argument into messages.
// Malformed entries are skipped.
func extractHistory(request mcp.CallToolRequest) []models.Message {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	raw, exists := args["history"]
	if !exists {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	history := make([]models.Message, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		role, _ := entry["role"].(string)
		content, _ := entry["content"].(string)
		if role == "" || content == "" {
			continue
		}
		history = append(history, models.Message{Role: models.Role(role), Content: content})
	}
	return history
}
