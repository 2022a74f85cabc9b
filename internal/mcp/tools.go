// ABOUTME: MCP tool definitions and registration for the concierge server
// ABOUTME: Defines JSON schemas for all 5 support tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/skyway/concierge/internal/core"
	"github.com/skyway/concierge/internal/customers"
	"github.com/skyway/concierge/internal/retrieval"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *core.Engine, retriever *retrieval.Retriever, directory *customers.Directory) *Handlers {
	handlers := &Handlers{
		engine:    engine,
		retriever: retriever,
		customers: directory,
	}

	// 1. support_chat - Run one customer support conversation turn
	server.AddTool(mcp.Tool{
		Name:        "support_chat",
		Description: "Run one turn of a SkyWay Airlines support conversation. Retrieves relevant policies, personalizes with customer data, and flags conversations that need a human agent.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "The customer's message",
				},
				"customer_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional customer ID for personalized responses (e.g., 'C001')",
				},
				"history": map[string]interface{}{
					"type":        "array",
					"description": "Prior conversation turns, oldest first",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"role":    map[string]interface{}{"type": "string"},
							"content": map[string]interface{}{"type": "string"},
						},
					},
				},
			},
			Required: []string{"message"},
		},
	}, handlers.SupportChat)

	// 2. search_policies - Query the policy index directly
	server.AddTool(mcp.Tool{
		Name:        "search_policies",
		Description: "Search airline policy documents and return the most relevant chunks with scores.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query for policy retrieval",
				},
				"top_n": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchPolicies)

	// 3. list_policies - List indexed policy documents
	server.AddTool(mcp.Tool{
		Name:        "list_policies",
		Description: "List the names of all indexed policy documents.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListPolicies)

	// 4. get_customer - Look up a customer record
	server.AddTool(mcp.Tool{
		Name:        "get_customer",
		Description: "Look up a customer record with joined flight information.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"customer_id": map[string]interface{}{
					"type":        "string",
					"description": "Customer ID to look up (e.g., 'C001')",
				},
			},
			Required: []string{"customer_id"},
		},
	}, handlers.GetCustomer)

	// 5. rebuild_index - Re-read policies and rebuild the index
	server.AddTool(mcp.Tool{
		Name:        "rebuild_index",
		Description: "Re-read the policy directory and rebuild the retrieval index.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.RebuildIndex)

	return handlers
}
