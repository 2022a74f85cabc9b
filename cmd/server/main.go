// ABOUTME: Main entry point for the concierge MCP server with stdio transport
// ABOUTME: Initializes retrieval, customer data, and MCP server with all tools
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/skyway/concierge/internal/config"
	"github.com/skyway/concierge/internal/core"
	"github.com/skyway/concierge/internal/customers"
	"github.com/skyway/concierge/internal/llm"
	"github.com/skyway/concierge/internal/mcp"
	"github.com/skyway/concierge/internal/retrieval"
	"github.com/skyway/concierge/internal/watcher"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// OpenAI client is optional; without it chat responses escalate
	// to a human agent and only the lexical strategy works
	var client *llm.Client
	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - chat responses will escalate to a human agent")
	} else {
		client, err = llm.NewClient(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
		})
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI client: %v", err)
		}
	}

	var embedder retrieval.Embedder
	if client != nil {
		embedder = client
	}
	retriever, err := retrieval.NewRetrieverFromConfig(cfg, embedder)
	if err != nil {
		log.Fatalf("Failed to initialize retriever: %v", err)
	}

	ctx := context.Background()
	if err := retriever.Rebuild(ctx); err != nil {
		log.Fatalf("Failed to build policy index: %v", err)
	}
	log.Printf("Indexed %d policies (%d chunks, %s strategy)",
		len(retriever.PolicyNames()), retriever.ChunkCount(), cfg.Strategy)

	directory, err := customers.Load(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to load customer data: %v", err)
	}

	var completer core.Completer
	if client != nil {
		completer = client
	}
	engine := core.NewEngine(completer, retriever, directory, core.EngineConfig{
		TopN:              cfg.TopN,
		HistoryWindow:     cfg.HistoryWindow,
		MaxResponseTokens: cfg.MaxResponseTokens,
		SummaryMaxTokens:  cfg.SummaryMaxTokens,
		Temperature:       float32(cfg.Temperature),
	})

	// Optionally watch the policy directory for changes
	if cfg.WatchPolicies {
		w, err := watcher.New(cfg.PolicyDir, retriever, watcher.DefaultDebounce)
		if err != nil {
			log.Fatalf("Failed to initialize policy watcher: %v", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Printf("Warning: policy watcher stopped: %v", err)
			}
		}()
	}

	server := mcpserver.NewMCPServer(
		"SkyWay Concierge",
		"0.1.0",
	)

	mcp.RegisterTools(server, engine, retriever, directory)

	log.Println("Concierge MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
