// ABOUTME: Shared utility functions and backend wiring for CLI commands
// ABOUTME: Consolidates config loading, index setup, and display helpers
package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/skyway/concierge/internal/config"
	"github.com/skyway/concierge/internal/core"
	"github.com/skyway/concierge/internal/customers"
	"github.com/skyway/concierge/internal/llm"
	"github.com/skyway/concierge/internal/retrieval"
)

// backend bundles the wired support components for one command run.
type backend struct {
	cfg       *config.Config
	client    *llm.Client
	retriever *retrieval.Retriever
	directory *customers.Directory
	engine    *core.Engine
}

// initBackend loads configuration and wires retrieval, customer data,
// and the conversation engine. The OpenAI client is optional; without
// an API key the engine degrades to forced escalation and only the
// lexical strategy is available.
func initBackend(ctx context.Context) (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	var client *llm.Client
	if cfg.OpenAIKey != "" {
		client, err = llm.NewClient(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
	} else if !quiet {
		log.Println("Warning: OPENAI_API_KEY not set - chat responses will escalate to a human agent")
	}

	var embedder retrieval.Embedder
	if client != nil {
		embedder = client
	}
	retriever, err := retrieval.NewRetrieverFromConfig(cfg, embedder)
	if err != nil {
		return nil, err
	}
	if err := retriever.Rebuild(ctx); err != nil {
		return nil, fmt.Errorf("building policy index: %w", err)
	}
	if verbose {
		log.Printf("Indexed %d policies (%d chunks, %s strategy)",
			len(retriever.PolicyNames()), retriever.ChunkCount(), cfg.Strategy)
	}

	directory, err := customers.Load(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("loading customer data: %w", err)
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

	return &backend{
		cfg:       cfg,
		client:    client,
		retriever: retriever,
		directory: directory,
		engine:    engine,
	}, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
