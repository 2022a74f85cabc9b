// ABOUTME: Centralized configuration for the concierge support backend
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Retrieval strategy identifiers
const (
	StrategyLexical   = "lexical"
	StrategyEmbedding = "embedding"
)

// Config holds all configuration for the support backend
type Config struct {
	// Corpus settings
	PolicyDir     string
	DataDir       string
	WatchPolicies bool

	// Retrieval settings
	Strategy          string
	TopN              int
	RelevanceFloor    float64
	LexicalChunkSize  int
	DenseChunkSize    int
	DenseChunkOverlap int
	VectorDimension   int

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Conversation settings
	HistoryWindow     int
	MaxResponseTokens int
	SummaryMaxTokens  int
	Temperature       float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		PolicyDir:     getEnv("CONCIERGE_POLICY_DIR", "policies"),
		DataDir:       getEnv("CONCIERGE_DATA_DIR", "data"),
		WatchPolicies: getEnvBool("CONCIERGE_WATCH_POLICIES", false),

		Strategy:          getEnv("CONCIERGE_STRATEGY", StrategyLexical),
		TopN:              getEnvInt("CONCIERGE_TOP_N", 3),
		RelevanceFloor:    getEnvFloat("CONCIERGE_RELEVANCE_FLOOR", 0.05),
		LexicalChunkSize:  getEnvInt("CONCIERGE_LEXICAL_CHUNK_SIZE", 200),
		DenseChunkSize:    getEnvInt("CONCIERGE_DENSE_CHUNK_SIZE", 500),
		DenseChunkOverlap: getEnvInt("CONCIERGE_DENSE_CHUNK_OVERLAP", 50),
		VectorDimension:   getEnvInt("VECTOR_DIMENSION", 1536),

		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("CONCIERGE_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("CONCIERGE_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 0),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),

		HistoryWindow:     getEnvInt("CONCIERGE_HISTORY_WINDOW", 5),
		MaxResponseTokens: getEnvInt("CONCIERGE_MAX_RESPONSE_TOKENS", 500),
		SummaryMaxTokens:  getEnvInt("CONCIERGE_SUMMARY_MAX_TOKENS", 300),
		Temperature:       getEnvFloat("CONCIERGE_TEMPERATURE", 0.7),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Strategy != StrategyLexical && c.Strategy != StrategyEmbedding {
		return fmt.Errorf("CONCIERGE_STRATEGY must be %q or %q, got %q", StrategyLexical, StrategyEmbedding, c.Strategy)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("CONCIERGE_TOP_N must be positive, got %d", c.TopN)
	}
	if c.RelevanceFloor < 0 || c.RelevanceFloor > 1 {
		return fmt.Errorf("CONCIERGE_RELEVANCE_FLOOR must be 0-1, got %f", c.RelevanceFloor)
	}
	if c.LexicalChunkSize <= 0 || c.DenseChunkSize <= 0 {
		return fmt.Errorf("chunk sizes must be positive, got %d and %d", c.LexicalChunkSize, c.DenseChunkSize)
	}
	if c.DenseChunkOverlap < 0 || c.DenseChunkOverlap >= c.DenseChunkSize {
		return fmt.Errorf("CONCIERGE_DENSE_CHUNK_OVERLAP must be between 0 and chunk size-1, got %d", c.DenseChunkOverlap)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("CONCIERGE_HISTORY_WINDOW must be positive, got %d", c.HistoryWindow)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("CONCIERGE_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
