// ABOUTME: Retriever owns the active index and rebuilds it as an exclusive operation
// ABOUTME: Searches share a read lock; a rebuild swaps in a freshly built index
package retrieval

import (
	"context"
	"fmt"
	"sync"

	"github.com/skyway/concierge/internal/config"
	"github.com/skyway/concierge/internal/models"
	"github.com/skyway/concierge/internal/policy"
)

// Retriever loads the policy corpus, builds a similarity index over
// it, and serves concurrent read-only searches. Rebuild constructs a
// new index outside the lock and swaps it in, so the served index is
// always read-only after construction.
type Retriever struct {
	policyDir string
	newIndex  func() Index

	// rebuildMu serializes rebuilds; mu guards the served index
	rebuildMu sync.Mutex

	mu    sync.RWMutex
	index Index
	names []string
}

// NewRetriever creates a retriever for policyDir. newIndex constructs
// a fresh, unbuilt index for each rebuild.
func NewRetriever(policyDir string, newIndex func() Index) *Retriever {
	return &Retriever{policyDir: policyDir, newIndex: newIndex}
}

// NewRetrieverFromConfig selects the index strategy from config.
// embedder may be nil for the lexical strategy.
func NewRetrieverFromConfig(cfg *config.Config, embedder Embedder) (*Retriever, error) {
	switch cfg.Strategy {
	case config.StrategyLexical:
		return NewRetriever(cfg.PolicyDir, func() Index {
			return NewLexicalIndex(cfg.LexicalChunkSize, cfg.RelevanceFloor)
		}), nil
	case config.StrategyEmbedding:
		if embedder == nil {
			return nil, fmt.Errorf("embedding strategy requires an embedding client")
		}
		return NewRetriever(cfg.PolicyDir, func() Index {
			return NewEmbeddingIndex(embedder, cfg.VectorDimension, cfg.DenseChunkSize, cfg.DenseChunkOverlap)
		}), nil
	default:
		return nil, fmt.Errorf("unknown retrieval strategy %q", cfg.Strategy)
	}
}

// Rebuild loads the corpus and builds a fresh index. Concurrent
// searches keep using the previous index until the swap.
func (r *Retriever) Rebuild(ctx context.Context) error {
	r.rebuildMu.Lock()
	defer r.rebuildMu.Unlock()

	docs, err := policy.Load(r.policyDir)
	if err != nil {
		return fmt.Errorf("loading policies: %w", err)
	}

	index := r.newIndex()
	if err := index.Build(ctx, docs); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	r.mu.Lock()
	r.index = index
	r.names = policy.SortedNames(docs)
	r.mu.Unlock()
	return nil
}

// Search runs a query against the active index. Before the first
// Rebuild there is no index and the result is empty, matching the
// "no policies available" state.
func (r *Retriever) Search(ctx context.Context, query string, topN int) ([]models.RetrievalResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.index == nil {
		return nil, nil
	}
	return r.index.Search(ctx, query, topN)
}

// PolicyNames returns the loaded document names in lexicographic order.
func (r *Retriever) PolicyNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// ChunkCount reports how many chunks the active index holds.
func (r *Retriever) ChunkCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.index == nil {
		return 0
	}
	return r.index.Len()
}
