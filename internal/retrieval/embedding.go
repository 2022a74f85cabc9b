// ABOUTME: Dense embedding index: flat nearest-neighbor over fixed-dimension vectors
// ABOUTME: Degrades to zero vectors when the embedding service fails, never aborts
package retrieval

import (
	"context"
	"log"
	"sort"

	"github.com/skyway/concierge/internal/chunker"
	"github.com/skyway/concierge/internal/models"
	"github.com/skyway/concierge/internal/policy"
)

// Embedder is the external embedding service collaborator.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// denseEntry is one indexed chunk with its embedding vector.
type denseEntry struct {
	doc    string
	text   string
	vector []float64
}

// EmbeddingIndex does brute-force squared-Euclidean nearest-neighbor
// search over a flat vector list. No approximate structure, no
// pruning; the corpus is tens of chunks. Unlike the lexical strategy
// it applies no relevance floor: it always returns topN chunks even
// when none are semantically close.
type EmbeddingIndex struct {
	embedder  Embedder
	dimension int
	chunkSize int
	overlap   int
	entries   []denseEntry
}

// NewEmbeddingIndex creates an unbuilt dense index.
func NewEmbeddingIndex(embedder Embedder, dimension, chunkSize, overlap int) *EmbeddingIndex {
	return &EmbeddingIndex{
		embedder:  embedder,
		dimension: dimension,
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Build chunks the corpus and embeds all chunks in a single batched
// call. If the call fails, every chunk gets an all-zero vector so the
// index is always complete, if degraded.
func (idx *EmbeddingIndex) Build(ctx context.Context, docs map[string]models.PolicyDocument) error {
	var entries []denseEntry
	var texts []string
	for _, name := range policy.SortedNames(docs) {
		for _, chunk := range chunker.SplitWords(docs[name].Content, idx.chunkSize, idx.overlap) {
			entries = append(entries, denseEntry{doc: name, text: chunk})
			texts = append(texts, chunk)
		}
	}

	if len(entries) == 0 {
		idx.entries = nil
		return nil
	}

	vectors, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil || len(vectors) != len(entries) {
		if err != nil {
			log.Printf("Warning: embedding batch failed, indexing zero vectors: %v", err)
		} else {
			log.Printf("Warning: embedding batch returned %d vectors for %d chunks, indexing zero vectors", len(vectors), len(entries))
		}
		for i := range entries {
			entries[i].vector = make([]float64, idx.dimension)
		}
		idx.entries = entries
		return nil
	}

	for i := range entries {
		if len(vectors[i]) != idx.dimension {
			entries[i].vector = make([]float64, idx.dimension)
			continue
		}
		entries[i].vector = vectors[i]
	}
	idx.entries = entries
	return nil
}

// Search embeds the query (one call, uncached) and returns exactly
// topN nearest chunks by squared Euclidean distance. A failed query
// embedding degrades to an empty result.
func (idx *EmbeddingIndex) Search(ctx context.Context, query string, topN int) ([]models.RetrievalResult, error) {
	if len(idx.entries) == 0 {
		return nil, nil
	}
	if topN <= 0 {
		topN = 3
	}

	vectors, err := idx.embedder.EmbedBatch(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		log.Printf("Warning: query embedding failed, returning no results: %v", err)
		return nil, nil
	}
	queryVec := vectors[0]
	if len(queryVec) != idx.dimension {
		log.Printf("Warning: query embedding has dimension %d, want %d", len(queryVec), idx.dimension)
		return nil, nil
	}

	type scored struct {
		entry    denseEntry
		distance float64
	}
	candidates := make([]scored, len(idx.entries))
	for i, entry := range idx.entries {
		candidates[i] = scored{entry: entry, distance: squaredDistance(queryVec, entry.vector)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if topN > len(candidates) {
		topN = len(candidates)
	}
	results := make([]models.RetrievalResult, topN)
	for i := 0; i < topN; i++ {
		results[i] = models.RetrievalResult{
			PolicyName: candidates[i].entry.doc,
			ChunkText:  candidates[i].entry.text,
			// Monotone transform keeps results descending by score
			Score: 1.0 / (1.0 + candidates[i].distance),
		}
	}
	return results, nil
}

// Len reports the number of indexed chunks.
func (idx *EmbeddingIndex) Len() int { return len(idx.entries) }

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
