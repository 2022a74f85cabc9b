// ABOUTME: Lexical similarity index: TF-IDF term vectors scored by cosine
// ABOUTME: One best chunk per policy document, relevance floor, stable ranking
package retrieval

import (
	"context"
	"log"
	"sort"

	"github.com/skyway/concierge/internal/chunker"
	"github.com/skyway/concierge/internal/models"
	"github.com/skyway/concierge/internal/policy"
)

// DefaultRelevanceFloor discards candidates scoring at or below it.
const DefaultRelevanceFloor = 0.05

// lexicalDoc holds one policy document's chunks and their term vectors.
type lexicalDoc struct {
	name    string
	chunks  []string
	vectors [][]float64
}

// LexicalIndex ranks chunks by cosine similarity of TF-IDF vectors.
// Query expansion is applied before lookup; the caller's original
// query string is never modified.
type LexicalIndex struct {
	chunkSize  int
	floor      float64
	vectorizer *tfidfVectorizer
	docs       []lexicalDoc
	chunkCount int
}

// NewLexicalIndex creates an unbuilt lexical index. chunkSize is the
// target chunk length in words; floor is the minimum relevance score.
func NewLexicalIndex(chunkSize int, floor float64) *LexicalIndex {
	return &LexicalIndex{chunkSize: chunkSize, floor: floor}
}

// Build chunks every document and fits the TF-IDF vocabulary over all
// chunks. Documents are processed in lexicographic name order so tie
// breaks in Search are deterministic.
func (idx *LexicalIndex) Build(ctx context.Context, docs map[string]models.PolicyDocument) error {
	vectorizer := newTFIDFVectorizer()

	var built []lexicalDoc
	var allChunks []string
	for _, name := range policy.SortedNames(docs) {
		chunks := chunker.SplitWords(docs[name].Content, idx.chunkSize, 0)
		if len(chunks) == 0 {
			continue
		}
		built = append(built, lexicalDoc{name: name, chunks: chunks})
		allChunks = append(allChunks, chunks...)
	}

	vectorizer.Fit(allChunks)

	count := 0
	for i := range built {
		built[i].vectors = make([][]float64, len(built[i].chunks))
		for j, chunk := range built[i].chunks {
			built[i].vectors[j] = vectorizer.Transform(chunk)
		}
		count += len(built[i].chunks)
	}

	idx.vectorizer = vectorizer
	idx.docs = built
	idx.chunkCount = count
	return nil
}

// Search returns at most topN results above the relevance floor, one
// chunk per source document, descending by score. Ties keep document
// name order.
func (idx *LexicalIndex) Search(ctx context.Context, query string, topN int) ([]models.RetrievalResult, error) {
	if idx.vectorizer == nil || len(idx.docs) == 0 {
		return nil, nil
	}
	if topN <= 0 {
		topN = 3
	}

	expanded := ExpandQuery(query)
	if expanded != query {
		log.Printf("Expanded query: %s", expanded)
	}
	queryVec := idx.vectorizer.Transform(expanded)

	var results []models.RetrievalResult
	for _, doc := range idx.docs {
		bestIdx, bestScore := 0, -1.0
		for j, vec := range doc.vectors {
			if score := dotProduct(queryVec, vec); score > bestScore {
				bestIdx, bestScore = j, score
			}
		}
		if bestScore > idx.floor {
			results = append(results, models.RetrievalResult{
				PolicyName: doc.name,
				ChunkText:  doc.chunks[bestIdx],
				Score:      bestScore,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

// Len reports the number of indexed chunks.
func (idx *LexicalIndex) Len() int { return idx.chunkCount }
