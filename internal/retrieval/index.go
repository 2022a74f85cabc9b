// ABOUTME: Index is the common contract both retrieval strategies implement
// ABOUTME: The conversation engine stays agnostic to which strategy is active
package retrieval

import (
	"context"

	"github.com/skyway/concierge/internal/models"
)

// Index answers "top-k most relevant chunks for query Q" over a corpus
// it was built from. Implementations are read-only after Build; a
// corpus change means building a fresh index, not mutating in place.
type Index interface {
	// Build derives chunks and vectors from the corpus. Every chunk
	// present at build time gets exactly one vector.
	Build(ctx context.Context, docs map[string]models.PolicyDocument) error

	// Search returns ranked results, descending by score, truncated to
	// topN. Never errors on an empty corpus.
	Search(ctx context.Context, query string, topN int) ([]models.RetrievalResult, error)

	// Len reports the number of indexed chunks.
	Len() int
}
