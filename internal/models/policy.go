// ABOUTME: Policy corpus and retrieval result types
// ABOUTME: Results name their source document for attribution
package models

// PolicyDocument is one policy text loaded from the corpus directory.
// Name is the display name derived from the filename.
type PolicyDocument struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// RetrievalResult is one ranked chunk returned by a policy search.
type RetrievalResult struct {
	PolicyName string  `json:"policy_name"`
	ChunkText  string  `json:"chunk_text"`
	Score      float64 `json:"score"`
}
