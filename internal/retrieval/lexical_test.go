// ABOUTME: Tests for the TF-IDF lexical similarity index
// ABOUTME: Covers result caps, one-chunk-per-document, relevance floor, and ranking
package retrieval

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/skyway/concierge/internal/models"
)

func buildLexical(t *testing.T, docs map[string]models.PolicyDocument, chunkSize int) *LexicalIndex {
	t.Helper()
	idx := NewLexicalIndex(chunkSize, DefaultRelevanceFloor)
	if err := idx.Build(context.Background(), docs); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return idx
}

func corpusFromPairs(pairs ...string) map[string]models.PolicyDocument {
	docs := make(map[string]models.PolicyDocument)
	for i := 0; i+1 < len(pairs); i += 2 {
		docs[pairs[i]] = models.PolicyDocument{Name: pairs[i], Content: pairs[i+1]}
	}
	return docs
}

func TestLexicalIndex_EmptyCorpus(t *testing.T) {
	idx := buildLexical(t, map[string]models.PolicyDocument{}, 200)

	results, err := idx.Search(context.Background(), "any query", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}

func TestLexicalIndex_BaggageExample(t *testing.T) {
	docs := corpusFromPairs("baggage policy", "Gold members get two free checked bags.")
	idx := buildLexical(t, docs, 200)

	results, err := idx.Search(context.Background(), "how many bags can gold members check", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].PolicyName != "baggage policy" {
		t.Errorf("PolicyName = %q, want %q", results[0].PolicyName, "baggage policy")
	}
	if results[0].Score <= 0.05 {
		t.Errorf("Score = %f, want > 0.05", results[0].Score)
	}
}

func TestLexicalIndex_TopNCap(t *testing.T) {
	docs := make(map[string]models.PolicyDocument)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("policy %d", i)
		docs[name] = models.PolicyDocument{
			Name:    name,
			Content: fmt.Sprintf("refund cancellation rules variant %d apply here", i),
		}
	}
	idx := buildLexical(t, docs, 200)

	results, err := idx.Search(context.Background(), "refund cancellation", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) > 3 {
		t.Errorf("got %d results, want at most 3", len(results))
	}
}

func TestLexicalIndex_OneChunkPerDocument(t *testing.T) {
	// One long document producing many chunks, all mentioning refunds
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString(fmt.Sprintf("refund clause number %d grants partial refund under condition %d. ", i, i))
	}
	docs := corpusFromPairs(
		"cancellation policy", sb.String(),
		"baggage policy", "carry-on luggage weight limits and checked baggage fees",
	)
	idx := buildLexical(t, docs, 20)

	if idx.Len() < 4 {
		t.Fatalf("expected multiple chunks, got %d", idx.Len())
	}

	results, err := idx.Search(context.Background(), "refund conditions", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	seen := make(map[string]int)
	for _, r := range results {
		seen[r.PolicyName]++
	}
	for name, n := range seen {
		if n > 1 {
			t.Errorf("document %q appears %d times, want at most 1", name, n)
		}
	}
}

func TestLexicalIndex_RelevanceFloor(t *testing.T) {
	docs := corpusFromPairs(
		"baggage policy", "checked bags carry-on luggage allowance",
		"weather policy", "storms fog delays runway deicing procedures",
	)
	idx := buildLexical(t, docs, 200)

	results, err := idx.Search(context.Background(), "checked baggage allowance", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, r := range results {
		if r.Score <= 0.05 {
			t.Errorf("result %q has score %f, floor is 0.05", r.PolicyName, r.Score)
		}
		if r.PolicyName == "weather policy" {
			t.Error("unrelated document passed the relevance floor")
		}
	}
}

func TestLexicalIndex_UnknownVocabularyScoresZero(t *testing.T) {
	docs := corpusFromPairs("baggage policy", "checked bags and carry-on rules")
	idx := buildLexical(t, docs, 200)

	results, err := idx.Search(context.Background(), "xylophone quasar nebula", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results for out-of-vocabulary query, want 0", len(results))
	}
}

func TestLexicalIndex_VerbatimSubstringRanksFirst(t *testing.T) {
	docs := corpusFromPairs(
		"cancellation policy", "Full refunds are available for cancellations made twenty-four hours before departure.",
		"baggage policy", "Passengers may bring one carry-on item aboard the aircraft cabin.",
		"loyalty program", "Platinum members earn double qualifying segments on international routes.",
	)
	idx := buildLexical(t, docs, 200)

	results, err := idx.Search(context.Background(), "cancellations made twenty-four hours before departure", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if results[0].PolicyName != "cancellation policy" {
		t.Errorf("top result = %q, want %q", results[0].PolicyName, "cancellation policy")
	}
}

func TestLexicalIndex_ResultsDescendingByScore(t *testing.T) {
	docs := corpusFromPairs(
		"a policy", "refund refund refund refund",
		"b policy", "refund and other general conditions text",
		"c policy", "mostly unrelated words with one refund mention in passing here",
	)
	idx := buildLexical(t, docs, 200)

	results, err := idx.Search(context.Background(), "refund", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not descending: %f before %f", results[i-1].Score, results[i].Score)
		}
	}
}

func TestLexicalIndex_ExpansionImprovesRecall(t *testing.T) {
	// "points" never appears in the document; the loyalty expansion
	// bridges the vocabulary gap through "miles"
	docs := corpusFromPairs(
		"loyalty program", "miles expire after 24 months of inactivity loyalty program",
		"baggage policy", "carry-on weight limits for cabin items",
	)
	idx := buildLexical(t, docs, 200)

	results, err := idx.Search(context.Background(), "do my points expire", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected expansion to recall the loyalty document")
	}
	if results[0].PolicyName != "loyalty program" {
		t.Errorf("top result = %q, want %q", results[0].PolicyName, "loyalty program")
	}
}
