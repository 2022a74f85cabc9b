// ABOUTME: TF-IDF vectorizer with english stopword removal and smoothed IDF
// ABOUTME: Vectors are L2-normalized so cosine similarity reduces to a dot product
package retrieval

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// tfidfVectorizer builds a term-weighting vocabulary over a corpus.
// Terms outside the fitted vocabulary get zero weight, so a query
// sharing no vocabulary with any chunk scores 0 everywhere.
type tfidfVectorizer struct {
	vocabulary map[string]int
	idf        []float64
	stopwords  map[string]struct{}
}

func newTFIDFVectorizer() *tfidfVectorizer {
	return &tfidfVectorizer{
		vocabulary: make(map[string]int),
		stopwords:  englishStopwords(),
	}
}

// Fit builds the vocabulary and IDF values from the corpus. An empty
// corpus yields an empty vocabulary, which is valid: every Transform
// then produces an all-zero vector.
func (v *tfidfVectorizer) Fit(corpus []string) {
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF keeps weights finite for terms in every document
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
}

// Transform computes the L2-normalized TF-IDF vector for text. Terms
// unseen during Fit are ignored.
func (v *tfidfVectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.idf))
	tf := make(map[int]int)
	total := 0
	for _, tok := range v.tokenize(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}

	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * v.idf[idx]
	}

	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func (v *tfidfVectorizer) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := v.stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// dotProduct of two equal-length vectors. Both sides come out of
// Transform, so cosine similarity is just this.
func dotProduct(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func englishStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again",
		"further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"should", "now", "do", "does", "did", "have", "has", "had",
		"i", "you", "he", "she", "we", "they", "my", "your", "their",
		"what", "which", "who", "whom", "how", "when", "where", "why",
		"not", "no", "nor", "only", "some", "any", "both", "each", "all",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
