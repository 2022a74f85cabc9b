// ABOUTME: Splits policy text into bounded-size word-boundary chunks
// ABOUTME: Pure and deterministic so index builds are reproducible
package chunker

import "strings"

// SplitWords splits text into groups of approximately size words. The
// final chunk may be shorter. When overlap > 0, each chunk after the
// first repeats the last overlap words of the previous chunk. Splitting
// happens on whitespace-delimited word boundaries, never byte offsets.
func SplitWords(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		// Step must stay positive or chunking would never advance
		overlap = size - 1
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
