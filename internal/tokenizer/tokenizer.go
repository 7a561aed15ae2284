// Package tokenizer provides a deterministic token-count estimate for
// chunk budgeting. No network tokenizer is involved; the estimate uses the
// common 4-characters-per-token heuristic, floored at one token per word.
package tokenizer

import "strings"

// charsPerToken is the rough character-to-token ratio for English text.
const charsPerToken = 4

// Estimate returns an approximate token count for text.
// Whitespace-only input estimates to zero. Any non-empty word contributes
// at least one token, so short-word text is not undercounted.
func Estimate(text string) int {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	chars := 0
	for _, w := range words {
		chars += len(w)
	}

	est := chars / charsPerToken
	if est < len(words) {
		est = len(words)
	}
	return est
}
