// Package chunker splits raw text into token-bounded segments for embedding.
package chunker

import (
	"strings"

	"github.com/startforge/blueprint/internal/tokenizer"
)

const (
	// DefaultMaxTokens is the token budget per chunk.
	DefaultMaxTokens = 1000

	// maxOverlapSentences caps the sentence carry-over between chunks.
	// Overlap is sentence-granular: when a chunk is flushed, its last up to
	// two sentences seed the next chunk. This is not strictly token-bounded.
	maxOverlapSentences = 2
)

// Chunker accumulates sentences into chunks bounded by a token estimate.
type Chunker struct {
	maxTokens int
	overlap   bool
}

// New creates a Chunker with the given token budget per chunk.
// overlapHint enables sentence carry-over between consecutive chunks;
// zero disables it. The carry-over is capped at two sentences regardless
// of the hint value.
func New(maxTokens, overlapHint int) *Chunker {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Chunker{
		maxTokens: maxTokens,
		overlap:   overlapHint > 0,
	}
}

// Chunk splits text into an ordered sequence of chunk strings.
// Newlines are normalized to spaces and the text is split into sentence
// units on ". " boundaries. Sentences accumulate greedily under the token
// budget; a single sentence over budget is packed word-by-word into
// sub-chunks with no overlap. Empty or whitespace input yields nil;
// any other input yields at least one chunk.
func (c *Chunker) Chunk(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentTokens := 0

	for _, sentence := range sentences {
		sentenceTokens := tokenizer.Estimate(sentence)

		// A sentence that alone exceeds the budget is split by words.
		if sentenceTokens > c.maxTokens {
			if len(current) > 0 {
				chunks = append(chunks, joinSentences(current))
				current = nil
				currentTokens = 0
			}
			chunks = append(chunks, c.packWords(sentence)...)
			continue
		}

		if currentTokens+sentenceTokens > c.maxTokens {
			chunks = append(chunks, joinSentences(current))
			current = c.carryOver(current)
			currentTokens = 0
			for _, s := range current {
				currentTokens += tokenizer.Estimate(s)
			}
		}

		current = append(current, sentence)
		currentTokens += sentenceTokens
	}

	if len(current) > 0 {
		chunks = append(chunks, joinSentences(current))
	}

	return chunks
}

// carryOver returns the sentences seeding the next chunk after a flush.
func (c *Chunker) carryOver(flushed []string) []string {
	if !c.overlap || len(flushed) == 0 {
		return nil
	}
	start := len(flushed) - maxOverlapSentences
	if start < 0 {
		start = 0
	}
	return append([]string(nil), flushed[start:]...)
}

// packWords splits an oversized sentence into sub-chunks of whitespace-
// delimited words, each bounded by the token budget, with no overlap.
func (c *Chunker) packWords(sentence string) []string {
	var chunks []string
	var words []string
	wordTokens := 0

	for _, word := range strings.Fields(sentence) {
		wt := tokenizer.Estimate(word)
		if len(words) > 0 && wordTokens+wt > c.maxTokens {
			chunks = append(chunks, strings.Join(words, " "))
			words = nil
			wordTokens = 0
		}
		words = append(words, word)
		wordTokens += wt
	}

	if len(words) > 0 {
		chunks = append(chunks, strings.Join(words, " "))
	}
	return chunks
}

// splitSentences normalizes newlines to spaces and splits on ". " boundaries,
// dropping empty units.
func splitSentences(text string) []string {
	normalized := strings.ReplaceAll(text, "\n", " ")
	parts := strings.Split(normalized, ". ")

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// joinSentences rejoins accumulated sentences with ". " and restores the
// trailing period lost during splitting, without doubling one that survived.
func joinSentences(sentences []string) string {
	joined := strings.Join(sentences, ". ")
	if !strings.HasSuffix(joined, ".") {
		joined += "."
	}
	return joined
}
