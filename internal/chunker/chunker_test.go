package chunker

import (
	"strings"
	"testing"
)

func TestChunk_TinyInputSingleChunk(t *testing.T) {
	c := New(100, 200)
	chunks := c.Chunk("A. B. C.")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "A. B. C." {
		t.Errorf("expected normalized input back, got %q", chunks[0])
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	c := New(100, 0)

	if got := c.Chunk(""); got != nil {
		t.Errorf("empty input: expected nil, got %v", got)
	}
	if got := c.Chunk("   \n  "); got != nil {
		t.Errorf("whitespace input: expected nil, got %v", got)
	}
}

func TestChunk_NormalizesNewlines(t *testing.T) {
	c := New(100, 0)
	chunks := c.Chunk("First sentence here.\nSecond sentence. Third one.")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if strings.Contains(chunks[0], "\n") {
		t.Errorf("chunk still contains newline: %q", chunks[0])
	}
}

func TestChunk_OverflowFlushesWithSentenceOverlap(t *testing.T) {
	c := New(10, 200)
	chunks := c.Chunk("one two three four five six. seven eight nine ten eleven twelve.")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "one two three four five six." {
		t.Errorf("first chunk: got %q", chunks[0])
	}
	// Second chunk is seeded with the flushed chunk's trailing sentences.
	if !strings.HasPrefix(chunks[1], "one two three four five six.") {
		t.Errorf("second chunk missing overlap seed: %q", chunks[1])
	}
	if !strings.Contains(chunks[1], "seven eight nine ten eleven twelve") {
		t.Errorf("second chunk missing its own sentence: %q", chunks[1])
	}
}

func TestChunk_NoOverlapWhenDisabled(t *testing.T) {
	c := New(10, 0)
	chunks := c.Chunk("one two three four five six. seven eight nine ten eleven twelve.")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if strings.Contains(chunks[1], "one two three") {
		t.Errorf("second chunk should not repeat first sentence: %q", chunks[1])
	}
}

func TestChunk_OversizedSentenceSplitsByWords(t *testing.T) {
	c := New(3, 200)
	chunks := c.Chunk("alpha beta gamma delta epsilon")

	if len(chunks) < 2 {
		t.Fatalf("expected word-split sub-chunks, got %v", chunks)
	}

	// All words survive, in order, with no overlap between sub-chunks.
	rejoined := strings.Join(chunks, " ")
	if rejoined != "alpha beta gamma delta epsilon" {
		t.Errorf("words not preserved: %q", rejoined)
	}
}

func TestChunk_OversizedSentenceFlushesPendingFirst(t *testing.T) {
	c := New(5, 0)
	chunks := c.Chunk("short one. " + "verylongword " + strings.Repeat("word ", 9) + "ending")

	if len(chunks) < 2 {
		t.Fatalf("expected pending chunk plus sub-chunks, got %v", chunks)
	}
	if chunks[0] != "short one." {
		t.Errorf("pending chunk should flush before word split, got %q", chunks[0])
	}
}

func TestChunk_NonEmptyInputAlwaysYieldsChunks(t *testing.T) {
	c := New(8, 200)
	inputs := []string{
		"single",
		"Small input under budget.",
		"Sentence one is here. Sentence two is here. Sentence three is here. Sentence four closes it.",
	}

	for _, input := range inputs {
		chunks := c.Chunk(input)
		if len(chunks) == 0 {
			t.Errorf("input %q produced no chunks", input)
		}
	}
}

// TestChunk_SentencePreservation verifies no sentence is dropped: every
// sentence unit of the input appears in the concatenated chunk output.
func TestChunk_SentencePreservation(t *testing.T) {
	input := "Funding schemes support early startups. Legal structures vary by liability. " +
		"Market size grows each year. Registration takes about two weeks. " +
		"Seed grants cover prototype development. Compliance checklists reduce risk."

	for _, budget := range []int{6, 10, 25, 1000} {
		c := New(budget, 200)
		chunks := c.Chunk(input)
		all := strings.Join(chunks, " ")

		for _, sentence := range splitSentences(input) {
			if !strings.Contains(all, strings.TrimSuffix(sentence, ".")) {
				t.Errorf("budget %d: sentence %q dropped from output", budget, sentence)
			}
		}
	}
}
