package tokenizer

import "testing"

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t ", 0},
		{"single short word", "hi", 1},
		{"short words floor at word count", "a b c d", 4},
		{"long word counts by characters", "internationalization", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimate_Monotonic(t *testing.T) {
	// Appending text never reduces the estimate.
	base := "funding for early stage startups"
	longer := base + " with proof of concept grants"
	if Estimate(longer) < Estimate(base) {
		t.Errorf("estimate decreased: %d < %d", Estimate(longer), Estimate(base))
	}
}
