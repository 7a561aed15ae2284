package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "json fence",
			raw:  "Here is the blueprint:\n```json\n{\"a\": 1}\n```\nLet me know!",
			want: `{"a": 1}`,
		},
		{
			name: "bare fence",
			raw:  "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "no fence",
			raw:  "  {\"a\": 1}\n",
			want: `{"a": 1}`,
		},
		{
			name: "unterminated json fence",
			raw:  "```json\n{\"a\": 1}",
			want: `{"a": 1}`,
		},
		{
			name: "only first fence pair counts",
			raw:  "```json\n{\"a\": 1}\n```\n```json\n{\"b\": 2}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.raw))
		})
	}
}

// Fenced and bare responses carrying the same payload must extract
// identically.
func TestExtractJSON_FencedAndBareEquivalent(t *testing.T) {
	payload := `{"startup_overview": {"industry": "edtech"}}`

	fenced := "```json\n" + payload + "\n```"
	bare := payload + "\n"

	assert.Equal(t, ExtractJSON(bare), ExtractJSON(fenced))
}
