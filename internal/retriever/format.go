package retriever

import (
	"fmt"
	"strings"
)

// FormatContext renders retrieved context into the labeled plain-text block
// embedded in generation prompts. Categories appear in fixed order and a
// category with no documents is omitted entirely.
func FormatContext(bc *Context) string {
	if bc == nil {
		return ""
	}

	var parts []string

	if len(bc.Schemes) > 0 {
		parts = append(parts, "=== GOVERNMENT SCHEMES ===")
		for _, doc := range bc.Schemes {
			m := doc.Document.Metadata
			parts = append(parts, fmt.Sprintf(`
Scheme: %s
Description: %s
Eligibility: %s
Funding: %s
`,
				field(m, "name"),
				field(m, "description"),
				field(m, "eligibility"),
				field(m, "funding_amount"),
			))
		}
	}

	if len(bc.Legal) > 0 {
		parts = append(parts, "\n=== LEGAL & COMPLIANCE ===")
		for _, doc := range bc.Legal {
			m := doc.Document.Metadata
			parts = append(parts, fmt.Sprintf(`
Type: %s
Description: %s
Requirements: %s
Cost: %s
`,
				field(m, "type"),
				field(m, "description"),
				strings.Join(stringList(m, "requirements"), ", "),
				field(m, "cost_range"),
			))
		}
	}

	if len(bc.Funding) > 0 {
		parts = append(parts, "\n=== FUNDING SOURCES ===")
		for _, doc := range bc.Funding {
			m := doc.Document.Metadata
			parts = append(parts, fmt.Sprintf(`
Type: %s
Description: %s
Typical Amount: %s
Stage: %s
`,
				field(m, "type"),
				field(m, "description"),
				field(m, "typical_amount"),
				field(m, "stage"),
			))
		}
	}

	if len(bc.Market) > 0 {
		parts = append(parts, "\n=== MARKET INSIGHTS ===")
		for _, doc := range bc.Market {
			parts = append(parts, doc.Document.Text)
		}
	}

	return strings.Join(parts, "\n")
}

// field renders a metadata value, or "N/A" when absent.
func field(m map[string]any, key string) string {
	if m == nil {
		return "N/A"
	}
	v, ok := m[key]
	if !ok || v == nil {
		return "N/A"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// stringList extracts a metadata list value. JSON round trips deliver
// []any, in-process records may carry []string.
func stringList(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}
