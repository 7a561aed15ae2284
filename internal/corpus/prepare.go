package corpus

import (
	"fmt"
	"strings"

	"github.com/startforge/blueprint/internal/index"
)

// Prepare renders raw records into typed documents ready for embedding.
// Each category has a canonical text layout; the originating record rides
// along as the document's metadata. Legal records without a "type" field
// (license entries) are skipped, matching the corpus shape.
func Prepare(data map[index.DocType][]Record) []index.Document {
	var docs []index.Document

	for _, rec := range data[index.TypeScheme] {
		text := fmt.Sprintf("Scheme: %s\nDescription: %s\nEligibility: %s\nFunding Amount: %s\nCategory: %s\nSource: %s",
			rec.str("name"), rec.str("description"), rec.str("eligibility"),
			rec.str("funding_amount"), rec.str("category"), rec.str("source"))
		docs = append(docs, index.Document{Text: text, Type: index.TypeScheme, Metadata: rec})
	}

	for _, rec := range data[index.TypeLegal] {
		if rec.str("type") == "" {
			continue
		}
		text := fmt.Sprintf("Business Type: %s\nDescription: %s\nRequirements: %s\nRegistration Time: %s\nCost Range: %s\nBenefits: %s",
			rec.str("type"), rec.str("description"), strings.Join(rec.list("requirements"), ", "),
			rec.str("registration_time"), rec.str("cost_range"), strings.Join(rec.list("benefits"), ", "))
		docs = append(docs, index.Document{Text: text, Type: index.TypeLegal, Metadata: rec})
	}

	for _, rec := range data[index.TypeFunding] {
		text := fmt.Sprintf("Funding Type: %s\nDescription: %s\nTypical Amount: %s\nStage: %s",
			rec.str("type"), rec.str("description"), rec.str("typical_amount"), rec.str("stage"))
		docs = append(docs, index.Document{Text: text, Type: index.TypeFunding, Metadata: rec})
	}

	for _, rec := range data[index.TypeMarket] {
		var text string
		if rec.str("total_startups") != "" {
			text = fmt.Sprintf("Indian Startup Ecosystem:\nTotal Startups: %s\nUnicorns: %s\nFunding 2023: %s\nTop Sectors: %s",
				rec.str("total_startups"), rec.str("unicorns"), rec.str("funding_2023"),
				strings.Join(rec.list("top_sectors"), ", "))
		} else {
			// Pack-sourced market insight: free text under a title.
			text = fmt.Sprintf("Market Insight: %s\n%s", rec.str("name"), rec.str("description"))
		}
		docs = append(docs, index.Document{Text: text, Type: index.TypeMarket, Metadata: rec})
	}

	return docs
}

// str returns the record field as a string, empty when absent.
func (r Record) str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// list returns the record field as a string slice, nil when absent.
func (r Record) list(key string) []string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	}
	return nil
}
