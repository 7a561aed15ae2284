package generation

import "strings"

// ExtractJSON isolates the JSON payload of a model response. Models often
// wrap JSON in a markdown code fence even when asked not to; the content
// between the first ```json (or bare ```) fence pair wins, otherwise the
// whole trimmed response is returned as-is.
func ExtractJSON(raw string) string {
	if idx := strings.Index(raw, "```json"); idx >= 0 {
		rest := raw[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(raw, "```"); idx >= 0 {
		rest := raw[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(raw)
}
