package corpus

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FlattenMarkdown extracts the plain text of a markdown document by
// walking its AST and collecting text segments. Block boundaries become
// sentence-ish breaks so the sentence chunker sees natural units instead
// of one run-on line.
func FlattenMarkdown(source []byte) string {
	md := goldmark.New()
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader)

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.Heading, *ast.Paragraph, *ast.ListItem:
			_ = node
			if sb.Len() > 0 {
				ensureBreak(&sb)
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}

// ensureBreak terminates the accumulated text with ". " if it does not
// already end at a sentence boundary.
func ensureBreak(sb *strings.Builder) {
	s := sb.String()
	trimmed := strings.TrimRight(s, " ")
	if trimmed == "" {
		return
	}
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, "!") || strings.HasSuffix(trimmed, "?") {
		if !strings.HasSuffix(s, " ") {
			sb.WriteByte(' ')
		}
		return
	}
	sb.Reset()
	sb.WriteString(trimmed)
	sb.WriteString(". ")
}
