package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/startforge/blueprint/internal/blueprint"
	"github.com/startforge/blueprint/internal/retriever"
)

// Generation parameters. Blueprint generation needs room for the full
// structured document; refinement and chat are deliberately tighter.
const (
	Temperature        = 0.7
	BlueprintMaxTokens = 2000
	RefineMaxTokens    = 1000
	ChatMaxTokens      = 500
)

const systemPrompt = `You are StartForge AI, an expert startup consultant specializing in the Indian startup ecosystem.
Your role is to help entrepreneurs create comprehensive, actionable business blueprints.

You have deep knowledge of:
- Indian startup ecosystem and regulations
- Government schemes and funding options
- Legal compliance requirements
- Market analysis and business strategy
- Financial planning and budgeting

Generate detailed, practical, and India-specific startup blueprints based on the user's idea and provided context.
Always provide specific, actionable recommendations with real data when available.`

// Generator produces blueprints and conversational replies from a
// completion client and a context retriever.
type Generator struct {
	completer Completer
	retriever *retriever.Retriever
	logger    *slog.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(completer Completer, r *retriever.Retriever, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		completer: completer,
		retriever: r,
		logger:    logger,
	}
}

// GenerateBlueprint retrieves categorized context for the idea, runs one
// completion against the blueprint schema and parses the result. A response
// that cannot be parsed into a blueprint returns a *StructuralError
// carrying the raw output; it is not retried.
func (g *Generator) GenerateBlueprint(ctx context.Context, startupIdea string) (*blueprint.Content, error) {
	g.logger.Info("Generating startup blueprint")

	docs, err := g.retriever.ContextForBlueprint(ctx, startupIdea)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	contextStr := retriever.FormatContext(docs)

	raw, err := g.completer.Complete(ctx, systemPrompt, blueprintPrompt(startupIdea, contextStr), Temperature, BlueprintMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generate blueprint: %w", err)
	}
	g.logger.Debug("Received completion", "chars", len(raw))

	payload := ExtractJSON(raw)

	var content blueprint.Content
	if err := json.Unmarshal([]byte(payload), &content); err != nil {
		g.logger.Error("Blueprint response was not valid JSON", "error", err)
		return nil, &StructuralError{Raw: raw, Err: err}
	}

	g.logger.Info("Blueprint generated successfully")
	return &content, nil
}

// RefineSection rewrites one blueprint section according to user feedback
// and returns the refined text verbatim.
func (g *Generator) RefineSection(ctx context.Context, sectionName, currentContent, userFeedback string) (string, error) {
	g.logger.Info("Refining section", "section", sectionName)

	prompt := fmt.Sprintf(`Refine the following section of a startup blueprint based on user feedback:

SECTION: %s

CURRENT CONTENT:
%s

USER FEEDBACK:
%s

Provide an improved version that addresses the feedback while maintaining the same structure and format.
Return only the refined content.`, sectionName, currentContent, userFeedback)

	refined, err := g.completer.Complete(ctx, systemPrompt, prompt, Temperature, RefineMaxTokens)
	if err != nil {
		return "", fmt.Errorf("refine section %s: %w", sectionName, err)
	}
	return refined, nil
}

// Chat answers a free-form user question, optionally grounded on an
// existing blueprint passed as context.
func (g *Generator) Chat(ctx context.Context, message, blueprintContext string) (string, error) {
	userPrompt := message
	if blueprintContext != "" {
		userPrompt = fmt.Sprintf(`User is working on a startup blueprint. Here's the context:

%s

User question: %s

Provide a helpful, specific response.`, blueprintContext, message)
	}

	reply, err := g.completer.Complete(ctx, systemPrompt, userPrompt, Temperature, ChatMaxTokens)
	if err != nil {
		return "", fmt.Errorf("chat response: %w", err)
	}
	return reply, nil
}

// blueprintPrompt assembles the user prompt: the idea, the retrieved
// context block and the target schema.
func blueprintPrompt(startupIdea, contextStr string) string {
	return fmt.Sprintf(`Generate a comprehensive startup blueprint for the following idea:

STARTUP IDEA:
%s

RELEVANT CONTEXT (Government schemes, legal requirements, funding sources, market data):
%s

Generate a detailed blueprint with the following sections in JSON format:

%s

Ensure all recommendations are:
1. Specific to the Indian market
2. Based on the provided context when applicable
3. Realistic and actionable
4. Include actual numbers and data where possible

Return ONLY the JSON object, no additional text.`, startupIdea, contextStr, blueprint.SchemaJSON)
}
