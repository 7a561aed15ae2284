package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/startforge/blueprint/internal/engine"
	"github.com/startforge/blueprint/internal/generation"
	"github.com/startforge/blueprint/internal/retriever"
)

// makeGenerateHandler creates the generate_blueprint tool handler.
// The engine initializes lazily on the first call, so the first blueprint
// after a cold start also pays for corpus ingestion.
func makeGenerateHandler(eng *engine.Engine) func(
	context.Context, *mcp.CallToolRequest, GenerateBlueprintInput,
) (*mcp.CallToolResult, GenerateBlueprintOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GenerateBlueprintInput) (
		*mcp.CallToolResult, GenerateBlueprintOutput, error,
	) {
		if input.Idea == "" {
			return nil, GenerateBlueprintOutput{}, fmt.Errorf("idea must not be empty")
		}

		content, err := eng.GenerateBlueprint(ctx, input.Idea)
		if err != nil {
			var structural *generation.StructuralError
			if errors.As(err, &structural) {
				return nil, GenerateBlueprintOutput{}, fmt.Errorf("model returned malformed blueprint: %w", structural.Err)
			}
			return nil, GenerateBlueprintOutput{}, fmt.Errorf("generate blueprint: %w", err)
		}

		return nil, GenerateBlueprintOutput{Blueprint: content}, nil
	}
}

// makeRefineHandler creates the refine_section tool handler.
func makeRefineHandler(eng *engine.Engine) func(
	context.Context, *mcp.CallToolRequest, RefineSectionInput,
) (*mcp.CallToolResult, RefineSectionOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RefineSectionInput) (
		*mcp.CallToolResult, RefineSectionOutput, error,
	) {
		if input.Section == "" {
			return nil, RefineSectionOutput{}, fmt.Errorf("section must not be empty")
		}

		refined, err := eng.RefineSection(ctx, input.Section, input.CurrentContent, input.Feedback)
		if err != nil {
			return nil, RefineSectionOutput{}, fmt.Errorf("refine section: %w", err)
		}

		return nil, RefineSectionOutput{Refined: refined}, nil
	}
}

// makeChatHandler creates the chat tool handler.
func makeChatHandler(eng *engine.Engine) func(
	context.Context, *mcp.CallToolRequest, ChatInput,
) (*mcp.CallToolResult, ChatOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ChatInput) (
		*mcp.CallToolResult, ChatOutput, error,
	) {
		if input.Message == "" {
			return nil, ChatOutput{}, fmt.Errorf("message must not be empty")
		}

		reply, err := eng.Chat(ctx, input.Message, input.BlueprintContext)
		if err != nil {
			return nil, ChatOutput{}, fmt.Errorf("chat: %w", err)
		}

		return nil, ChatOutput{Reply: reply}, nil
	}
}

// makeRetrieveHandler creates the retrieve_context tool handler.
func makeRetrieveHandler(eng *engine.Engine) func(
	context.Context, *mcp.CallToolRequest, RetrieveContextInput,
) (*mcp.CallToolResult, RetrieveContextOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RetrieveContextInput) (
		*mcp.CallToolResult, RetrieveContextOutput, error,
	) {
		if input.Idea == "" {
			return nil, RetrieveContextOutput{}, fmt.Errorf("idea must not be empty")
		}

		bc, err := eng.RetrieveContext(ctx, input.Idea)
		if err != nil {
			return nil, RetrieveContextOutput{}, fmt.Errorf("retrieve context: %w", err)
		}

		out := RetrieveContextOutput{
			Schemes: toRetrieved(bc.Schemes),
			Legal:   toRetrieved(bc.Legal),
			Funding: toRetrieved(bc.Funding),
			Market:  toRetrieved(bc.Market),
			Total:   bc.Total(),
		}
		return nil, out, nil
	}
}

// makeStatusHandler creates the get_index_status tool handler. It never
// triggers initialization: an idle engine reports uninitialized.
func makeStatusHandler(eng *engine.Engine) func(
	context.Context, *mcp.CallToolRequest, StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (
		*mcp.CallToolResult, StatusOutput, error,
	) {
		stats, err := eng.Stats(ctx)
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("index status: %w", err)
		}

		out := StatusOutput{Initialized: stats.Initialized}
		if stats.Index != nil {
			out.TotalDocuments = stats.Index.Documents
			out.Dimension = stats.Index.Dimension
			out.DocumentTypes = make(map[string]int, len(stats.Index.ByType))
			for typ, count := range stats.Index.ByType {
				out.DocumentTypes[string(typ)] = count
			}
		}
		return nil, out, nil
	}
}

func toRetrieved(docs []retriever.ScoredDocument) []RetrievedDocument {
	out := make([]RetrievedDocument, len(docs))
	for i, d := range docs {
		out[i] = RetrievedDocument{
			Text:      d.Document.Text,
			Type:      string(d.Document.Type),
			Relevance: d.Relevance,
			Metadata:  d.Document.Metadata,
		}
	}
	return out
}
