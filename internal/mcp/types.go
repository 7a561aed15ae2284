// Package mcp exposes the blueprint engine over the Model Context Protocol.
package mcp

import "github.com/startforge/blueprint/internal/blueprint"

// GenerateBlueprintInput defines the input parameters for the
// generate_blueprint tool.
type GenerateBlueprintInput struct {
	// Idea is the startup idea to build a blueprint for.
	Idea string `json:"idea" jsonschema:"required,description=The startup idea to generate a business blueprint for"`
}

// GenerateBlueprintOutput contains the generated blueprint.
type GenerateBlueprintOutput struct {
	// Blueprint is the structured blueprint document.
	Blueprint *blueprint.Content `json:"blueprint"`
}

// RefineSectionInput defines the input parameters for the refine_section tool.
type RefineSectionInput struct {
	// Section is the blueprint section name (e.g. "budget_estimation").
	Section string `json:"section" jsonschema:"required,description=Name of the blueprint section to refine"`
	// CurrentContent is the section's current content.
	CurrentContent string `json:"current_content" jsonschema:"required,description=The current content of the section"`
	// Feedback is the user's refinement request.
	Feedback string `json:"feedback" jsonschema:"required,description=Feedback describing how the section should change"`
}

// RefineSectionOutput contains the refined section text.
type RefineSectionOutput struct {
	// Refined is the rewritten section content.
	Refined string `json:"refined"`
}

// ChatInput defines the input parameters for the chat tool.
type ChatInput struct {
	// Message is the user's question.
	Message string `json:"message" jsonschema:"required,description=The user's question about their startup"`
	// BlueprintContext optionally grounds the answer on an existing blueprint.
	BlueprintContext string `json:"blueprint_context,omitempty" jsonschema:"description=Optional blueprint content to ground the answer on"`
}

// ChatOutput contains the assistant reply.
type ChatOutput struct {
	// Reply is the assistant's answer.
	Reply string `json:"reply"`
}

// RetrieveContextInput defines the input parameters for the
// retrieve_context tool.
type RetrieveContextInput struct {
	// Idea is the startup idea to retrieve corpus context for.
	Idea string `json:"idea" jsonschema:"required,description=The startup idea to retrieve relevant corpus documents for"`
}

// RetrievedDocument is a single retrieved corpus document.
type RetrievedDocument struct {
	// Text is the document content.
	Text string `json:"text"`
	// Type is the document category (scheme, legal, funding, market).
	Type string `json:"type"`
	// Relevance is the similarity score (0-1).
	Relevance float64 `json:"relevance"`
	// Metadata carries the structured source record.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RetrieveContextOutput contains categorized context documents.
type RetrieveContextOutput struct {
	Schemes []RetrievedDocument `json:"schemes"`
	Legal   []RetrievedDocument `json:"legal"`
	Funding []RetrievedDocument `json:"funding"`
	Market  []RetrievedDocument `json:"market"`
	// Total is the document count across all categories.
	Total int `json:"total"`
}

// StatusInput defines the input parameters for the get_index_status tool.
// This tool takes no parameters.
type StatusInput struct {
	// No input parameters required
}

// StatusOutput describes engine readiness and index contents.
type StatusOutput struct {
	// Initialized reports whether the corpus index is ready.
	Initialized bool `json:"initialized"`
	// TotalDocuments is the number of indexed documents.
	TotalDocuments int `json:"total_documents"`
	// Dimension is the embedding dimensionality.
	Dimension int `json:"dimension,omitempty"`
	// DocumentTypes maps category to document count.
	DocumentTypes map[string]int `json:"document_types,omitempty"`
}
