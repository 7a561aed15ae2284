package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/startforge/blueprint/internal/engine"
)

// Server wraps the MCP server with its engine dependency.
type Server struct {
	server *mcp.Server
	engine *engine.Engine
}

// NewServer creates a configured MCP server with tools registered.
func NewServer(eng *engine.Engine) *Server {
	impl := &mcp.Implementation{
		Name:    "startforge-blueprint-server",
		Version: "v0.1.0",
	}

	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_blueprint",
		Description: "Generate a complete startup business blueprint for an idea, grounded on Indian government schemes, legal requirements, funding sources and market data.",
	}, makeGenerateHandler(eng))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refine_section",
		Description: "Refine one section of a previously generated blueprint based on user feedback. Returns the rewritten section text.",
	}, makeRefineHandler(eng))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat",
		Description: "Ask a free-form startup question, optionally grounded on an existing blueprint passed as context.",
	}, makeChatHandler(eng))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "retrieve_context",
		Description: "Retrieve the categorized corpus documents (schemes, legal, funding, market) most relevant to a startup idea, with relevance scores.",
	}, makeRetrieveHandler(eng))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_index_status",
		Description: "Get the current status of the corpus index including readiness, document counts and per-category breakdown.",
	}, makeStatusHandler(eng))

	return &Server{
		server: server,
		engine: eng,
	}
}

// Run starts the server with stdio transport (blocks until client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance.
// Used by transport handlers that need to wrap the server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
