// Package main provides the MCP server entry point for StartForge
// blueprint generation.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/startforge/blueprint/internal/corpus"
	"github.com/startforge/blueprint/internal/embedding"
	"github.com/startforge/blueprint/internal/engine"
	"github.com/startforge/blueprint/internal/generation"
	"github.com/startforge/blueprint/internal/index"
	mcpserver "github.com/startforge/blueprint/internal/mcp"
	"github.com/startforge/blueprint/internal/retriever"
)

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Create context that cancels on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	eng, cleanup, err := buildEngine(ctx, logger)
	if err != nil {
		log.Fatalf("failed to build engine: %v", err)
	}
	defer cleanup()

	server := mcpserver.NewServer(eng)

	mux := http.NewServeMux()
	mux.HandleFunc("/", mcpserver.NewLandingHandler())
	mux.HandleFunc("/health", mcpserver.NewHealthHandler(eng))
	mux.Handle("/mcp", mcpserver.NewHTTPHandler(server, nil))

	port := getEnv("PORT", "8080")
	serverMode := getEnv("SERVER_MODE", "false") == "true"

	if serverMode {
		// HTTP mode: serve MCP over HTTP for remote clients
		addr := "0.0.0.0:" + port
		log.Printf("Starting HTTP server on %s (MCP at /mcp, health at /health)", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	} else {
		// Stdio mode: run MCP server over stdin/stdout for local clients
		// Also start HTTP health endpoint in background for local testing
		go func() {
			addr := "0.0.0.0:" + port
			log.Printf("Starting health server on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("Health server error: %v", err)
			}
		}()

		log.Println("Starting StartForge Blueprint MCP Server (stdio mode)...")
		if err := server.Run(ctx); err != nil {
			log.Printf("server error: %v", err)
			os.Exit(1)
		}
	}
}

// buildEngine assembles the full pipeline from environment configuration.
// The returned cleanup closes backend connections.
func buildEngine(ctx context.Context, logger *slog.Logger) (*engine.Engine, func(), error) {
	cleanup := func() {}

	embeddingClient, err := embedding.NewClient()
	if err != nil {
		return nil, nil, fmt.Errorf("embedding client: %w", err)
	}
	embedder := embedding.NewEmbedder(embeddingClient, 0) // default batch size

	completionClient, err := generation.NewClient()
	if err != nil {
		return nil, nil, fmt.Errorf("completion client: %w", err)
	}

	var store index.Store
	snapshotDir := getEnv("SNAPSHOT_DIR", "./data/vector_store")
	if getEnv("VECTOR_BACKEND", "flat") == "qdrant" {
		qdrantHost := getEnv("QDRANT_HOST", "localhost")
		qdrantPort := getEnvInt("QDRANT_PORT", 6334)
		qdrant, err := index.NewQdrant(ctx, qdrantHost, qdrantPort, embedding.Dimension)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to Qdrant: %w", err)
		}
		cleanup = func() { qdrant.Close() }
		store = qdrant
		snapshotDir = "" // Qdrant persists server-side
	} else {
		store = index.NewFlat(embedding.Dimension)
	}

	source := buildSource()

	r := retriever.New(store, embedder, logger)
	g := generation.NewGenerator(completionClient, r, logger)

	eng := engine.New(engine.Config{
		Source:      source,
		Embedder:    embedder,
		Store:       store,
		Retriever:   r,
		Generator:   g,
		Logger:      logger,
		SnapshotDir: snapshotDir,
	})
	return eng, cleanup, nil
}

// buildSource returns the embedded seed corpus, optionally merged with a
// GitHub data repository when CORPUS_REPO (owner/repo) is set.
func buildSource() corpus.Source {
	static := corpus.NewStaticSource()

	repo := os.Getenv("CORPUS_REPO")
	if repo == "" {
		return static
	}
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 {
		log.Printf("ignoring malformed CORPUS_REPO %q, expected owner/repo", repo)
		return static
	}

	ghClient, err := corpus.NewGitHubClient()
	if err != nil {
		log.Printf("GitHub corpus source unavailable: %v", err)
		return static
	}
	gh := corpus.NewGitHubSource(ghClient, parts[0], parts[1], os.Getenv("CORPUS_PATH"))
	return corpus.Multi{static, gh}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}
