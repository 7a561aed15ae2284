// Package main provides the blueprint CLI for corpus management and
// offline blueprint generation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/startforge/blueprint/internal/corpus"
	"github.com/startforge/blueprint/internal/embedding"
	"github.com/startforge/blueprint/internal/engine"
	"github.com/startforge/blueprint/internal/generation"
	"github.com/startforge/blueprint/internal/index"
	"github.com/startforge/blueprint/internal/retriever"
)

var rootCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "StartForge startup blueprint tool",
	Long:  "CLI tool for managing the startup knowledge corpus and generating business blueprints",
}

var forceReload bool

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the corpus index",
	Long: `Loads the startup knowledge corpus, embeds it and builds the vector index.

This command:
1. Loads seed data (and the GitHub corpus when CORPUS_REPO is set)
2. Prepares and chunks documents per category
3. Generates embeddings in batches
4. Builds the vector index and saves a snapshot

Environment variables:
  OPENAI_API_KEY OpenAI API key for embeddings (required)
  SNAPSHOT_DIR   Snapshot directory (default: ./data/vector_store)
  VECTOR_BACKEND flat or qdrant (default: flat)
  QDRANT_HOST    Qdrant hostname (default: localhost)
  QDRANT_PORT    Qdrant gRPC port (default: 6334)
  CORPUS_REPO    Optional owner/repo of a markdown corpus on GitHub
  GITHUB_TOKEN   GitHub token for higher rate limits (optional)`,
	RunE: runIngest,
}

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Search the corpus",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

var generateCmd = &cobra.Command{
	Use:   "generate <idea>",
	Short: "Generate a startup blueprint",
	Long:  "Generates a full business blueprint for the given startup idea and prints it as JSON.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerate,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE:  runStats,
}

func init() {
	ingestCmd.Flags().BoolVar(&forceReload, "force", false, "rebuild even when a snapshot exists")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	start := time.Now()

	eng, cleanup, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("Building corpus index...")
	if err := eng.Initialize(ctx, forceReload); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	stats, err := eng.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Ingestion complete!")
	fmt.Printf("  Documents: %d\n", stats.Index.Documents)
	for _, typ := range index.Types {
		fmt.Printf("  %-8s %d\n", string(typ)+":", stats.Index.ByType[typ])
	}
	fmt.Printf("  Duration: %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	eng, cleanup, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	docs, err := eng.Retrieve(ctx, query, retriever.DefaultK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(docs) == 0 {
		fmt.Println("No matching documents.")
		return nil
	}
	for i, doc := range docs {
		fmt.Printf("%d. [%s] (%.3f)\n", i+1, doc.Document.Type, doc.Relevance)
		fmt.Printf("   %s\n", firstLine(doc.Document.Text))
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	idea := strings.Join(args, " ")

	eng, cleanup, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Fprintln(os.Stderr, "Generating blueprint...")
	content, err := eng.GenerateBlueprint(ctx, idea)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	out, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Stats reads the existing index directly; no API keys, no ingestion.
	store, snapshotDir, cleanup, err := buildStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if snapshotDir != "" {
		snap, ok := store.(index.Snapshotter)
		if !ok {
			return fmt.Errorf("backend does not support snapshots")
		}
		if err := snap.Load(snapshotDir); err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	if stats.Documents == 0 {
		fmt.Println("Index not built. Run `blueprint ingest` first.")
		return nil
	}

	fmt.Printf("Documents: %d\n", stats.Documents)
	fmt.Printf("Vectors:   %d\n", stats.Vectors)
	fmt.Printf("Dimension: %d\n", stats.Dimension)
	for _, typ := range index.Types {
		fmt.Printf("  %-8s %d\n", string(typ)+":", stats.ByType[typ])
	}
	return nil
}

// buildStore constructs the vector store from environment configuration.
// snapshotDir is empty for server-backed stores.
func buildStore(ctx context.Context) (index.Store, string, func(), error) {
	cleanup := func() {}

	if getEnv("VECTOR_BACKEND", "flat") == "qdrant" {
		qdrantHost := getEnv("QDRANT_HOST", "localhost")
		qdrantPort := getEnvInt("QDRANT_PORT", 6334)
		qdrant, err := index.NewQdrant(ctx, qdrantHost, qdrantPort, embedding.Dimension)
		if err != nil {
			return nil, "", nil, fmt.Errorf("connect to Qdrant: %w", err)
		}
		return qdrant, "", func() { qdrant.Close() }, nil
	}

	snapshotDir := getEnv("SNAPSHOT_DIR", "./data/vector_store")
	return index.NewFlat(embedding.Dimension), snapshotDir, cleanup, nil
}

// buildEngine assembles the pipeline from environment configuration.
func buildEngine(ctx context.Context) (*engine.Engine, func(), error) {
	embeddingClient, err := embedding.NewClient()
	if err != nil {
		return nil, nil, fmt.Errorf("embedding client: %w", err)
	}
	embedder := embedding.NewEmbedder(embeddingClient, 0) // default batch size

	completionClient, err := generation.NewClient()
	if err != nil {
		return nil, nil, fmt.Errorf("completion client: %w", err)
	}

	store, snapshotDir, cleanup, err := buildStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	r := retriever.New(store, embedder, logger)
	g := generation.NewGenerator(completionClient, r, logger)

	eng := engine.New(engine.Config{
		Source:      buildSource(),
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
		fmt.Fprintf(os.Stderr, "ignoring malformed CORPUS_REPO %q, expected owner/repo\n", repo)
		return static
	}

	ghClient, err := corpus.NewGitHubClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "GitHub corpus source unavailable: %v\n", err)
		return static
	}
	gh := corpus.NewGitHubSource(ghClient, parts[0], parts[1], os.Getenv("CORPUS_PATH"))
	return corpus.Multi{static, gh}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > 120 {
		s = s[:117] + "..."
	}
	return s
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
