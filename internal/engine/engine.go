// Package engine wires corpus loading, chunking, embedding, indexing,
// retrieval and generation into one explicitly constructed service. All
// dependencies are injected; there is no package-level instance.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/startforge/blueprint/internal/blueprint"
	"github.com/startforge/blueprint/internal/chunker"
	"github.com/startforge/blueprint/internal/corpus"
	"github.com/startforge/blueprint/internal/generation"
	"github.com/startforge/blueprint/internal/index"
	"github.com/startforge/blueprint/internal/retriever"
)

// Embedder is the batch embedding contract used during ingestion.
// Satisfied by *embedding.Embedder.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Config carries the engine's dependencies.
type Config struct {
	Source    corpus.Source
	Embedder  Embedder
	Store     index.Store
	Retriever *retriever.Retriever
	Generator *generation.Generator
	Logger    *slog.Logger

	// SnapshotDir enables snapshot persistence when the store supports it.
	// Empty disables snapshots.
	SnapshotDir string

	// ChunkMaxTokens overrides the per-chunk token budget for ingestion.
	ChunkMaxTokens int
}

// Stats reports engine readiness and, once initialized, index contents.
type Stats struct {
	Initialized bool         `json:"initialized"`
	Index       *index.Stats `json:"index,omitempty"`
}

// Engine orchestrates the blueprint pipeline. Initialization is guarded so
// concurrent callers trigger at most one corpus rebuild.
type Engine struct {
	source    corpus.Source
	embedder  Embedder
	store     index.Store
	retriever *retriever.Retriever
	generator *generation.Generator
	chunker   *chunker.Chunker
	logger    *slog.Logger

	snapshotDir string

	mu          sync.Mutex
	initialized bool
}

// New creates an Engine from the given dependencies.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		source:      cfg.Source,
		embedder:    cfg.Embedder,
		store:       cfg.Store,
		retriever:   cfg.Retriever,
		generator:   cfg.Generator,
		chunker:     chunker.New(cfg.ChunkMaxTokens, 1),
		logger:      logger,
		snapshotDir: cfg.SnapshotDir,
	}
}

// Initialize makes the engine ready to serve. Unforced calls on an
// initialized engine are no-ops. Otherwise it tries loading a snapshot
// (unforced only) and falls back to a full rebuild: load corpus, chunk,
// embed, index, save. The mutex serializes callers so at most one rebuild
// runs at a time.
func (e *Engine) Initialize(ctx context.Context, forceReload bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized && !forceReload {
		return nil
	}

	if !forceReload && e.loadSnapshot(ctx) {
		e.initialized = true
		return nil
	}

	if err := e.rebuild(ctx); err != nil {
		return err
	}
	e.initialized = true
	return nil
}

// loadSnapshot tries to restore the index from disk. Any failure, including
// a corrupt snapshot pair, is logged and swallowed so initialization falls
// through to a rebuild. Returns true only when the restored index holds at
// least one document.
func (e *Engine) loadSnapshot(ctx context.Context) bool {
	if e.snapshotDir == "" {
		return false
	}
	snap, ok := e.store.(index.Snapshotter)
	if !ok {
		return false
	}

	if err := snap.Load(e.snapshotDir); err != nil {
		e.logger.Warn("Snapshot load failed, rebuilding index", "dir", e.snapshotDir, "error", err)
		return false
	}

	stats, err := e.store.Stats(ctx)
	if err != nil || stats.Documents == 0 {
		return false
	}

	e.logger.Info("Index restored from snapshot", "dir", e.snapshotDir, "documents", stats.Documents)
	return true
}

// rebuild runs the full ingestion pipeline. Embedding happens before any
// index mutation, so a failed or cancelled rebuild leaves the previous
// index contents intact.
func (e *Engine) rebuild(ctx context.Context) error {
	e.logger.Info("Building corpus index")

	data, err := e.source.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	docs := e.chunkDocuments(corpus.Prepare(data))
	if len(docs) == 0 {
		return fmt.Errorf("corpus produced no documents")
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	vectors, err := e.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embed corpus: got %d embeddings for %d documents", len(vectors), len(docs))
	}
	for i := range docs {
		docs[i].Embedding = vectors[i]
	}

	if err := e.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	if err := e.store.Add(ctx, docs); err != nil {
		return fmt.Errorf("index corpus: %w", err)
	}

	e.saveSnapshot()
	e.logger.Info("Corpus index built", "documents", len(docs))
	return nil
}

// chunkDocuments splits oversized document texts, carrying type and
// metadata onto every resulting piece.
func (e *Engine) chunkDocuments(docs []index.Document) []index.Document {
	out := make([]index.Document, 0, len(docs))
	for _, doc := range docs {
		chunks := e.chunker.Chunk(doc.Text)
		for _, text := range chunks {
			piece := doc
			piece.Text = text
			out = append(out, piece)
		}
	}
	return out
}

// saveSnapshot persists the freshly built index. Failure is logged and
// otherwise ignored; the in-memory index keeps serving.
func (e *Engine) saveSnapshot() {
	if e.snapshotDir == "" {
		return
	}
	snap, ok := e.store.(index.Snapshotter)
	if !ok {
		return
	}
	if err := snap.Save(e.snapshotDir); err != nil {
		e.logger.Warn("Snapshot save failed", "dir", e.snapshotDir, "error", err)
	}
}

// ensureInitialized lazily initializes the engine before serving.
func (e *Engine) ensureInitialized(ctx context.Context) error {
	return e.Initialize(ctx, false)
}

// GenerateBlueprint produces a full blueprint for a startup idea,
// initializing the engine first if needed.
func (e *Engine) GenerateBlueprint(ctx context.Context, startupIdea string) (*blueprint.Content, error) {
	if err := e.ensureInitialized(ctx); err != nil {
		return nil, err
	}
	return e.generator.GenerateBlueprint(ctx, startupIdea)
}

// RefineSection rewrites one blueprint section per user feedback.
func (e *Engine) RefineSection(ctx context.Context, sectionName, currentContent, userFeedback string) (string, error) {
	if err := e.ensureInitialized(ctx); err != nil {
		return "", err
	}
	return e.generator.RefineSection(ctx, sectionName, currentContent, userFeedback)
}

// Chat answers a free-form question, optionally grounded on blueprint
// context.
func (e *Engine) Chat(ctx context.Context, message, blueprintContext string) (string, error) {
	if err := e.ensureInitialized(ctx); err != nil {
		return "", err
	}
	return e.generator.Chat(ctx, message, blueprintContext)
}

// RetrieveContext returns the categorized context documents for an idea.
func (e *Engine) RetrieveContext(ctx context.Context, startupIdea string) (*retriever.Context, error) {
	if err := e.ensureInitialized(ctx); err != nil {
		return nil, err
	}
	return e.retriever.ContextForBlueprint(ctx, startupIdea)
}

// Retrieve returns up to k documents for a free-form query.
func (e *Engine) Retrieve(ctx context.Context, query string, k int) ([]retriever.ScoredDocument, error) {
	if err := e.ensureInitialized(ctx); err != nil {
		return nil, err
	}
	return e.retriever.Retrieve(ctx, query, k)
}

// Initialized reports whether the engine has a ready index.
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// Stats reports readiness and index contents. Index stats are nil until
// the engine is initialized.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	if !e.Initialized() {
		return &Stats{}, nil
	}
	idx, err := e.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Initialized: true, Index: idx}, nil
}
