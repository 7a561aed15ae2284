// Package retriever turns user queries into scored document sets and
// assembles the categorized context block fed to blueprint generation.
package retriever

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/startforge/blueprint/internal/index"
)

// Per-category result counts for blueprint context retrieval.
const (
	kSchemes = 5
	kLegal   = 3
	kFunding = 4
	kMarket  = 2
)

// DefaultK is the result count for plain queries.
const DefaultK = 5

// Embedder produces a query embedding. Satisfied by *embedding.Embedder.
type Embedder interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}

// ScoredDocument is a retrieved document with a relevance score in (0, 1],
// derived from squared-L2 distance as 1/(1+distance).
type ScoredDocument struct {
	Document  index.Document
	Relevance float64
}

// Context holds the categorized documents retrieved for one startup idea.
type Context struct {
	Schemes []ScoredDocument
	Legal   []ScoredDocument
	Funding []ScoredDocument
	Market  []ScoredDocument
}

// Total returns the document count across all categories.
func (c Context) Total() int {
	return len(c.Schemes) + len(c.Legal) + len(c.Funding) + len(c.Market)
}

// Retriever runs similarity search against a vector store.
type Retriever struct {
	store    index.Store
	embedder Embedder
	logger   *slog.Logger
}

// New creates a retriever over the given store and embedder.
func New(store index.Store, embedder Embedder, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		store:    store,
		embedder: embedder,
		logger:   logger,
	}
}

// Retrieve embeds the query and returns up to k documents ordered by
// descending relevance.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]ScoredDocument, error) {
	vector, err := r.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.store.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	docs := score(hits)
	r.logger.Debug("Retrieved documents", "query_len", len(query), "count", len(docs))
	return docs, nil
}

// RetrieveByType retrieves up to k documents of a single type.
func (r *Retriever) RetrieveByType(ctx context.Context, query string, typ index.DocType, k int) ([]ScoredDocument, error) {
	vector, err := r.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return r.searchByType(ctx, vector, typ, k)
}

// ContextForBlueprint retrieves the full categorized context for a startup
// idea. The idea is embedded once and the same vector drives all four
// category searches.
func (r *Retriever) ContextForBlueprint(ctx context.Context, idea string) (*Context, error) {
	vector, err := r.embedder.EmbedOne(ctx, idea)
	if err != nil {
		return nil, fmt.Errorf("embed idea: %w", err)
	}

	bc := &Context{}
	for _, cat := range []struct {
		typ  index.DocType
		k    int
		dest *[]ScoredDocument
	}{
		{index.TypeScheme, kSchemes, &bc.Schemes},
		{index.TypeLegal, kLegal, &bc.Legal},
		{index.TypeFunding, kFunding, &bc.Funding},
		{index.TypeMarket, kMarket, &bc.Market},
	} {
		docs, err := r.searchByType(ctx, vector, cat.typ, cat.k)
		if err != nil {
			return nil, fmt.Errorf("retrieve %s context: %w", cat.typ, err)
		}
		*cat.dest = docs
	}

	r.logger.Info("Retrieved blueprint context", "total", bc.Total())
	return bc, nil
}

func (r *Retriever) searchByType(ctx context.Context, vector []float32, typ index.DocType, k int) ([]ScoredDocument, error) {
	hits, err := r.store.SearchByType(ctx, vector, typ, k)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", typ, err)
	}
	return score(hits), nil
}

// score converts ascending-distance hits to descending-relevance documents.
// The mapping d -> 1/(1+d) is strictly decreasing, so hit order is already
// the relevance order.
func score(hits []index.Hit) []ScoredDocument {
	docs := make([]ScoredDocument, len(hits))
	for i, h := range hits {
		docs[i] = ScoredDocument{
			Document:  h.Document,
			Relevance: 1 / (1 + h.Distance),
		}
	}
	return docs
}
