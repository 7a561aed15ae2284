package index

import "context"

// Store is the vector index contract consumed by the retriever and engine.
// Add is single-writer; implementations serialize concurrent readers
// internally.
type Store interface {
	// Add appends documents carrying transient embeddings, in input order.
	// It fails without mutating the index if any embedding's length differs
	// from the configured dimension. Stored documents are stripped of their
	// embeddings.
	Add(ctx context.Context, docs []Document) error

	// Search returns up to k hits ordered by ascending distance. Ties on
	// exact-equal distance preserve insertion order. Searching an empty
	// index returns no hits, not an error.
	Search(ctx context.Context, vector []float32, k int) ([]Hit, error)

	// SearchByType returns up to k hits of the given type, ordered by
	// ascending distance. It may return fewer than k hits even when the
	// index holds k or more matching documents.
	SearchByType(ctx context.Context, vector []float32, typ DocType, k int) ([]Hit, error)

	// Stats reports document, vector and per-type counts.
	Stats(ctx context.Context) (*Stats, error)

	// Clear irreversibly resets the index to empty.
	Clear(ctx context.Context) error
}

// Snapshotter is implemented by stores that persist to local snapshots.
// The engine snapshots through this interface when the configured backend
// supports it; server-backed stores simply don't implement it.
type Snapshotter interface {
	Save(dir string) error
	Load(dir string) error
}

var (
	_ Store       = (*Flat)(nil)
	_ Store       = (*Qdrant)(nil)
	_ Snapshotter = (*Flat)(nil)
)
