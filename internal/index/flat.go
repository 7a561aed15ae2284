package index

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// typeOverfetch is the multiplier applied to k before type filtering.
// SearchByType fetches 3k nearest neighbors and keeps the first k of the
// requested type; it does not backfill, so it can under-fill when matching
// documents rank beyond the over-fetch window.
const typeOverfetch = 3

// Flat is a brute-force vector index over parallel vector and document
// slices. It is append-only: entries are never reordered or deleted except
// by Clear. A RWMutex serializes the single writer against concurrent
// searches.
type Flat struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	docs      []Document
}

// NewFlat creates an empty flat index for vectors of the given dimension.
func NewFlat(dimension int) *Flat {
	return &Flat{dimension: dimension}
}

// Add validates and appends documents with their embeddings. Validation
// covers the whole batch before any mutation, so a failed Add leaves the
// index untouched. The stored copy of each document has its embedding
// stripped.
func (f *Flat) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, doc := range docs {
		if len(doc.Embedding) != f.dimension {
			return fmt.Errorf("%w: document %d has %d dimensions, expected %d",
				ErrDimensionMismatch, i, len(doc.Embedding), f.dimension)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, doc := range docs {
		f.vectors = append(f.vectors, doc.Embedding)
		doc.Embedding = nil
		f.docs = append(f.docs, doc)
	}
	return nil
}

// Search scans every stored vector and returns the min(k, size) nearest
// hits by squared Euclidean distance, ascending, with insertion order
// breaking exact-distance ties.
func (f *Flat) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	if len(vector) != f.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, expected %d",
			ErrDimensionMismatch, len(vector), f.dimension)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if k <= 0 || len(f.vectors) == 0 {
		return nil, nil
	}

	order := make([]int, len(f.vectors))
	dists := make([]float64, len(f.vectors))
	for i, v := range f.vectors {
		order[i] = i
		dists[i] = squaredL2(vector, v)
	}

	// Stable sort over insertion order keeps ties deterministic.
	sort.SliceStable(order, func(a, b int) bool {
		return dists[order[a]] < dists[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}

	hits := make([]Hit, k)
	for i := 0; i < k; i++ {
		idx := order[i]
		hits[i] = Hit{Document: f.docs[idx], Distance: dists[idx]}
	}
	return hits, nil
}

// SearchByType over-fetches 3k nearest neighbors, filters by exact type
// match and returns the first k of the filtered, distance-ordered subset.
func (f *Flat) SearchByType(ctx context.Context, vector []float32, typ DocType, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}

	all, err := f.Search(ctx, vector, k*typeOverfetch)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, k)
	for _, hit := range all {
		if hit.Document.Type != typ {
			continue
		}
		hits = append(hits, hit)
		if len(hits) == k {
			break
		}
	}
	return hits, nil
}

// Stats returns document, vector and per-type counts.
func (f *Flat) Stats(ctx context.Context) (*Stats, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	byType := make(map[DocType]int)
	for _, doc := range f.docs {
		byType[doc.Type]++
	}

	return &Stats{
		Documents: len(f.docs),
		Vectors:   len(f.vectors),
		Dimension: f.dimension,
		ByType:    byType,
	}, nil
}

// Clear resets the index to empty. Irreversible.
func (f *Flat) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vectors = nil
	f.docs = nil
	return nil
}

// Dimension returns the configured vector dimension.
func (f *Flat) Dimension() int {
	return f.dimension
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
