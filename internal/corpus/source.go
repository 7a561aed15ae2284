// Package corpus loads raw knowledge records and prepares them as typed
// documents for ingestion. Sources are simple I/O collaborators; the
// engine drives chunking, embedding and indexing.
package corpus

import (
	"context"

	"github.com/startforge/blueprint/internal/index"
)

// Record is one raw corpus entry: a field mapping whose shape depends on
// the category it belongs to.
type Record map[string]any

// Source supplies raw records grouped by document type.
type Source interface {
	LoadAll(ctx context.Context) (map[index.DocType][]Record, error)
}

// Multi merges several sources, later sources appending to earlier ones.
type Multi []Source

func (m Multi) LoadAll(ctx context.Context) (map[index.DocType][]Record, error) {
	merged := make(map[index.DocType][]Record)
	for _, src := range m {
		data, err := src.LoadAll(ctx)
		if err != nil {
			return nil, err
		}
		for typ, records := range data {
			merged[typ] = append(merged[typ], records...)
		}
	}
	return merged, nil
}
