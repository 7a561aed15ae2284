package index

import "errors"

var (
	// ErrDimensionMismatch indicates a vector whose length differs from the
	// index's configured dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrSnapshotCorrupt indicates a loaded snapshot whose vector and
	// document artifacts disagree. The two artifacts may be missing
	// independently, but a pair that loads with mismatched counts is
	// rejected rather than served desynchronized.
	ErrSnapshotCorrupt = errors.New("snapshot vector/document count mismatch")

	// ErrQdrantUnreachable indicates the Qdrant backend failed its health
	// check during construction.
	ErrQdrantUnreachable = errors.New("qdrant server unreachable")
)
