package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(text string, typ DocType, vec ...float32) Document {
	return Document{
		Text:      text,
		Type:      typ,
		Metadata:  map[string]any{"name": text},
		Embedding: vec,
	}
}

func TestFlat_AddRejectsDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	f := NewFlat(4)

	err := f.Add(ctx, []Document{
		doc("ok", TypeScheme, 1, 0, 0, 0),
		doc("bad", TypeScheme, 1, 0),
	})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	// Failed Add must not partially mutate the index.
	stats, err := f.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Documents)
	assert.Equal(t, 0, stats.Vectors)
}

func TestFlat_SearchOrdersByAscendingDistance(t *testing.T) {
	ctx := context.Background()
	f := NewFlat(2)

	require.NoError(t, f.Add(ctx, []Document{
		doc("far", TypeScheme, 10, 0),
		doc("near", TypeScheme, 1, 0),
		doc("middle", TypeScheme, 5, 0),
	}))

	hits, err := f.Search(ctx, []float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "near", hits[0].Document.Text)
	assert.Equal(t, "middle", hits[1].Document.Text)
	assert.Equal(t, "far", hits[2].Document.Text)
	assert.True(t, hits[0].Distance <= hits[1].Distance)
	assert.True(t, hits[1].Distance <= hits[2].Distance)
}

func TestFlat_SearchTiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	f := NewFlat(2)

	require.NoError(t, f.Add(ctx, []Document{
		doc("first", TypeScheme, 3, 0),
		doc("second", TypeScheme, 0, 3),
		doc("third", TypeScheme, -3, 0),
	}))

	hits, err := f.Search(ctx, []float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "first", hits[0].Document.Text)
	assert.Equal(t, "second", hits[1].Document.Text)
	assert.Equal(t, "third", hits[2].Document.Text)
}

func TestFlat_SearchSaturatesAtIndexSize(t *testing.T) {
	ctx := context.Background()
	f := NewFlat(2)

	require.NoError(t, f.Add(ctx, []Document{
		doc("a", TypeScheme, 1, 0),
		doc("b", TypeLegal, 0, 1),
	}))

	hits, err := f.Search(ctx, []float32{0, 0}, 50)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestFlat_SearchEmptyIndex(t *testing.T) {
	f := NewFlat(2)
	hits, err := f.Search(context.Background(), []float32{0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFlat_SearchIdempotent(t *testing.T) {
	ctx := context.Background()
	f := NewFlat(2)

	require.NoError(t, f.Add(ctx, []Document{
		doc("a", TypeScheme, 2, 1),
		doc("b", TypeFunding, 1, 2),
		doc("c", TypeLegal, 0, 1),
	}))

	query := []float32{1, 1}
	first, err := f.Search(ctx, query, 3)
	require.NoError(t, err)
	second, err := f.Search(ctx, query, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFlat_SearchRejectsWrongQueryDimension(t *testing.T) {
	f := NewFlat(4)
	_, err := f.Search(context.Background(), []float32{1, 2}, 3)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

// The concrete scenario from the retrieval design: 3 scheme + 2 funding
// documents with 4-dimension embeddings; a funding-typed search with k=2
// returns exactly the 2 funding documents, ascending by distance.
func TestFlat_SearchByTypeScenario(t *testing.T) {
	ctx := context.Background()
	f := NewFlat(4)

	require.NoError(t, f.Add(ctx, []Document{
		doc("scheme-a", TypeScheme, 1, 0, 0, 0),
		doc("scheme-b", TypeScheme, 0, 1, 0, 0),
		doc("scheme-c", TypeScheme, 0, 0, 1, 0),
		doc("funding-near", TypeFunding, 0.1, 0, 0, 0),
		doc("funding-far", TypeFunding, 0, 0, 0, 5),
	}))

	hits, err := f.SearchByType(ctx, []float32{0, 0, 0, 0}, TypeFunding, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "funding-near", hits[0].Document.Text)
	assert.Equal(t, "funding-far", hits[1].Document.Text)
	for _, hit := range hits {
		assert.Equal(t, TypeFunding, hit.Document.Type)
	}
	assert.LessOrEqual(t, hits[0].Distance, hits[1].Distance)
}

func TestFlat_SearchByTypeNeverReturnsOtherTypes(t *testing.T) {
	ctx := context.Background()
	f := NewFlat(2)

	docs := []Document{
		doc("s1", TypeScheme, 1, 1),
		doc("l1", TypeLegal, 1, 2),
		doc("f1", TypeFunding, 2, 1),
		doc("m1", TypeMarket, 2, 2),
		doc("l2", TypeLegal, 3, 3),
	}
	require.NoError(t, f.Add(ctx, docs))

	for _, typ := range Types {
		hits, err := f.SearchByType(ctx, []float32{0, 0}, typ, 10)
		require.NoError(t, err)
		for _, hit := range hits {
			assert.Equal(t, typ, hit.Document.Type)
		}
	}
}

// With over-fetch fixed at 3k and no backfill, matching documents ranked
// beyond the window are not returned.
func TestFlat_SearchByTypeNoBackfill(t *testing.T) {
	ctx := context.Background()
	f := NewFlat(1)

	// Three non-matching documents closer than the only funding document:
	// over-fetch for k=1 is 3, so the funding document falls outside it.
	require.NoError(t, f.Add(ctx, []Document{
		doc("s1", TypeScheme, 1),
		doc("s2", TypeScheme, 2),
		doc("s3", TypeScheme, 3),
		doc("f1", TypeFunding, 10),
	}))

	hits, err := f.SearchByType(ctx, []float32{0}, TypeFunding, 1)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFlat_StatsAndClear(t *testing.T) {
	ctx := context.Background()
	f := NewFlat(2)

	require.NoError(t, f.Add(ctx, []Document{
		doc("s1", TypeScheme, 1, 0),
		doc("s2", TypeScheme, 0, 1),
		doc("f1", TypeFunding, 1, 1),
	}))

	stats, err := f.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Documents)
	assert.Equal(t, 3, stats.Vectors)
	assert.Equal(t, 2, stats.ByType[TypeScheme])
	assert.Equal(t, 1, stats.ByType[TypeFunding])

	require.NoError(t, f.Clear(ctx))
	stats, err = f.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Documents)
	assert.Equal(t, 0, stats.Vectors)
}

func TestFlat_StoredDocumentsDropEmbeddings(t *testing.T) {
	ctx := context.Background()
	f := NewFlat(2)

	require.NoError(t, f.Add(ctx, []Document{doc("a", TypeScheme, 1, 0)}))

	hits, err := f.Search(ctx, []float32{0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Nil(t, hits[0].Document.Embedding)
}
