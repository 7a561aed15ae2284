package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startforge/blueprint/internal/corpus"
	"github.com/startforge/blueprint/internal/generation"
	"github.com/startforge/blueprint/internal/index"
	"github.com/startforge/blueprint/internal/retriever"
)

// fakeSource serves a fixed corpus and counts loads.
type fakeSource struct {
	loads atomic.Int32
	err   error
}

func (f *fakeSource) LoadAll(ctx context.Context) (map[index.DocType][]corpus.Record, error) {
	f.loads.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return map[index.DocType][]corpus.Record{
		index.TypeScheme: {
			{"name": "Seed Fund Scheme", "description": "Grants for prototypes", "eligibility": "DPIIT", "funding_amount": "50L", "category": "seed", "source": "test"},
			{"name": "Credit Guarantee", "description": "Collateral-free loans", "eligibility": "MSME", "funding_amount": "2Cr", "category": "debt", "source": "test"},
		},
		index.TypeLegal: {
			{"type": "Private Limited", "description": "Standard structure", "requirements": []string{"DIN", "PAN"}, "cost_range": "15k"},
		},
		index.TypeFunding: {
			{"type": "Angel", "description": "Individual investors", "typical_amount": "25L", "stage": "Seed"},
		},
		index.TypeMarket: {
			{"name": "Ecosystem", "description": "Third largest startup ecosystem"},
		},
	}, nil
}

// fakeEmbedder returns deterministic 4-dim vectors and counts batch calls.
type fakeEmbedder struct {
	batches atomic.Int32
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.batches.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = vectorFor(t)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	return vectorFor(text), nil
}

func vectorFor(text string) []float32 {
	return []float32{float32(len(text)%7) + 1, float32(len(text)%3) + 1, 1, 0}
}

type fakeCompleter struct{ response string }

func (f fakeCompleter) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	return f.response, nil
}

const cannedBlueprint = `{"startup_overview": {"industry": "AgriTech"}, "export_summary": "Farm-to-fork logistics platform."}`

func newTestEngine(t *testing.T, src *fakeSource, emb *fakeEmbedder, snapshotDir string) *Engine {
	t.Helper()
	store := index.NewFlat(4)
	r := retriever.New(store, emb, nil)
	g := generation.NewGenerator(fakeCompleter{response: cannedBlueprint}, r, nil)
	return New(Config{
		Source:      src,
		Embedder:    emb,
		Store:       store,
		Retriever:   r,
		Generator:   g,
		SnapshotDir: snapshotDir,
	})
}

func TestInitialize_BuildsIndex(t *testing.T) {
	src := &fakeSource{}
	emb := &fakeEmbedder{}
	e := newTestEngine(t, src, emb, "")

	require.NoError(t, e.Initialize(context.Background(), false))
	assert.True(t, e.Initialized())

	stats, err := e.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.Initialized)
	require.NotNil(t, stats.Index)
	assert.Equal(t, 5, stats.Index.Documents)
	assert.Equal(t, 2, stats.Index.ByType[index.TypeScheme])
}

func TestInitialize_SecondCallIsNoOp(t *testing.T) {
	src := &fakeSource{}
	e := newTestEngine(t, src, &fakeEmbedder{}, "")

	require.NoError(t, e.Initialize(context.Background(), false))
	require.NoError(t, e.Initialize(context.Background(), false))

	assert.Equal(t, int32(1), src.loads.Load())
}

func TestInitialize_ConcurrentCallsRebuildOnce(t *testing.T) {
	src := &fakeSource{}
	e := newTestEngine(t, src, &fakeEmbedder{}, "")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = e.Initialize(context.Background(), false)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), src.loads.Load())
}

func TestInitialize_ForceReloads(t *testing.T) {
	src := &fakeSource{}
	e := newTestEngine(t, src, &fakeEmbedder{}, "")

	require.NoError(t, e.Initialize(context.Background(), false))
	require.NoError(t, e.Initialize(context.Background(), true))

	assert.Equal(t, int32(2), src.loads.Load())
}

func TestInitialize_SnapshotSkipsRebuild(t *testing.T) {
	dir := t.TempDir()

	first := &fakeSource{}
	e1 := newTestEngine(t, first, &fakeEmbedder{}, dir)
	require.NoError(t, e1.Initialize(context.Background(), false))
	require.Equal(t, int32(1), first.loads.Load())

	// A fresh engine over the same snapshot dir restores without touching
	// the source.
	second := &fakeSource{}
	e2 := newTestEngine(t, second, &fakeEmbedder{}, dir)
	require.NoError(t, e2.Initialize(context.Background(), false))

	assert.Equal(t, int32(0), second.loads.Load())
	stats, err := e2.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Index.Documents)
}

func TestInitialize_ForceBypassesSnapshot(t *testing.T) {
	dir := t.TempDir()

	e1 := newTestEngine(t, &fakeSource{}, &fakeEmbedder{}, dir)
	require.NoError(t, e1.Initialize(context.Background(), false))

	src := &fakeSource{}
	e2 := newTestEngine(t, src, &fakeEmbedder{}, dir)
	require.NoError(t, e2.Initialize(context.Background(), true))

	assert.Equal(t, int32(1), src.loads.Load())
}

func TestInitialize_EmbedFailureLeavesIndexUntouched(t *testing.T) {
	src := &fakeSource{}
	emb := &fakeEmbedder{err: errors.New("provider down")}
	e := newTestEngine(t, src, emb, "")

	err := e.Initialize(context.Background(), false)
	require.Error(t, err)
	assert.False(t, e.Initialized())

	stats, statsErr := e.Stats(context.Background())
	require.NoError(t, statsErr)
	assert.False(t, stats.Initialized)
	assert.Nil(t, stats.Index)
}

func TestInitialize_SourceErrorPropagates(t *testing.T) {
	src := &fakeSource{err: errors.New("github unreachable")}
	e := newTestEngine(t, src, &fakeEmbedder{}, "")

	err := e.Initialize(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load corpus")
}

func TestGenerateBlueprint_LazilyInitializes(t *testing.T) {
	src := &fakeSource{}
	e := newTestEngine(t, src, &fakeEmbedder{}, "")

	content, err := e.GenerateBlueprint(context.Background(), "cold chain for farm produce")
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.loads.Load())
	require.NotNil(t, content.StartupOverview)
	assert.Equal(t, "AgriTech", content.StartupOverview.Industry)
}

func TestRetrieve_LazilyInitializes(t *testing.T) {
	src := &fakeSource{}
	e := newTestEngine(t, src, &fakeEmbedder{}, "")

	docs, err := e.Retrieve(context.Background(), "funding options", 3)
	require.NoError(t, err)

	assert.True(t, e.Initialized())
	assert.NotEmpty(t, docs)
}

func TestRetrieveContext_CategorizedResults(t *testing.T) {
	e := newTestEngine(t, &fakeSource{}, &fakeEmbedder{}, "")

	bc, err := e.RetrieveContext(context.Background(), "dairy supply chain startup")
	require.NoError(t, err)

	assert.Len(t, bc.Schemes, 2)
	assert.Len(t, bc.Legal, 1)
	assert.Len(t, bc.Funding, 1)
	assert.Len(t, bc.Market, 1)
}

func TestStats_BeforeInitialization(t *testing.T) {
	e := newTestEngine(t, &fakeSource{}, &fakeEmbedder{}, "")

	stats, err := e.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, stats.Initialized)
	assert.Nil(t, stats.Index)
}
