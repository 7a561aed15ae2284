package index

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// CollectionName is the single Qdrant collection holding corpus documents.
const CollectionName = "blueprint_corpus"

const upsertBatchSize = 100

// Qdrant is a Store backed by a Qdrant collection. Unlike Flat it filters
// by type server-side, so SearchByType returns up to k matches whenever the
// collection holds that many. Persistence is the server's concern; Qdrant
// deliberately does not implement Snapshotter.
type Qdrant struct {
	client    *qdrant.Client
	dimension int
}

// NewQdrant connects to Qdrant, verifies health with retry, and ensures the
// corpus collection exists.
func NewQdrant(ctx context.Context, host string, port int, dimension int) (*Qdrant, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	q := &Qdrant{client: client, dimension: dimension}

	if err := q.healthCheckWithRetry(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrQdrantUnreachable, err)
	}

	if err := q.ensureCollection(ctx); err != nil {
		client.Close()
		return nil, err
	}

	return q, nil
}

func (q *Qdrant) healthCheckWithRetry(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	operation := func() error {
		result, err := q.client.HealthCheck(ctx)
		if err != nil {
			return err
		}
		if result == nil || result.Title == "" {
			return fmt.Errorf("health check returned invalid response")
		}
		return nil
	}

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}

// ensureCollection creates the collection and its type payload index if
// missing. Idempotent.
func (q *Qdrant) ensureCollection(ctx context.Context) error {
	collections, err := q.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	for _, name := range collections {
		if name == CollectionName {
			return nil
		}
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: CollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(q.dimension),
			Distance: qdrant.Distance_Euclid,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	// Without the payload index, type-filtered queries degrade badly.
	_, err = q.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: CollectionName,
		FieldName:      "type",
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
	})
	if err != nil {
		return fmt.Errorf("create type index: %w", err)
	}

	return nil
}

// Add upserts documents as points with UUID identifiers, batched in groups
// of 100, validating every embedding before any network call.
func (q *Qdrant) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	for i, doc := range docs {
		if len(doc.Embedding) != q.dimension {
			return fmt.Errorf("%w: document %d has %d dimensions, expected %d",
				ErrDimensionMismatch, i, len(doc.Embedding), q.dimension)
		}
	}

	for start := 0; start < len(docs); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(docs) {
			end = len(docs)
		}

		batch := docs[start:end]
		points := make([]*qdrant.PointStruct, len(batch))
		for i, doc := range batch {
			payload := map[string]any{
				"text": doc.Text,
				"type": string(doc.Type),
			}
			if doc.Metadata != nil {
				meta, err := json.Marshal(doc.Metadata)
				if err != nil {
					return fmt.Errorf("encode metadata: %w", err)
				}
				payload["metadata_json"] = string(meta)
			}

			points[i] = &qdrant.PointStruct{
				Id:      qdrant.NewIDUUID(uuid.New().String()),
				Vectors: qdrant.NewVectors(doc.Embedding...),
				Payload: qdrant.NewValueMap(payload),
			}
		}

		if err := q.upsertWithRetry(ctx, points); err != nil {
			return fmt.Errorf("upsert batch %d-%d: %w", start, end, err)
		}
	}

	return nil
}

func (q *Qdrant) upsertWithRetry(ctx context.Context, points []*qdrant.PointStruct) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	operation := func() error {
		_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: CollectionName,
			Points:         points,
		})
		return err
	}

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}

// Search queries the collection for the k nearest points. With a Euclid
// collection the returned score is the distance, ascending.
func (q *Qdrant) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	return q.query(ctx, vector, k, nil)
}

// SearchByType filters server-side on the type payload field. This is the
// documented improvement over client-side over-fetch filtering: the result
// under-fills only when the collection genuinely holds fewer matches.
func (q *Qdrant) SearchByType(ctx context.Context, vector []float32, typ DocType, k int) ([]Hit, error) {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("type", string(typ)),
		},
	}
	return q.query(ctx, vector, k, filter)
}

func (q *Qdrant) query(ctx context.Context, vector []float32, k int, filter *qdrant.Filter) ([]Hit, error) {
	if len(vector) != q.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, expected %d",
			ErrDimensionMismatch, len(vector), q.dimension)
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: CollectionName,
		Query:          qdrant.NewQuery(vector...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, result := range results {
		payload := result.Payload

		document := Document{
			Text: payload["text"].GetStringValue(),
			Type: DocType(payload["type"].GetStringValue()),
		}
		if raw := payload["metadata_json"].GetStringValue(); raw != "" {
			var meta map[string]any
			if err := json.Unmarshal([]byte(raw), &meta); err == nil {
				document.Metadata = meta
			}
		}

		hits = append(hits, Hit{
			Document: document,
			Distance: float64(result.Score),
		})
	}

	return hits, nil
}

// Stats counts points overall and per type.
func (q *Qdrant) Stats(ctx context.Context) (*Stats, error) {
	total, err := q.count(ctx, nil)
	if err != nil {
		return nil, err
	}

	byType := make(map[DocType]int)
	for _, typ := range Types {
		n, err := q.count(ctx, &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("type", string(typ))},
		})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			byType[typ] = n
		}
	}

	return &Stats{
		Documents: total,
		Vectors:   total,
		Dimension: q.dimension,
		ByType:    byType,
	}, nil
}

func (q *Qdrant) count(ctx context.Context, filter *qdrant.Filter) (int, error) {
	n, err := q.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: CollectionName,
		Filter:         filter,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("count points: %w", err)
	}
	return int(n), nil
}

// Clear deletes and recreates the collection.
func (q *Qdrant) Clear(ctx context.Context) error {
	if err := q.client.DeleteCollection(ctx, CollectionName); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return q.ensureCollection(ctx)
}

// Health performs a single health check.
func (q *Qdrant) Health(ctx context.Context) error {
	result, err := q.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if result == nil || result.Title == "" {
		return fmt.Errorf("health check returned invalid response")
	}
	return nil
}

// Close closes the client connection.
func (q *Qdrant) Close() error {
	if q.client != nil {
		return q.client.Close()
	}
	return nil
}
