// Package vectorstore implements the vector store adapter (C4): a thin
// wrapper over the document store's approximate-nearest-neighbor operator
// that takes a precomputed query vector and an optional equality metadata
// filter, and passes scores through unmodified. Grounded on the teacher's
// qdrant store.go query-building and payload-conversion logic, reshaped
// from that file's text-in/embed-internally RetrievalRequest to the
// vector-in/vector-out signature this component's contract requires.
package vectorstore

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/madlrag/ragcore/pkg/math"
	"github.com/madlrag/ragcore/pkg/ptr"
)

// Hit is one (score, full_document) pair returned by an ANN query, ordered
// by descending score.
type Hit struct {
	ID       string
	Score    float64
	Document map[string]any
}

// Filter is an optional equality metadata filter: only records whose
// indexed metadata field Key equals Value are returned.
type Filter struct {
	Key   string
	Value string
}

// Adapter wraps a qdrant.Client bound to a single collection (the "path"
// named in the external vector store contract, e.g. "main_vec").
type Adapter struct {
	client     *qdrant.Client
	collection string
}

// New builds an Adapter for the given collection. The collection must be
// pre-created externally; this adapter never creates or alters schema.
func New(client *qdrant.Client, collection string) (*Adapter, error) {
	if client == nil {
		return nil, fmt.Errorf("vectorstore: client is required")
	}
	if collection == "" {
		return nil, fmt.Errorf("vectorstore: collection name is required")
	}
	return &Adapter{client: client, collection: collection}, nil
}

// Query issues an ANN search for queryVector, requesting numCandidates
// candidates from the index and returning at most limit hits, optionally
// restricted to records whose metadata field equals filter's value. The
// adapter does not modify scores; it passes through whatever the store
// returns.
func (a *Adapter) Query(ctx context.Context, queryVector []float64, numCandidates, limit int, filter *Filter) ([]Hit, error) {
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("vectorstore: query vector cannot be empty")
	}
	if limit <= 0 {
		limit = 1
	}

	points := &qdrant.QueryPoints{
		CollectionName: a.collection,
		Query:          qdrant.NewQuery(math.ConvertSlice[float64, float32](queryVector)...),
		Limit:          ptr.Pointer(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if numCandidates > 0 {
		points.Params = &qdrant.SearchParams{
			HnswEf: ptr.Pointer(uint64(numCandidates)),
		}
	}
	if filter != nil && filter.Key != "" {
		points.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchKeyword(filter.Key, filter.Value),
			},
		}
	}

	scored, err := a.client.Query(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("vectorstore: query failed: %w", err)
	}

	hits := make([]Hit, 0, len(scored))
	for _, p := range scored {
		hit := Hit{Score: float64(p.GetScore())}
		if id := p.GetId(); id != nil {
			hit.ID = id.GetUuid()
		}
		hit.Document = convertPayloadToMetadata(p.GetPayload())
		hits = append(hits, hit)
	}
	return hits, nil
}

// Upsert writes id -> (vector, payload) into the collection.
func (a *Adapter) Upsert(ctx context.Context, id string, vector []float64, payload map[string]any) error {
	value, err := qdrant.TryValueMap(payload)
	if err != nil {
		return fmt.Errorf("vectorstore: failed to convert payload: %w", err)
	}

	_, err = a.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: a.collection,
		Wait:           ptr.Pointer(true),
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(math.ConvertSlice[float64, float32](vector)...),
				Payload: value,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("vectorstore: upsert failed: %w", err)
	}
	return nil
}

// Delete removes the point with the given id.
func (a *Adapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: a.collection,
		Points:         qdrant.NewPointsSelectorIDs([]*qdrant.PointId{qdrant.NewID(id)}),
	})
	if err != nil {
		return fmt.Errorf("vectorstore: delete failed: %w", err)
	}
	return nil
}

func convertQdrantValue(value *qdrant.Value) any {
	if value == nil {
		return nil
	}
	switch kind := value.Kind.(type) {
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		return convertQdrantStruct(kind.StructValue)
	case *qdrant.Value_ListValue:
		return convertQdrantList(kind.ListValue)
	default:
		return nil
	}
}

func convertQdrantStruct(s *qdrant.Struct) map[string]any {
	if s == nil || s.Fields == nil {
		return nil
	}
	result := make(map[string]any, len(s.Fields))
	for key, val := range s.Fields {
		result[key] = convertQdrantValue(val)
	}
	return result
}

func convertQdrantList(l *qdrant.ListValue) []any {
	if l == nil || len(l.Values) == 0 {
		return nil
	}
	result := make([]any, len(l.Values))
	for i, val := range l.Values {
		result[i] = convertQdrantValue(val)
	}
	return result
}

func convertPayloadToMetadata(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	metadata := make(map[string]any, len(payload))
	for key, value := range payload {
		if value == nil {
			continue
		}
		metadata[key] = convertQdrantValue(value)
	}
	return metadata
}
