// Package encoder implements the embedding encoder (C1): a process-wide
// state holding a loaded embedding model, exposing a single encode
// operation. Grounded on ai/model/embedding's Client/ClientRequest builder
// and ai/extensions/models/openai's EmbeddingModel, with the
// whitespace-normalize/L2-normalize/empty-on-failure contract from
// original_source's embeddings.py.
package encoder

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"

	"github.com/madlrag/ragcore/ai/model/embedding"
	pkgsync "github.com/madlrag/ragcore/pkg/sync"
)

// ErrNotLoaded is returned by Encode when called before Load.
var ErrNotLoaded = errors.New("encoder: model not loaded")

// Encoder is the process-wide embedding state. It is read-only after Load,
// so concurrent Encode calls are safe without additional locking.
type Encoder struct {
	mu     sync.RWMutex
	client *embedding.Client
	model  embedding.Model
	pool   pkgsync.Pool
}

// New creates an unloaded Encoder. Call Load before Encode.
func New() *Encoder {
	return &Encoder{pool: pkgsync.DefaultPool()}
}

// WithPool overrides the worker pool used to dispatch CPU-bound encode
// calls, so a batch-encode call does not block the cooperative scheduler
// per the concurrency model. Accepts any of pkg/sync/pool's backends
// (no-pool, conc, ants, workerpool).
func (e *Encoder) WithPool(p pkgsync.Pool) *Encoder {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pool = p
	return e
}

// Load installs model as the process-wide embedding model. Safe to call
// once at startup; calling it again swaps the model for subsequent Encode
// calls.
func (e *Encoder) Load(model embedding.Model) error {
	if model == nil {
		return errors.New("encoder: model cannot be nil")
	}
	client, err := embedding.NewClientWithModel(model)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.model = model
	e.client = client
	return nil
}

// Loaded reports whether Load has been called successfully.
func (e *Encoder) Loaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model != nil
}

// Encode whitespace-normalizes text, encodes it, and returns an
// L2-normalized vector. On any encode failure it returns an empty vector
// rather than propagating the error, per the encoder's contract — except
// for ErrNotLoaded, which always propagates since it is a caller
// precondition violation, not an encode failure.
func (e *Encoder) Encode(ctx context.Context, text string) ([]float64, error) {
	e.mu.RLock()
	client := e.client
	e.mu.RUnlock()

	if client == nil {
		return nil, ErrNotLoaded
	}

	normalized := normalizeWhitespace(text)

	vec, _, err := client.
		EmbedWithText(normalized).
		Call().
		Embedding(ctx)
	if err != nil {
		return []float64{}, nil
	}

	return l2Normalize(vec), nil
}

// EncodeBatch encodes each of texts through the bounded worker pool so
// CPU-bound batch encoding does not block the cooperative scheduler.
// Individual failures yield an empty vector at that index, matching
// Encode's never-propagate contract; only ErrNotLoaded propagates.
func (e *Encoder) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	e.mu.RLock()
	loaded := e.model != nil
	p := e.pool
	e.mu.RUnlock()

	if !loaded {
		return nil, ErrNotLoaded
	}

	results := make([][]float64, len(texts))
	var wg sync.WaitGroup
	wg.Add(len(texts))

	for i, text := range texts {
		i, text := i, text
		err := p.Submit(func() {
			defer wg.Done()
			vec, encErr := e.Encode(ctx, text)
			if encErr != nil {
				vec = []float64{}
			}
			results[i] = vec
		})
		if err != nil {
			wg.Done()
			results[i] = []float64{}
		}
	}

	wg.Wait()
	return results, nil
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func l2Normalize(v []float64) []float64 {
	if len(v) == 0 {
		return v
	}
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// Cosine computes cosine similarity between two equal-length vectors.
// Returns 0 if either vector is empty or mismatched in length.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
