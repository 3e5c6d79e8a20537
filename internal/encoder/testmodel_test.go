package encoder

import (
	"context"
	"errors"

	"github.com/madlrag/ragcore/ai/model/embedding"
)

// fakeEmbeddingModel returns a deterministic vector per input: dimension d
// is (len(text)+d) modulo 7, plus one, so texts of different lengths
// produce vectors pointing in different directions (and not unit-length,
// for normalization tests).
type fakeEmbeddingModel struct {
	dims    int64
	failing bool
}

func newFakeEmbeddingModel() *fakeEmbeddingModel {
	return &fakeEmbeddingModel{dims: 4}
}

func (m *fakeEmbeddingModel) Call(_ context.Context, req *embedding.Request) (*embedding.Response, error) {
	if m.failing {
		return nil, errors.New("fake embedding model: forced failure")
	}

	results := make([]*embedding.Result, 0, len(req.Inputs))
	for i, text := range req.Inputs {
		vec := make([]float64, m.dims)
		for d := range vec {
			vec[d] = float64((len(text)+d)%7 + 1)
		}
		result, err := embedding.NewResult(int64(i), vec, &embedding.ResultMetadata{})
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return embedding.NewResponse(results, &embedding.ResponseMetadata{Model: "fake"})
}

func (m *fakeEmbeddingModel) Dimensions(context.Context) int64 {
	return m.dims
}

func (m *fakeEmbeddingModel) DefaultOptions() *embedding.Options {
	opts, _ := embedding.NewOptions("fake-model")
	return opts
}

func (m *fakeEmbeddingModel) Info() embedding.ModelInfo {
	return embedding.ModelInfo{Provider: "fake"}
}
