package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	c := &Config{EmbeddingModelName: "m", VectorIndexName: "v"}
	require.NoError(t, c.Validate())

	assert.Equal(t, 15, c.CandidatesToRetrieve)
	assert.Equal(t, 5, c.FinalResults)
	assert.Equal(t, 3, c.TopK)
	assert.Equal(t, 6, c.QueryExpansions)
	assert.Equal(t, 500*time.Millisecond, c.LLMRateLimitSleep)
	assert.Equal(t, 2, c.LLMRetries)
	assert.Equal(t, 4, c.LLMMaxConcurrency)
	assert.Equal(t, 300*time.Second, c.CacheTTL)
	assert.NotEmpty(t, c.Prompts.Normalize)
}

func TestValidateRejectsImpossibleValues(t *testing.T) {
	c := &Config{EmbeddingModelName: "m", VectorIndexName: "v", CandidatesToRetrieve: -1}
	assert.Error(t, c.Validate())
}

func TestValidateRequiresEmbeddingModelAndIndex(t *testing.T) {
	c := &Config{}
	assert.Error(t, c.Validate())
}

func TestValidateDefaultsZeroRetries(t *testing.T) {
	c := &Config{EmbeddingModelName: "m", VectorIndexName: "v", LLMRetries: 0}
	require.NoError(t, c.Validate())
	assert.Equal(t, 2, c.LLMRetries, "zero-value sentinel defaults like the teacher's validate() idiom")
}
