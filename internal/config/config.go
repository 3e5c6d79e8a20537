// Package config loads the configuration surface named in the retrieval
// and ingestion specification from the environment, validating and
// defaulting it in place the way the teacher's VectorStoreConfig and
// MultiExpanderConfig types do.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Config is the full external configuration surface.
type Config struct {
	EmbeddingModelName string
	LLMModelName       string
	VectorIndexName    string

	CandidatesToRetrieve int
	FinalResults         int
	TopK                 int

	LLMKey                string
	LLMRerankEnabled      bool
	QueryExpansionEnabled bool
	QueryExpansions       int

	LLMRateLimitSleep time.Duration
	LLMRetries        int
	LLMMaxConcurrency int

	CacheTTL time.Duration

	Prompts Prompts
}

// Prompts holds every LLM prompt template named in the configuration
// surface. Left as plain strings, per the design note's instruction to
// move global prompt templates into an explicit configuration structure.
type Prompts struct {
	Normalize          string
	Expand             string
	Rerank             string
	FinalRank          string
	MADL               string
	DedupeSummary      string
	DedupeVerifyMethod string // per-flavor: adds "different locators => UNIQUE" guidance
	DedupeVerifyCase   string
}

// Load reads configuration from the environment and applies defaults via
// Validate. Returns an error for values that cannot be made valid.
func Load() (*Config, error) {
	c := &Config{
		EmbeddingModelName: os.Getenv("EMBEDDING_MODEL_NAME"),
		LLMModelName:       os.Getenv("LLM_MODEL_NAME"),
		VectorIndexName:    os.Getenv("VECTOR_INDEX_NAME"),
		LLMKey:             os.Getenv("LLM_KEY"),
	}

	c.CandidatesToRetrieve = getIntEnv("CANDIDATES_TO_RETRIEVE", 0)
	c.FinalResults = getIntEnv("FINAL_RESULTS", 0)
	c.TopK = getIntEnv("TOP_K", 0)
	c.LLMRerankEnabled = getBoolEnv("LLM_RERANK_ENABLED", true)
	c.QueryExpansionEnabled = getBoolEnv("QUERY_EXPANSION_ENABLED", true)
	c.QueryExpansions = getIntEnv("QUERY_EXPANSIONS", 0)
	c.LLMRetries = getIntEnv("LLM_RETRIES", 0)
	c.LLMMaxConcurrency = getIntEnv("LLM_MAX_CONCURRENCY", 0)

	if v := os.Getenv("LLM_RATE_LIMIT_SLEEP"); v != "" {
		if secs := cast.ToFloat64(v); secs > 0 {
			c.LLMRateLimitSleep = time.Duration(secs * float64(time.Second))
		}
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if secs := cast.ToInt(v); secs > 0 {
			c.CacheTTL = time.Duration(secs) * time.Second
		}
	}

	c.Prompts = defaultPrompts()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate fills in defaults for unset fields and rejects values that can
// never be valid, mirroring the teacher's validate()-mutates-in-place
// idiom. Unset numeric fields get defaults; it returns an error for a
// negative value and for an empty EmbeddingModelName or VectorIndexName.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	if c.CandidatesToRetrieve < 0 {
		return errors.New("config: candidates to retrieve must not be negative")
	}
	if c.CandidatesToRetrieve == 0 {
		c.CandidatesToRetrieve = 15
	}

	if c.FinalResults < 0 {
		return errors.New("config: final results must not be negative")
	}
	if c.FinalResults == 0 {
		c.FinalResults = 5
	}

	if c.TopK < 0 {
		return errors.New("config: top k must not be negative")
	}
	if c.TopK == 0 {
		c.TopK = 3
	}

	if c.QueryExpansions < 0 {
		return errors.New("config: query expansions must not be negative")
	}
	if c.QueryExpansions == 0 {
		c.QueryExpansions = 6
	}

	if c.LLMRateLimitSleep < 0 {
		return errors.New("config: llm rate limit sleep must not be negative")
	}
	if c.LLMRateLimitSleep == 0 {
		c.LLMRateLimitSleep = 500 * time.Millisecond
	}

	if c.LLMRetries < 0 {
		return errors.New("config: llm retries must not be negative")
	}
	if c.LLMRetries == 0 {
		c.LLMRetries = 2
	}

	if c.LLMMaxConcurrency < 0 {
		return errors.New("config: llm max concurrency must not be negative")
	}
	if c.LLMMaxConcurrency == 0 {
		c.LLMMaxConcurrency = 4
	}

	if c.CacheTTL < 0 {
		return errors.New("config: cache ttl must not be negative")
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 300 * time.Second
	}

	if strings.TrimSpace(c.EmbeddingModelName) == "" {
		return errors.New("config: EMBEDDING_MODEL_NAME is required")
	}
	if strings.TrimSpace(c.VectorIndexName) == "" {
		return errors.New("config: VECTOR_INDEX_NAME is required")
	}
	if strings.TrimSpace(c.LLMModelName) == "" {
		c.LLMModelName = "gpt-4o-mini"
	}

	if c.Prompts == (Prompts{}) {
		c.Prompts = defaultPrompts()
	}

	return nil
}

func getIntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return cast.ToInt(v)
}

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return cast.ToBool(v)
}

func defaultPrompts() Prompts {
	return Prompts{
		Normalize: "Correct only spelling and grammar in the following query. " +
			"Preserve wording and intent. Return a single corrected sentence with no extra text.\n\nQuery: {{.Query}}",
		Expand: "Generate exactly {{.Number}} comma-separated paraphrases of the following search query. " +
			"Preserve the original intent. Return only the paraphrases, comma-separated, no numbering.\n\nQuery: {{.Query}}",
		Rerank: "Given the user query and candidate records below, return the candidate IDs " +
			"ordered from most to least relevant, one per line.\n\nQuery: {{.Query}}\n\nCandidates:\n{{.Candidates}}",
		FinalRank: "Given the user query and the candidate records below, select up to {{.TopK}} most relevant " +
			"and return one line per candidate as \"<id> | <score>\" with score in [0,100], highest first.\n\n" +
			"Query: {{.Query}}\n\nCandidates:\n{{.Candidates}}",
		MADL: "Produce a JSON object describing the automation record below with fields: method_name, " +
			"summary (<=35 words), description, intent, params (map), applies, returns, keywords (<=15), " +
			"owner, example_usage, created, last_updated.\n\nSource:\n{{.Source}}",
		DedupeSummary: "Summarize the intent of the following automation record in exactly 12 words or fewer.\n\n{{.Source}}",
		DedupeVerifyMethod: "Compare the new automation method against the existing candidates below. " +
			"Reply with exactly one word: DUPLICATE if it automates the same action with the same locators, " +
			"UNIQUE if the locators or action differ.\n\nNew:\n{{.New}}\n\nExisting:\n{{.Existing}}",
		DedupeVerifyCase: "Compare the new test case against the existing candidates below. " +
			"Reply with exactly one word: DUPLICATE if it covers the same scenario, UNIQUE otherwise.\n\n" +
			"New:\n{{.New}}\n\nExisting:\n{{.Existing}}",
	}
}
