// Package dedupe implements the dedupe pipeline (C9): summarize a
// candidate's intent, search the vector store for similar existing
// records, and ask the LLM to verify whether the closest match is a true
// duplicate. Every stage fails open — on any ambiguity or error the
// candidate is treated as UNIQUE — since the pipeline's job is to catch
// obvious duplicates, not to gate ingestion on a flaky LLM call.
// Grounded on original_source's dedupe_summary.py and
// dedupe_verifier.py.
package dedupe

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/madlrag/ragcore/internal/encoder"
	"github.com/madlrag/ragcore/internal/llm"
	"github.com/madlrag/ragcore/internal/record"
	"github.com/madlrag/ragcore/internal/vectorstore"
)

const (
	summaryWordMinimum  = 8
	summaryWordTake     = 12
	fallbackClip        = 80
	searchNumCandidates = 50
	searchLimit         = 3
)

// Pipeline wires the LLM gateway, embedding encoder, and vector store
// adapter needed to run dedupe checks.
type Pipeline struct {
	Gateway    *llm.Gateway
	Model      llm.Model
	Encoder    *encoder.Encoder
	Store      *vectorstore.Adapter
	Enabled    bool
	APIKey     string
	MaxRetries int
	RetrySleep time.Duration
}

// Match is one existing record found to be similar to the candidate.
type Match struct {
	ID    string
	Score float64
	Name  string
	Core  record.Core
}

// Verdict is the outcome of running the pipeline against one candidate.
type Verdict struct {
	Duplicate bool
	MatchID   string
	Summary   string
}

// Summarize produces a short (~12 word) intent summary of the candidate
// for use as a dedupe search query. On LLM failure, or if the returned
// summary is shorter than summaryWordMinimum words, it falls back to a
// whitespace-collapsed, 80-char-truncated concatenation of description
// and steps.
func (p *Pipeline) Summarize(ctx context.Context, description, steps string) string {
	fallback := fallbackSummary(description, steps)

	if !p.Enabled || p.APIKey == "" {
		return fallback
	}

	prompt := "Summarize the following test intent in about 12 words:\n\n" +
		description + "\n" + steps

	out, err := p.Gateway.Call(ctx, p.Model, prompt)
	if err != nil {
		return fallback
	}

	words := strings.Fields(strings.TrimSpace(out))
	if len(words) < summaryWordMinimum {
		return fallback
	}

	if len(words) > summaryWordTake {
		words = words[:summaryWordTake]
	}
	return strings.Join(words, " ")
}

func fallbackSummary(description, steps string) string {
	collapsed := strings.Join(strings.Fields(description+" "+steps), " ")
	if len(collapsed) > fallbackClip {
		collapsed = collapsed[:fallbackClip]
	}
	return collapsed
}

// Search encodes summary and queries the vector store for the closest
// existing records, with no metadata filter, per the dedupe search
// contract (numCandidates=50, limit=3).
func (p *Pipeline) Search(ctx context.Context, summary string) ([]vectorstore.Hit, error) {
	vec, err := p.Encoder.Encode(ctx, summary)
	if err != nil {
		return nil, err
	}
	if len(vec) == 0 {
		return nil, nil
	}
	return p.Store.Query(ctx, vec, searchNumCandidates, searchLimit, nil)
}

// Verify asks the LLM whether candidateSummary describes the same test
// intent as the closest match's stored name. It fails open to UNIQUE
// (Duplicate: false) whenever: dedupe is disabled or keyless, there is no
// match, the response contains neither "DUPLICATE" nor "UNIQUE"
// unambiguously, or every retry attempt errors.
func (p *Pipeline) Verify(ctx context.Context, candidateSummary string, closest *Match) Verdict {
	if !p.Enabled || p.APIKey == "" || closest == nil {
		return Verdict{Duplicate: false}
	}

	retries := p.MaxRetries
	if retries < 1 {
		retries = 1
	}

	prompt := "Candidate: " + candidateSummary + "\nExisting: " + closest.Name +
		"\n\nIs the candidate a duplicate of the existing test? Respond with DUPLICATE or UNIQUE."

	for attempt := 0; attempt < retries; attempt++ {
		out, err := p.Gateway.Call(ctx, p.Model, prompt)
		if err != nil {
			if p.RetrySleep > 0 {
				sleepCtx(ctx, p.RetrySleep)
			}
			continue
		}

		upper := strings.ToUpper(out)
		isDup := strings.Contains(upper, "DUPLICATE")
		isUnique := strings.Contains(upper, "UNIQUE")

		switch {
		case isDup:
			return Verdict{Duplicate: true, MatchID: closest.ID, Summary: candidateSummary}
		case isUnique:
			return Verdict{Duplicate: false, Summary: candidateSummary}
		default:
			if p.RetrySleep > 0 {
				sleepCtx(ctx, p.RetrySleep)
			}
			continue
		}
	}

	return Verdict{Duplicate: false, Summary: candidateSummary}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// closestMatch picks the top-scoring hit, if any, as the candidate for
// duplicate verification.
func closestMatch(hits []vectorstore.Hit) *Match {
	if len(hits) == 0 {
		return nil
	}
	best := hits[0]
	name, _ := best.Document["name"].(string)
	return &Match{ID: best.ID, Score: best.Score, Name: name}
}

// ClosestMatch is the exported entry point search results are fed through
// before Verify.
func ClosestMatch(hits []vectorstore.Hit) *Match {
	return closestMatch(hits)
}

// ScoreString formats a match score for logging, mirroring how the
// original surfaced candidate scores in its verification logs.
func ScoreString(m *Match) string {
	if m == nil {
		return ""
	}
	return strconv.FormatFloat(m.Score, 'f', 4, 64)
}
