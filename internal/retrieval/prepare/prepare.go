// Package prepare implements the query preparer (C5): normalizes the raw
// query via an optional LLM spelling/grammar pass, expands it into
// paraphrases for broader recall, and embeds the concatenation of
// expansions into a single query vector. Grounded on the teacher's
// multi-expander composition, adapted to the normalize-then-expand-then-
// embed pipeline this component's contract requires.
package prepare

import (
	"context"
	"strconv"
	"strings"

	"github.com/madlrag/ragcore/internal/encoder"
	"github.com/madlrag/ragcore/internal/llm"
)

// Prepared is the output of the preparer: the normalized query, its
// expansions, and the combined embedding used for retrieval.
type Prepared struct {
	Normalized string
	Expansions []string
	Vector     []float64
}

// Preparer wires the LLM gateway and embedding encoder needed to prepare
// a query.
type Preparer struct {
	Gateway *llm.Gateway
	Model   llm.Model
	Encoder *encoder.Encoder

	ExpansionEnabled bool
	ExpansionCount   int
	APIKey           string
}

// Prepare normalizes query, expands it, and embeds the expansion set into
// a single vector. Any LLM failure falls back to the trimmed original
// query (normalize) or just the normalized query alone (expand); an
// encode failure on an already-empty input yields an empty vector.
func (p *Preparer) Prepare(ctx context.Context, normalizePrompt, expandPrompt, query string) (Prepared, error) {
	normalized := p.normalize(ctx, normalizePrompt, query)
	expansions := p.expand(ctx, expandPrompt, normalized)

	vector, err := p.Encoder.Encode(ctx, strings.Join(expansions, " "))
	if err != nil {
		return Prepared{}, err
	}

	return Prepared{Normalized: normalized, Expansions: expansions, Vector: vector}, nil
}

func (p *Preparer) normalize(ctx context.Context, prompt, query string) string {
	trimmed := strings.TrimSpace(query)

	if p.APIKey == "" {
		return trimmed
	}

	out, err := p.Gateway.Call(ctx, p.Model, strings.ReplaceAll(prompt, "{{.Query}}", trimmed))
	if err != nil || strings.TrimSpace(out) == "" {
		return trimmed
	}
	return strings.TrimSpace(out)
}

// expand asks the LLM for ExpansionCount paraphrases, parses them on
// commas and newlines, trims and case-insensitively dedups them, prepends
// the normalized query, and truncates to ExpansionCount. On any failure
// or empty result it falls back to just [normalized].
func (p *Preparer) expand(ctx context.Context, prompt, normalized string) []string {
	fallback := []string{normalized}

	if !p.ExpansionEnabled || p.APIKey == "" {
		return fallback
	}

	rendered := strings.NewReplacer(
		"{{.Query}}", normalized,
		"{{.Number}}", strconv.Itoa(p.ExpansionCount),
	).Replace(prompt)
	out, err := p.Gateway.Call(ctx, p.Model, rendered)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}

	raw := strings.FieldsFunc(out, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	seen := map[string]bool{strings.ToLower(normalized): true}
	expansions := []string{normalized}
	for _, r := range raw {
		v := strings.TrimSpace(r)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		expansions = append(expansions, v)
	}

	if len(expansions) == 1 {
		return fallback
	}

	limit := p.ExpansionCount
	if limit > 0 && len(expansions) > limit {
		expansions = expansions[:limit]
	}
	return expansions
}
