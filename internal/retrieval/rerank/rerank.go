// Package rerank implements the pairwise reranker (C7): an optional LLM
// pass that reorders a short candidate list by relevance, falling back to
// the original order on any failure so it can never make results worse
// than doing nothing. Grounded on original_source's rerank.py
// (safe_parse_lines, id extraction, reorder-then-append-unmatched).
package rerank

import (
	"context"
	"regexp"
	"strings"

	"github.com/madlrag/ragcore/internal/llm"
)

// Candidate is the minimal view the reranker needs of a scored result.
type Candidate struct {
	ID      string
	Name    string
	Summary string
}

const summaryClip = 220

// bulletPattern strips one leading bullet ("-" or "*") or list number
// ("1." or "2)"), so the ID that follows it is kept.
var bulletPattern = regexp.MustCompile(`^\s*(?:[\-\*]|\d+[\.\)])\s*`)

// idPunctuation is stripped from the leading token of each response line
// before it is compared against the candidates' own IDs.
var idPunctuation = ".,-_ "

// Rerank asks the LLM to reorder candidates by relevance to query. If
// rerank is disabled, key is empty, or candidates is empty, it returns
// candidates unchanged. Any LLM or parse failure also returns candidates
// unchanged — the reranker never errors out to the caller.
func Rerank(ctx context.Context, gw *llm.Gateway, model llm.Model, enabled bool, apiKey, query string, candidates []Candidate) []Candidate {
	if !enabled || apiKey == "" || len(candidates) == 0 {
		return candidates
	}

	prompt := buildPrompt(query, candidates)

	out, err := gw.Call(ctx, model, prompt)
	if err != nil || strings.TrimSpace(out) == "" {
		return candidates
	}

	orderedIDs := parseIDs(out)
	if len(orderedIDs) == 0 {
		return candidates
	}

	return reorder(candidates, orderedIDs)
}

func buildPrompt(query string, candidates []Candidate) string {
	var b strings.Builder
	b.WriteString("Query: ")
	b.WriteString(query)
	b.WriteString("\n\n")
	for _, c := range candidates {
		summary := c.Summary
		if len(summary) > summaryClip {
			summary = summary[:summaryClip]
		}
		b.WriteString(c.ID)
		b.WriteString(" | Method: ")
		b.WriteString(c.Name)
		b.WriteString(" | Summary: ")
		b.WriteString(summary)
		b.WriteString("\n")
	}
	return b.String()
}

// parseIDs strips bullets/numbering from each non-empty line and extracts
// the first whitespace-delimited token, stripped of id punctuation, as
// the candidate ID referenced by that line.
func parseIDs(text string) []string {
	var ids []string
	for _, line := range strings.Split(text, "\n") {
		line = bulletPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		id := strings.Trim(fields[0], idPunctuation)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// reorder places candidates matched in orderedIDs first, in that order,
// deduplicating repeats, then appends any unmatched candidates in their
// original order — so an incomplete or partially garbled LLM response
// degrades to a stable reordering rather than dropping results.
func reorder(candidates []Candidate, orderedIDs []string) []Candidate {
	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	seen := make(map[string]bool, len(candidates))
	result := make([]Candidate, 0, len(candidates))
	for _, id := range orderedIDs {
		c, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, c)
	}

	for _, c := range candidates {
		if !seen[c.ID] {
			result = append(result, c)
		}
	}

	return result
}
