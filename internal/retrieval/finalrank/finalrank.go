// Package finalrank implements the final intent ranker (C8): an optional
// LLM pass that assigns a 0-100 match probability to the top results and
// sorts by it, falling back to the original top_k slice on any failure.
// Grounded on original_source's finalRanking.py, with the explicit
// probability-descending sort the original omits.
package finalrank

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/madlrag/ragcore/internal/llm"
)

// Result is the minimal view the final ranker needs of a ranked candidate.
type Result struct {
	ID          string
	Name        string
	Summary     string
	Probability float64
}

const defaultProbability = 50.0

var (
	numberedBullet = regexp.MustCompile(`^(\d+[\.\)]\s*)`)
	dashBullet     = regexp.MustCompile(`^[\*\-]\s*`)
)

// Rank assigns probabilities to results via the LLM and returns the top_k
// sorted by probability descending. If ranking is disabled, key is empty,
// results is empty, or has only one element, it returns results[:topK]
// unchanged (clamped to len(results)). Any LLM or parse failure falls
// back the same way.
func Rank(ctx context.Context, gw *llm.Gateway, model llm.Model, enabled bool, apiKey, query string, results []Result, topK int) []Result {
	truncated := truncate(results, topK)

	if !enabled || apiKey == "" || len(results) <= 1 {
		return truncated
	}

	prompt := buildPrompt(query, results)
	out, err := gw.Call(ctx, model, prompt)
	if err != nil || strings.TrimSpace(out) == "" {
		return truncated
	}

	pairs := parsePairs(out)
	if len(pairs) == 0 {
		return truncated
	}
	if len(pairs) > topK {
		pairs = pairs[:topK]
	}

	byID := make(map[string]Result, len(results))
	for _, r := range results {
		byID[r.ID] = r
	}

	matched := make([]Result, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		r, ok := byID[p.id]
		if !ok || seen[p.id] {
			continue
		}
		seen[p.id] = true
		r.Probability = p.score
		matched = append(matched, r)
	}

	if len(matched) < topK {
		for _, r := range results {
			if len(matched) >= topK {
				break
			}
			if seen[r.ID] {
				continue
			}
			if r.Probability == 0 {
				r.Probability = defaultProbability
			}
			matched = append(matched, r)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Probability > matched[j].Probability
	})

	return matched
}

func truncate(results []Result, topK int) []Result {
	if topK <= 0 || topK > len(results) {
		topK = len(results)
	}
	out := make([]Result, topK)
	copy(out, results[:topK])
	return out
}

func buildPrompt(query string, results []Result) string {
	var b strings.Builder
	b.WriteString("Query: ")
	b.WriteString(query)
	b.WriteString("\n\n")
	for _, r := range results {
		b.WriteString(r.ID)
		b.WriteString(" | ")
		b.WriteString(r.Name)
		b.WriteString(" — ")
		b.WriteString(r.Summary)
		b.WriteString("\n")
	}
	return b.String()
}

type idScore struct {
	id    string
	score float64
}

// parsePairs strips bullets two ways (numbered, then dash/star), splits
// each remaining line on "|" requiring exactly two parts, and clamps the
// parsed score into [0,100].
func parsePairs(text string) []idScore {
	var pairs []idScore
	for _, line := range strings.Split(text, "\n") {
		line = numberedBullet.ReplaceAllString(line, "")
		line = dashBullet.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 2 {
			continue
		}
		id := strings.TrimSpace(parts[0])
		scoreStr := strings.TrimSpace(parts[1])
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			continue
		}
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		pairs = append(pairs, idScore{id: id, score: score})
	}
	return pairs
}
