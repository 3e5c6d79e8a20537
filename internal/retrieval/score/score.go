// Package score implements the candidate scorer (C6): fuses the vector
// store's raw ANN score with per-field cosine similarity and lexical
// token-boost signals into two selectable scoring variants, then
// min-max normalizes the chosen score across the candidate set. Grounded
// verbatim on original_source's ranking.py (build_candidates,
// _normalize_scores), including its tokenization regex and clamp formula.
package score

import (
	"regexp"
	"sort"
	"strings"

	"github.com/madlrag/ragcore/internal/encoder"
)

// Variant selects one of the two scoring formulas.
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// tokenPattern matches `\b[\w\-']+\b` case-folded, exactly as the source
// tokenizer does.
var tokenPattern = regexp.MustCompile(`\b[\w\-']+\b`)

// Tokenize lowercases text and extracts word tokens.
func Tokenize(text string) map[string]struct{} {
	out := make(map[string]struct{})
	if text == "" {
		return out
	}
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		out[tok] = struct{}{}
	}
	return out
}

// Hit is the raw input coming out of the vector store adapter: an ANN
// score plus the stored document fields needed to compute per-field
// similarity and lexical boosts.
type Hit struct {
	ID            string
	ANNScore      float64
	MainVector    []float64
	SummaryVector []float64
	BodyVector    []float64
	Name          string
	Body          string
	Summary       string
	Keywords      []string
	Feature       string // empty if the record has no feature field
	HasFeature    bool
	Popularity    float64
}

// Candidate is the transient per-result scoring state, per the data model.
type Candidate struct {
	ID              string
	ANNScore        float64
	SimMain         float64
	SimSummary      float64
	SimBody         float64
	SemanticMax     float64
	KeywordOverlap  int
	TokenBoost      float64
	ScoreV1         float64
	ScoreV2         float64
	NormalizedScore float64
	Payload         *Hit
}

// Score computes candidates from hits against the combined query vector
// and expansion tokens, using the requested variant, normalizes the
// resulting scores into [0,1], sorts descending, and truncates to
// candidatesToRetrieve. Ties are broken by input order (stable sort), per
// the purity/determinism invariant.
func Score(hits []Hit, queryVector []float64, expansions []string, variant Variant, candidatesToRetrieve int) []Candidate {
	expansionTokens := make(map[string]struct{})
	for _, ex := range expansions {
		for tok := range Tokenize(ex) {
			expansionTokens[tok] = struct{}{}
		}
	}

	candidates := make([]Candidate, 0, len(hits))
	for _, h := range hits {
		simMain := encoder.Cosine(queryVector, h.MainVector)
		simSummary := encoder.Cosine(queryVector, h.SummaryVector)
		simBody := encoder.Cosine(queryVector, h.BodyVector)
		semanticMax := maxOf(simMain, simSummary, simBody)

		textTokens := Tokenize(h.Name + " " + h.Body + " " + h.Summary)
		lowerKeywords := make(map[string]struct{}, len(h.Keywords))
		for _, k := range h.Keywords {
			lowerKeywords[strings.ToLower(k)] = struct{}{}
		}

		var tokenBoost float64
		for tok := range expansionTokens {
			if _, ok := textTokens[tok]; ok {
				tokenBoost += 0.10
			}
			if _, ok := lowerKeywords[tok]; ok {
				tokenBoost += 0.15
			}
		}
		maxBoost := len(expansionTokens)
		if maxBoost == 0 {
			maxBoost = 1
		}
		if cap := float64(maxBoost) * 0.15; tokenBoost > cap {
			tokenBoost = cap
		}

		keywordOverlap := 0
		for tok := range expansionTokens {
			if _, ok := lowerKeywords[tok]; ok {
				keywordOverlap++
			}
		}

		scoreV1 := 0.60*h.ANNScore + 0.25*semanticMax + tokenBoost

		var featureMatch float64
		if h.HasFeature {
			for tok := range expansionTokens {
				if strings.Contains(strings.ToLower(h.Feature), tok) {
					featureMatch = 1
					break
				}
			}
		}
		popularityBoost := minF(h.Popularity/100.0, 0.10)
		overlapTerm := minF(float64(keywordOverlap), 5) / 5.0
		scoreV2 := 0.45*h.ANNScore + 0.20*semanticMax + 0.12*overlapTerm +
			0.08*featureMatch + 0.05*tokenBoost + 0.05*popularityBoost

		hCopy := h
		candidates = append(candidates, Candidate{
			ID:             h.ID,
			ANNScore:       h.ANNScore,
			SimMain:        simMain,
			SimSummary:     simSummary,
			SimBody:        simBody,
			SemanticMax:    semanticMax,
			KeywordOverlap: keywordOverlap,
			TokenBoost:     tokenBoost,
			ScoreV1:        scoreV1,
			ScoreV2:        scoreV2,
			Payload:        &hCopy,
		})
	}

	normalize(candidates, variant)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].NormalizedScore > candidates[j].NormalizedScore
	})

	if candidatesToRetrieve > 0 && len(candidates) > candidatesToRetrieve {
		candidates = candidates[:candidatesToRetrieve]
	}

	return candidates
}

// normalize performs min-max normalization of the chosen variant's score
// across candidates into [0,1]; if the range collapses below 1e-12, every
// candidate is assigned 1.0.
func normalize(candidates []Candidate, variant Variant) {
	if len(candidates) == 0 {
		return
	}

	raw := func(c *Candidate) float64 {
		if variant == VariantB {
			return c.ScoreV2
		}
		return c.ScoreV1
	}

	min, max := raw(&candidates[0]), raw(&candidates[0])
	for i := range candidates {
		v := raw(&candidates[i])
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max-min > 1e-12 {
		for i := range candidates {
			candidates[i].NormalizedScore = (raw(&candidates[i]) - min) / (max - min)
		}
	} else {
		for i := range candidates {
			candidates[i].NormalizedScore = 1.0
		}
	}
}

func maxOf(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
