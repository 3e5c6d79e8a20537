// Package search orchestrates the query path named in the control flow:
// cache → prepare → vector store → score → rerank → response mapping →
// final rank → sort → cache populate → return. Grounded on the teacher's
// top-level client composition style (ai/model/chat/client wiring a model
// behind a fluent builder) adapted into an explicit sequential pipeline,
// since the spec requires a strict stage order rather than a builder.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/madlrag/ragcore/internal/cache"
	"github.com/madlrag/ragcore/internal/config"
	"github.com/madlrag/ragcore/internal/llm"
	"github.com/madlrag/ragcore/internal/retrieval/finalrank"
	"github.com/madlrag/ragcore/internal/retrieval/prepare"
	"github.com/madlrag/ragcore/internal/retrieval/rerank"
	"github.com/madlrag/ragcore/internal/retrieval/score"
	"github.com/madlrag/ragcore/internal/vectorstore"
)

// Request is the inbound search request, per the Search request JSON
// shape.
type Request struct {
	Query          string
	Feature        string
	Tags           []string
	Priority       string
	Platform       string
	RankingVariant string // "A" or "B"; empty defaults to "A"
}

// ResultItem is one ranked record in the response, stripped of the four
// vector fields per the response-shape invariant.
type ResultItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Summary     string   `json:"summary"`
	Keywords    []string `json:"keywords"`
	Tags        []string `json:"tags,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Platform    string   `json:"platform,omitempty"`
	Probability float64  `json:"probability"`
}

// Response is the outbound search response, per the Search response JSON
// shape.
type Response struct {
	Query          string       `json:"query"`
	FeatureFilter  string       `json:"feature_filter,omitempty"`
	ResultsCount   int          `json:"results_count"`
	Results        []ResultItem `json:"results"`
	FromCache      bool         `json:"from_cache"`
	RankingVariant string       `json:"ranking_variant"`
}

// Service wires every stage needed to answer a search request.
type Service struct {
	Cache    *cache.Cache
	Preparer *prepare.Preparer
	Store    *vectorstore.Adapter
	Gateway  *llm.Gateway
	Model    llm.Model
	Config   *config.Config
}

// Search runs the full query pipeline for req, populating the cache on a
// miss. A cache hit short-circuits everything after C3.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("search: query must not be empty")
	}

	variant := score.VariantA
	variantLabel := "A"
	if strings.EqualFold(req.RankingVariant, "B") {
		variant = score.VariantB
		variantLabel = "B"
	}

	filterRepr := filterRepresentation(req)
	key := cache.Key(req.Query, filterRepr, variantLabel)

	if raw, ok := s.Cache.Get(key); ok {
		var cached Response
		if err := json.Unmarshal(raw, &cached); err == nil {
			cached.FromCache = true
			return &cached, nil
		}
	}

	prepared, err := s.Preparer.Prepare(ctx, s.Config.Prompts.Normalize, s.Config.Prompts.Expand, req.Query)
	if err != nil {
		return nil, fmt.Errorf("search: prepare query: %w", err)
	}
	if len(prepared.Vector) == 0 {
		resp := &Response{
			Query:          req.Query,
			FeatureFilter:  req.Feature,
			Results:        []ResultItem{},
			RankingVariant: variantLabel,
		}
		s.populateCache(key, resp)
		return resp, nil
	}

	var filter *vectorstore.Filter
	if req.Feature != "" {
		filter = &vectorstore.Filter{Key: "feature", Value: req.Feature}
	}

	hits, err := s.Store.Query(ctx, prepared.Vector, s.Config.CandidatesToRetrieve*3, s.Config.CandidatesToRetrieve, filter)
	if err != nil {
		return nil, fmt.Errorf("search: vector store query: %w", err)
	}

	scoreHits := toScoreHits(hits)
	candidates := score.Score(scoreHits, prepared.Vector, prepared.Expansions, variant, s.Config.CandidatesToRetrieve)

	rerankCandidates := make([]rerank.Candidate, 0, len(candidates))
	byID := make(map[string]score.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
		name, summary := "", ""
		if c.Payload != nil {
			name, summary = c.Payload.Name, c.Payload.Summary
		}
		rerankCandidates = append(rerankCandidates, rerank.Candidate{ID: c.ID, Name: name, Summary: summary})
	}

	reranked := rerank.Rerank(ctx, s.Gateway, s.Model, s.Config.LLMRerankEnabled, s.Config.LLMKey, prepared.Normalized, rerankCandidates)

	results := make([]finalrank.Result, 0, len(reranked))
	items := make(map[string]ResultItem, len(reranked))
	for _, rc := range reranked {
		c := byID[rc.ID]
		item := mapToResultItem(c)
		items[rc.ID] = item
		results = append(results, finalrank.Result{ID: rc.ID, Name: rc.Name, Summary: rc.Summary, Probability: item.Probability})
	}

	ranked := finalrank.Rank(ctx, s.Gateway, s.Model, s.Config.LLMRerankEnabled, s.Config.LLMKey, prepared.Normalized, results, s.Config.FinalResults)

	finalItems := make([]ResultItem, 0, len(ranked))
	for _, r := range ranked {
		item := items[r.ID]
		item.Probability = r.Probability
		finalItems = append(finalItems, item)
	}

	sort.SliceStable(finalItems, func(i, j int) bool {
		return finalItems[i].Probability > finalItems[j].Probability
	})

	resp := &Response{
		Query:          req.Query,
		FeatureFilter:  req.Feature,
		ResultsCount:   len(finalItems),
		Results:        finalItems,
		RankingVariant: variantLabel,
	}

	s.populateCache(key, resp)
	return resp, nil
}

func (s *Service) populateCache(key string, resp *Response) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	s.Cache.Set(key, raw)
}

func filterRepresentation(req Request) string {
	var b strings.Builder
	b.WriteString("feature=")
	b.WriteString(req.Feature)
	b.WriteString("|tags=")
	b.WriteString(strings.Join(req.Tags, ","))
	b.WriteString("|priority=")
	b.WriteString(req.Priority)
	b.WriteString("|platform=")
	b.WriteString(req.Platform)
	return b.String()
}

func toScoreHits(hits []vectorstore.Hit) []score.Hit {
	out := make([]score.Hit, 0, len(hits))
	for _, h := range hits {
		sh := score.Hit{ID: h.ID, ANNScore: h.Score}
		sh.Name, _ = h.Document["name"].(string)
		sh.Body, _ = h.Document["body"].(string)
		sh.Summary, _ = h.Document["summary"].(string)
		if kws, ok := h.Document["keywords"].([]any); ok {
			for _, k := range kws {
				if s, ok := k.(string); ok {
					sh.Keywords = append(sh.Keywords, s)
				}
			}
		}
		if feat, ok := h.Document["feature"].(string); ok && feat != "" {
			sh.Feature = feat
			sh.HasFeature = true
		}
		if pop, ok := h.Document["popularity"].(float64); ok {
			sh.Popularity = pop
		}
		sh.MainVector = floatVector(h.Document["main_vec"])
		sh.SummaryVector = floatVector(h.Document["summary_vec"])
		sh.BodyVector = floatVector(h.Document["body_vec"])
		out = append(out, sh)
	}
	return out
}

func floatVector(v any) []float64 {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(list))
	for _, x := range list {
		switch n := x.(type) {
		case float64:
			out = append(out, n)
		case float32:
			out = append(out, float64(n))
		}
	}
	return out
}

func mapToResultItem(c score.Candidate) ResultItem {
	item := ResultItem{ID: c.ID, Probability: 50.0}
	if c.Payload != nil {
		item.Name = c.Payload.Name
		item.Summary = c.Payload.Summary
		item.Keywords = c.Payload.Keywords
	}
	return item
}
