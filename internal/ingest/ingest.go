// Package ingest orchestrates the ingest path named in the control flow:
// raw record → C10 (metadata + four vectors) → C9 (summary → ANN → LLM
// verdict); if unique, persist; otherwise skip.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/madlrag/ragcore/internal/ingest/dedupe"
	"github.com/madlrag/ragcore/internal/ingest/enrich"
	"github.com/madlrag/ragcore/internal/record"
	"github.com/madlrag/ragcore/internal/vectorstore"
)

// Candidate is one raw incoming record awaiting enrichment and dedupe.
type Candidate struct {
	Name   string
	Source string // raw method body or concatenated test steps
	Flavor record.Flavor
}

// Outcome reports what happened to one ingested candidate.
type Outcome struct {
	ID        string
	Persisted bool
	Duplicate bool
	MatchID   string
}

// Service wires the enricher, dedupe pipeline, and vector store needed to
// ingest candidates.
type Service struct {
	Enricher *enrich.Enricher
	Dedupe   *dedupe.Pipeline
	Store    *vectorstore.Adapter
}

// Ingest runs one candidate through C10 then C9, persisting it only if
// the dedupe pipeline judges it unique.
func (s *Service) Ingest(ctx context.Context, c Candidate) (Outcome, error) {
	doc, vectors, err := s.Enricher.Enrich(ctx, c.Source, c.Flavor)
	if err != nil {
		return Outcome{}, fmt.Errorf("ingest: enrich: %w", err)
	}

	core := record.Core{
		ID:      uuid.NewString(),
		Flavor:  c.Flavor,
		Name:    c.Name,
		Body:    c.Source,
		Doc:     doc,
		Vectors: vectors,
	}

	summary := s.Dedupe.Summarize(ctx, doc.Summary, c.Source)
	hits, err := s.Dedupe.Search(ctx, summary)
	if err != nil {
		return Outcome{}, fmt.Errorf("ingest: dedupe search: %w", err)
	}

	closest := dedupe.ClosestMatch(hits)
	verdict := s.Dedupe.Verify(ctx, summary, closest)
	if verdict.Duplicate {
		return Outcome{ID: core.ID, Duplicate: true, MatchID: verdict.MatchID}, nil
	}

	payload := toPayload(core)
	if err := s.Store.Upsert(ctx, core.ID, vectors.Main, payload); err != nil {
		return Outcome{}, fmt.Errorf("ingest: persist: %w", err)
	}

	return Outcome{ID: core.ID, Persisted: true}, nil
}

func toPayload(c record.Core) map[string]any {
	return map[string]any{
		"name":        c.Name,
		"flavor":      string(c.Flavor),
		"body":        c.Body,
		"summary":     c.Doc.Summary,
		"keywords":    c.Doc.Keywords,
		"intent":      c.Doc.Intent,
		"owner":       c.Doc.Owner,
		"feature":     c.Feature,
		"popularity":  c.Popularity,
		"tags":        c.Tags,
		"priority":    c.Priority,
		"platform":    c.Platform,
		"main_vec":    c.Vectors.Main,
		"summary_vec": c.Vectors.Summary,
		"body_vec":    c.Vectors.Body,
		"doc_vec":     c.Vectors.Doc,
	}
}
