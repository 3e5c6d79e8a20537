// Package httpapi exposes the search and ingestion pipelines over a thin
// stdlib net/http surface, per spec.md §6. Grounded on
// Aman-CERP-amanmcp's internal/daemon server for its JSON encode/decode
// and graceful-shutdown idiom, adapted from that server's Unix-socket RPC
// loop to an http.Server since the spec's external interface is an HTTP
// request/response, not an RPC socket.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/madlrag/ragcore/internal/ingest"
	"github.com/madlrag/ragcore/internal/ingest/upload"
	"github.com/madlrag/ragcore/internal/record"
	"github.com/madlrag/ragcore/internal/search"
)

// Handler wires the search and ingest services behind the HTTP surface.
type Handler struct {
	Search *search.Service
	Ingest *ingest.Service
	Logger *slog.Logger
}

// searchRequestBody mirrors the Search request JSON shape.
type searchRequestBody struct {
	Query          string   `json:"query"`
	Feature        string   `json:"feature"`
	Tags           []string `json:"tags"`
	Priority       string   `json:"priority"`
	Platform       string   `json:"platform"`
	RankingVariant string   `json:"ranking_variant"`
}

// Mux builds the routed handler for the service.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /search", h.handleSearch)
	mux.HandleFunc("POST /ingest", h.handleIngest)
	return mux
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if strings.TrimSpace(body.Query) == "" {
		writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	resp, err := h.Search.Search(r.Context(), search.Request{
		Query:          body.Query,
		Feature:        body.Feature,
		Tags:           body.Tags,
		Priority:       body.Priority,
		Platform:       body.Platform,
		RankingVariant: body.RankingVariant,
	})
	if err != nil {
		h.logError(r.Context(), "search failed", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	const maxUpload = 10 << 20 // 10 MiB
	data := make([]byte, 0, 1<<16)
	buf := make([]byte, 1<<16)
	for {
		n, err := r.Body.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			if len(data) > maxUpload {
				writeError(w, http.StatusBadRequest, "upload too large")
				return
			}
		}
		if err != nil {
			break
		}
	}

	rows, err := upload.Parse(data)
	if err != nil {
		if errors.Is(err, upload.ErrUnsupportedFormat) {
			writeError(w, http.StatusBadRequest, "unsupported file format")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to parse upload")
		return
	}

	inserted, duplicates := 0, 0
	for _, row := range rows {
		outcome, err := h.Ingest.Ingest(r.Context(), ingest.Candidate{
			Name:   row.Columns["name"],
			Source: rowSource(row),
			Flavor: record.FlavorMethod,
		})
		if err != nil {
			h.logError(r.Context(), "ingest row failed", err)
			continue
		}
		if outcome.Persisted {
			inserted++
		}
		if outcome.Duplicate {
			duplicates++
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"inserted_count":  inserted,
		"duplicate_count": duplicates,
		"rows_seen":       len(rows),
	})
}

func rowSource(row upload.Row) string {
	if body, ok := row.Columns["body"]; ok {
		return body
	}
	var b strings.Builder
	for k, v := range row.Columns {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}
	return b.String()
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.ErrorContext(ctx, msg, slog.String("error", err.Error()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"error": detail})
}
