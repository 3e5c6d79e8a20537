// Command ragserver runs the retrieval and ingestion pipelines behind the
// HTTP surface named in spec.md §6. Grounded on Aman-CERP-amanmcp's
// daemon server for its slog-based startup logging and signal-driven
// graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openai/openai-go/v3/option"
	"github.com/qdrant/go-client/qdrant"

	"github.com/madlrag/ragcore/ai/extensions/models/openai"
	"github.com/madlrag/ragcore/ai/model"
	"github.com/madlrag/ragcore/ai/model/embedding"
	"github.com/madlrag/ragcore/ai/tokenizer"
	"github.com/madlrag/ragcore/internal/cache"
	"github.com/madlrag/ragcore/internal/config"
	"github.com/madlrag/ragcore/internal/encoder"
	"github.com/madlrag/ragcore/internal/httpapi"
	"github.com/madlrag/ragcore/internal/ingest"
	"github.com/madlrag/ragcore/internal/ingest/dedupe"
	"github.com/madlrag/ragcore/internal/ingest/enrich"
	"github.com/madlrag/ragcore/internal/llm"
	"github.com/madlrag/ragcore/internal/retrieval/prepare"
	"github.com/madlrag/ragcore/internal/search"
	"github.com/madlrag/ragcore/internal/vectorstore"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("ragserver exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host: envOr("QDRANT_HOST", "localhost"),
		Port: 6334,
	})
	if err != nil {
		return err
	}

	apiKey := model.NewApiKey(cfg.LLMKey)

	embedOptions, err := embedding.NewOptions(cfg.EmbeddingModelName)
	if err != nil {
		return err
	}
	embedModel, err := openai.NewEmbeddingModel(apiKey, embedOptions, option.WithAPIKey(cfg.LLMKey))
	if err != nil {
		return err
	}

	enc := encoder.New()
	if err := enc.Load(embedModel); err != nil {
		return err
	}

	llmModel, err := llm.NewOpenAIModel(cfg.LLMKey, cfg.LLMModelName)
	if err != nil {
		return err
	}

	gateway := llm.NewGateway(llm.Config{
		MaxConcurrency: cfg.LLMMaxConcurrency,
		RateLimitSleep: cfg.LLMRateLimitSleep,
		Retries:        cfg.LLMRetries,
	})

	store, err := vectorstore.New(qdrantClient, cfg.VectorIndexName)
	if err != nil {
		return err
	}

	tk := tokenizer.NewTiktokenWithCL100KBase()

	searchService := &search.Service{
		Cache:  cache.New(cfg.CacheTTL),
		Config: cfg,
		Store:  store,
		Preparer: &prepare.Preparer{
			Gateway:          gateway,
			Model:            llmModel,
			Encoder:          enc,
			ExpansionEnabled: cfg.QueryExpansionEnabled,
			ExpansionCount:   cfg.QueryExpansions,
			APIKey:           cfg.LLMKey,
		},
		Gateway: gateway,
		Model:   llmModel,
	}

	ingestService := &ingest.Service{
		Enricher: &enrich.Enricher{
			Gateway:   gateway,
			Model:     llmModel,
			Encoder:   enc,
			Tokenizer: tk,
		},
		Dedupe: &dedupe.Pipeline{
			Gateway:    gateway,
			Model:      llmModel,
			Encoder:    enc,
			Store:      store,
			Enabled:    cfg.LLMRerankEnabled,
			APIKey:     cfg.LLMKey,
			MaxRetries: cfg.LLMRetries,
			RetrySleep: cfg.LLMRateLimitSleep,
		},
		Store: store,
	}

	handler := &httpapi.Handler{Search: searchService, Ingest: ingestService, Logger: logger}

	srv := &http.Server{
		Addr:              envOr("RAGSERVER_ADDR", ":8080"),
		Handler:           handler.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("ragserver listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("ragserver shutting down")
		return srv.Shutdown(shutdownCtx)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
