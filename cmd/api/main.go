package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/marcinkowskimikolaj/assetly/internal/api/handlers"
	"github.com/marcinkowskimikolaj/assetly/internal/api/middleware"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/cache"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/synonyms"
	"github.com/marcinkowskimikolaj/assetly/internal/config"
	"github.com/marcinkowskimikolaj/assetly/internal/fx"
	"github.com/marcinkowskimikolaj/assetly/internal/jobs"
	"github.com/marcinkowskimikolaj/assetly/internal/jobs/inmemory"
	"github.com/marcinkowskimikolaj/assetly/internal/llm"
	"github.com/marcinkowskimikolaj/assetly/internal/logger"
	"github.com/marcinkowskimikolaj/assetly/internal/networth"
	"github.com/marcinkowskimikolaj/assetly/internal/sheets"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	backend, err := sheets.NewClient(ctx, cfg.SpreadsheetID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create spreadsheet client")
	}

	rates := fx.NewRates(cfg.BaseCurrency)
	for _, currency := range []string{"EUR", "USD", "GBP", "CHF"} {
		if err := rates.Refresh(ctx, currency); err != nil {
			log.Warn().Err(err).Str("currency", currency).Msg("Using fallback exchange rate")
		}
	}

	var completer llm.Completer
	switch cfg.Provider {
	case "openai":
		completer = llm.NewOpenAICompleter(cfg.OpenAIURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		completer = llm.NewGeminiCompleter(cfg.GeminiModel)
	}

	table := synonyms.DefaultTable()
	if cfg.SynonymOverridesPath != "" {
		if err := table.LoadOverrides(cfg.SynonymOverridesPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.SynonymOverridesPath).Msg("Failed to load synonym overrides")
		}
	}

	asst := assistant.New(completer, table, log)
	netWorthSvc := networth.NewService(backend, log)

	// Build the aggregate cache once before serving traffic.
	initialCache, err := buildCache(ctx, backend)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build initial aggregate cache")
	}
	log.Info().
		Str("from", initialCache.From).
		Str("to", initialCache.To).
		Msg("Aggregate cache built")

	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	assistantHandler := handlers.NewAssistantHandler(asst, initialCache)
	transactionsHandler := handlers.NewTransactionsHandler(backend, rates, jobQueue, log)
	netWorthHandler := handlers.NewNetWorthHandler(netWorthSvc, backend, rates, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, jobQueue, log)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job *jobs.RefreshJob) error {
		switch job.Kind {
		case jobs.KindRebuildCache:
			rebuilt, err := buildCache(ctx, backend)
			if err != nil {
				return err
			}
			assistantHandler.SetCache(rebuilt)
			log.Info().Str("job_id", job.ID).Msg("Aggregate cache rebuilt")
			return nil

		case jobs.KindCaptureSnapshot:
			_, err := netWorthSvc.CaptureSnapshot(ctx, job.Category, job.Value)
			if err != nil {
				return err
			}
			log.Info().Str("job_id", job.ID).Str("category", job.Category).Msg("Snapshot captured")
			return nil

		default:
			return fmt.Errorf("unknown job kind: %s", job.Kind)
		}
	}

	go func() {
		log.Info().Msg("Starting job worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Job worker stopped with error")
		}
	}()

	mux := http.NewServeMux()

	mux.HandleFunc("/api/assistant/ask", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			assistantHandler.Ask(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.ListTransactions(w, r)
		case http.MethodPost:
			transactionsHandler.CreateTransactions(w, r)
		case http.MethodDelete:
			transactionsHandler.DeleteMonth(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
			return
		}
		transactionsHandler.DeleteTransaction(w, r, id)
	})

	mux.HandleFunc("/api/networth/snapshots", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			netWorthHandler.CaptureSnapshot(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/networth/growth", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			netWorthHandler.GrowthReport(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/milestones", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			netWorthHandler.ListMilestones(w, r)
		case http.MethodPost:
			netWorthHandler.CreateMilestone(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/milestones/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/milestones/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Milestone ID is required")
			return
		}
		netWorthHandler.DeleteMilestone(w, r, id)
	})

	mux.HandleFunc("/api/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			netWorthHandler.ListSubscriptions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			jobsHandler.EnqueueRefresh(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
		if id == "" || id == "refresh" {
			middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
			return
		}
		jobsHandler.GetJob(w, r, id)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.RequestID(
			middleware.Logger(log)(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}

// buildCache loads every transaction row and aggregates it.
func buildCache(ctx context.Context, repo sheets.TransactionRepository) (*cache.Cache, error) {
	txs, err := repo.ListTransactions(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return cache.Build(txs), nil
}
