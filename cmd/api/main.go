package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dvloznov/fraud-detection-api/internal/analysis"
	"github.com/dvloznov/fraud-detection-api/internal/api/handlers"
	"github.com/dvloznov/fraud-detection-api/internal/api/middleware"
	"github.com/dvloznov/fraud-detection-api/internal/config"
	"github.com/dvloznov/fraud-detection-api/internal/jobs"
	"github.com/dvloznov/fraud-detection-api/internal/jobs/inmemory"
	"github.com/dvloznov/fraud-detection-api/internal/llm"
	"github.com/dvloznov/fraud-detection-api/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	var (
		port = flag.String("port", cfg.Server.Port, "HTTP server port")
	)
	flag.Parse()

	log := logger.New(cfg.LogLevel)

	if !cfg.CredentialConfigured() {
		log.Warn().Str("credential", cfg.CredentialName()).
			Msg("Model credential not configured - /analyze will fail until it is set")
	}

	ctx := context.Background()

	modelClient, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create model client")
	}

	analyzer := analysis.NewAnalyzer(modelClient, log)

	// Batch-analysis job infrastructure.
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job *jobs.AnalyzeBatchJob) error {
		for _, rec := range job.Records {
			callCtx, cancel := context.WithTimeout(ctx, cfg.LLM.Timeout)
			result, err := analyzer.Analyze(callCtx, rec)
			cancel()
			if err != nil {
				return err
			}
			job.Results = append(job.Results, result)
		}
		return nil
	}

	go func() {
		log.Info().Msg("Starting batch analysis workers")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Batch workers stopped with error")
		}
	}()

	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, jobQueue, cfg.LLM.Timeout, log)
	healthHandler := handlers.NewHealthHandler(cfg, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		healthHandler.Root(w, r)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		healthHandler.Health(w, r)
	})

	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		analyzeHandler.Analyze(w, r)
	})

	mux.HandleFunc("/analyze/batch", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		analyzeHandler.AnalyzeBatch(w, r)
	})

	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		jobsHandler.ListJobs(w, r)
	})

	mux.HandleFunc("/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		jobID := strings.TrimPrefix(r.URL.Path, "/jobs/")
		if jobID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
			return
		}
		jobsHandler.GetJob(w, r, jobID)
	})

	// RequestID must wrap Logger so the request log line carries the id.
	handler := middleware.Recovery(log)(
		middleware.RequestID(
			middleware.Logger(log)(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", *port).Str("provider", cfg.LLM.Provider).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
