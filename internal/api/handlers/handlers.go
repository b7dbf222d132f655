package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dvloznov/fraud-detection-api/internal/api/middleware"
	"github.com/dvloznov/fraud-detection-api/internal/config"
	"github.com/dvloznov/fraud-detection-api/internal/domain"
	"github.com/dvloznov/fraud-detection-api/internal/jobs"
	"github.com/rs/zerolog"
)

const (
	ServiceName    = "Fraud Detection API"
	ServiceVersion = "0.1.0"
)

// TransactionAnalyzer is the slice of the analysis pipeline the handlers
// depend on; tests substitute a stub.
type TransactionAnalyzer interface {
	Analyze(ctx context.Context, rec domain.TransactionRecord) (domain.AnalysisResult, error)
}

// AnalyzeHandler serves the analysis endpoints.
type AnalyzeHandler struct {
	analyzer  TransactionAnalyzer
	publisher jobs.Publisher
	timeout   time.Duration
	log       zerolog.Logger
}

// NewAnalyzeHandler creates the analysis handler. timeout bounds each
// outbound model call; an expired deadline surfaces as a backend failure.
func NewAnalyzeHandler(analyzer TransactionAnalyzer, publisher jobs.Publisher, timeout time.Duration, log zerolog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:  analyzer,
		publisher: publisher,
		timeout:   timeout,
		log:       log,
	}
}

// Analyze handles POST /analyze. Validation failures stop processing
// before the pipeline runs; backend failures become 500s; a format-drift
// result (defaulted fields) is still a 200.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var rec domain.TransactionRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if violations := rec.Validate(); violations != nil {
		middleware.WriteValidationErrors(w, violations)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.analyzer.Analyze(ctx, rec)
	if err != nil {
		h.log.Error().Err(err).Str("transaction_id", rec.TransactionID).Msg("Analysis failed")
		middleware.WriteError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to analyze transaction: %v", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

type batchRequest struct {
	Transactions []domain.TransactionRecord `json:"transactions"`
}

// AnalyzeBatch handles POST /analyze/batch. All records must validate
// before anything is enqueued; the response carries the job id to poll.
func (h *AnalyzeHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Transactions) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "transactions must not be empty")
		return
	}

	var violations []string
	for i, rec := range req.Transactions {
		for _, v := range rec.Validate() {
			violations = append(violations, fmt.Sprintf("transactions[%d].%s", i, v))
		}
	}
	if violations != nil {
		middleware.WriteValidationErrors(w, violations)
		return
	}

	job := &jobs.AnalyzeBatchJob{Records: req.Transactions}

	if err := h.publisher.PublishAnalyzeBatch(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue batch analysis")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue batch analysis")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Int("count", len(req.Transactions)).Msg("Batch analysis enqueued")

	// A worker may already be running the job; report the status it was
	// published with rather than reading the shared job again.
	middleware.WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": job.JobID,
		"status": string(jobs.JobStatusPending),
		"count":  len(req.Transactions),
	})
}

// HealthHandler serves the liveness and health endpoints.
type HealthHandler struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(cfg *config.Config, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, log: log}
}

// Root handles GET /. Liveness only.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
		"version": ServiceVersion,
	})
}

// Health handles GET /health. A missing model credential degrades the
// reported status but never fails the request: the process starts and
// stays up without it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":             "healthy",
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
		"api_key_configured": h.cfg.CredentialConfigured(),
	}

	if !h.cfg.CredentialConfigured() {
		body["status"] = "unhealthy"
		body["error"] = h.cfg.CredentialName() + " not configured"
	}

	middleware.WriteJSON(w, http.StatusOK, body)
}

// JobsHandler serves the batch-job endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates the jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

// GetJob handles GET /jobs/{id}.
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /jobs.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := jobs.JobFilter{
		Status: jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
