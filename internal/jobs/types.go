package jobs

import (
	"context"
	"time"

	"github.com/dvloznov/fraud-detection-api/internal/domain"
)

// JobStatus represents the lifecycle state of a batch analysis job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// AnalyzeBatchJob analyzes a batch of transactions asynchronously.
// Records are validated before the job is enqueued; each record is
// analyzed exactly once - a backend failure fails the job with whatever
// results were completed so far. Jobs live in process memory only and do
// not survive a restart.
type AnalyzeBatchJob struct {
	JobID string `json:"job_id"`

	Records []domain.TransactionRecord `json:"-"`
	Results []domain.AnalysisResult    `json:"results,omitempty"`

	// Count is the number of records submitted. Records itself is kept
	// out of responses, so Count is how a reader of a failed job tells
	// partial results from complete ones.
	Count int `json:"count"`

	Status JobStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error holds the failure cause when Status is failed.
	Error string `json:"error,omitempty"`
}

// Publisher enqueues batch jobs.
type Publisher interface {
	PublishAnalyzeBatch(ctx context.Context, job *AnalyzeBatchJob) error
	Close() error
}

// Consumer drains the queue, invoking the handler once per job.
type Consumer interface {
	Start(ctx context.Context, handler JobHandler) error
	Stop(ctx context.Context) error
}

// JobHandler processes one job. The returned error marks the job failed;
// there is no retry.
type JobHandler func(ctx context.Context, job *AnalyzeBatchJob) error

// JobStore tracks job state for the /jobs endpoints.
type JobStore interface {
	SaveJob(ctx context.Context, job *AnalyzeBatchJob) error
	GetJob(ctx context.Context, jobID string) (*AnalyzeBatchJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*AnalyzeBatchJob, error)
}

// JobFilter narrows ListJobs results.
type JobFilter struct {
	Status JobStatus
	Limit  int
	Offset int
}
