package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dvloznov/fraud-detection-api/internal/jobs"
)

// Store keeps job state in memory; safe for concurrent use. Reads and
// writes work on copies so callers cannot mutate stored state.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*jobs.AnalyzeBatchJob
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*jobs.AnalyzeBatchJob),
	}
}

// SaveJob inserts or updates a job.
func (s *Store) SaveJob(ctx context.Context, job *jobs.AnalyzeBatchJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy

	return nil
}

// GetJob retrieves a job by id.
func (s *Store) GetJob(ctx context.Context, jobID string) (*jobs.AnalyzeBatchJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	jobCopy := *job
	return &jobCopy, nil
}

// ListJobs retrieves jobs newest-first with optional status filtering and
// limit/offset pagination.
func (s *Store) ListJobs(ctx context.Context, filter jobs.JobFilter) ([]*jobs.AnalyzeBatchJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*jobs.AnalyzeBatchJob{}
	for _, job := range s.jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		jobCopy := *job
		result = append(result, &jobCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*jobs.AnalyzeBatchJob{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

// Ensure Store implements JobStore.
var _ jobs.JobStore = (*Store)(nil)
