package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dvloznov/fraud-detection-api/internal/jobs"
	"github.com/google/uuid"
)

const workerCount = 3

// Queue is an in-memory job queue backed by a buffered channel. It is
// safe for concurrent use and suits a single-instance deployment; jobs
// are lost on restart.
type Queue struct {
	jobChan   chan *jobs.AnalyzeBatchJob
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	store     jobs.JobStore
	closed    bool
}

// NewQueue creates a queue holding up to bufferSize pending jobs before
// PublishAnalyzeBatch blocks.
func NewQueue(bufferSize int, store jobs.JobStore) *Queue {
	return &Queue{
		jobChan:   make(chan *jobs.AnalyzeBatchJob, bufferSize),
		closeChan: make(chan struct{}),
		store:     store,
	}
}

// PublishAnalyzeBatch implements jobs.Publisher. It assigns the job an id
// and pending status, records it in the store, and enqueues it.
func (q *Queue) PublishAnalyzeBatch(ctx context.Context, job *jobs.AnalyzeBatchJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return fmt.Errorf("queue is closed")
	}

	if job.JobID == "" {
		job.JobID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = jobs.JobStatusPending
	}
	if job.Count == 0 {
		job.Count = len(job.Records)
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	if q.store != nil {
		if err := q.store.SaveJob(ctx, job); err != nil {
			return fmt.Errorf("save job: %w", err)
		}
	}

	select {
	case q.jobChan <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closeChan:
		return fmt.Errorf("queue is closed")
	}
}

// Start implements jobs.Consumer: it launches the worker pool.
func (q *Queue) Start(ctx context.Context, handler jobs.JobHandler) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return fmt.Errorf("queue is closed")
	}
	q.mu.RUnlock()

	for i := 0; i < workerCount; i++ {
		q.wg.Add(1)
		go q.worker(ctx, handler)
	}

	return nil
}

func (q *Queue) worker(ctx context.Context, handler jobs.JobHandler) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeChan:
			return
		case job := <-q.jobChan:
			if job == nil {
				return
			}
			q.processJob(ctx, job, handler)
		}
	}
}

// processJob runs the handler exactly once. A model call is never
// retried, so neither is a job: a handler error marks the job failed
// with the cause recorded.
func (q *Queue) processJob(ctx context.Context, queued *jobs.AnalyzeBatchJob, handler jobs.JobHandler) {
	// Work on a copy. The publisher still holds the pointer it passed to
	// PublishAnalyzeBatch and may read it after we start; only the store
	// sees lifecycle updates.
	job := *queued
	job.Status = jobs.JobStatusRunning
	now := time.Now()
	job.StartedAt = &now

	if q.store != nil {
		_ = q.store.SaveJob(ctx, &job)
	}

	err := handler(ctx, &job)

	completedAt := time.Now()
	job.CompletedAt = &completedAt

	if err != nil {
		job.Status = jobs.JobStatusFailed
		job.Error = err.Error()
	} else {
		job.Status = jobs.JobStatusCompleted
		job.Error = ""
	}

	if q.store != nil {
		_ = q.store.SaveJob(ctx, &job)
	}
}

// Stop implements jobs.Consumer. It closes the queue and waits for
// in-flight jobs, up to the context deadline.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements jobs.Publisher.
func (q *Queue) Close() error {
	return q.Stop(context.Background())
}
