package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MemoryQueue is a queueClient backed by an in-memory buffered channel. Jobs
// stay typed end to end; no wire encoding is involved.
type MemoryQueue struct {
	ch chan queuedJob
}

// NewMemoryQueue creates a MemoryQueue with the provided buffer capacity.
func NewMemoryQueue(buffer int) *MemoryQueue {
	if buffer <= 0 {
		buffer = 128
	}
	return &MemoryQueue{
		ch: make(chan queuedJob, buffer),
	}
}

// Send enqueues a job or blocks until ctx is done.
func (q *MemoryQueue) Send(ctx context.Context, job chatJob) error {
	if ctx == nil {
		ctx = context.Background()
	}
	queued := queuedJob{
		Job:           job,
		ReceiptHandle: uuid.NewString(),
	}

	select {
	case q.ch <- queued:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive blocks until a job is available, ctx is done, or waitSeconds elapses.
func (q *MemoryQueue) Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]queuedJob, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if maxMessages <= 0 {
		maxMessages = 1
	}

	var timer *time.Timer
	if waitSeconds > 0 {
		timer = time.NewTimer(time.Duration(waitSeconds) * time.Second)
		defer timer.Stop()
	}

	for {
		if timer == nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case queued := <-q.ch:
				return q.collect(ctx, queued, maxMessages), nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, nil
		case queued := <-q.ch:
			return q.collect(ctx, queued, maxMessages), nil
		}
	}
}

// Delete is a no-op for the in-memory queue.
func (q *MemoryQueue) Delete(_ context.Context, _ string) error {
	return nil
}

func (q *MemoryQueue) collect(ctx context.Context, first queuedJob, max int) []queuedJob {
	if ctx == nil {
		ctx = context.Background()
	}
	jobs := make([]queuedJob, 0, max)
	jobs = append(jobs, first)

	for len(jobs) < max {
		select {
		case <-ctx.Done():
			return jobs
		case queued := <-q.ch:
			jobs = append(jobs, queued)
		default:
			return jobs
		}
	}
	return jobs
}
