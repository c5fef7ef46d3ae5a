package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryQueue is an in-process Broker for single-process runs and tests.
type MemoryQueue struct {
	jobs chan *Job

	mu   sync.Mutex
	dead []*Job
}

// NewMemoryQueue creates a queue buffering up to size jobs.
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 1024
	}
	return &MemoryQueue{jobs: make(chan *Job, size)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job string, args ...any) (string, error) {
	j, err := newJob(job, args)
	if err != nil {
		return "", err
	}
	select {
	case q.jobs <- j:
		return j.ID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case j := <-q.jobs:
		return j, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, nil
	}
}

func (q *MemoryQueue) DeadLetter(_ context.Context, job *Job, cause error) error {
	failed := *job
	if cause != nil {
		failed.Error = cause.Error()
	}
	q.mu.Lock()
	q.dead = append(q.dead, &failed)
	q.mu.Unlock()
	return nil
}

// Len returns the number of pending jobs.
func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}

// DeadLetters returns a copy of the failed jobs.
func (q *MemoryQueue) DeadLetters() []*Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*Job, len(q.dead))
	copy(out, q.dead)
	return out
}
