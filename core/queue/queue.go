package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Queue enqueues named jobs for asynchronous execution.
type Queue interface {
	// Enqueue publishes a job and returns its handle.
	Enqueue(ctx context.Context, job string, args ...any) (string, error)
}

// Broker is a Queue that can also hand jobs to a Consumer.
type Broker interface {
	Queue
	// Dequeue blocks up to timeout and returns nil when no job arrived.
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)
	// DeadLetter records a job whose handler failed.
	DeadLetter(ctx context.Context, job *Job, cause error) error
}

// Job is the envelope stored on the queue.
type Job struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Args       []json.RawMessage `json:"args"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
	Error      string            `json:"error,omitempty"`
}

// StringArg decodes argument i as a string.
func (j *Job) StringArg(i int) (string, error) {
	if i >= len(j.Args) {
		return "", fmt.Errorf("job %s: missing argument %d", j.Name, i)
	}
	var s string
	if err := json.Unmarshal(j.Args[i], &s); err != nil {
		return "", fmt.Errorf("job %s: argument %d: %w", j.Name, i, err)
	}
	return s, nil
}

func newJob(name string, args []any) (*Job, error) {
	raw := make([]json.RawMessage, 0, len(args))
	for i, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("job %s: encode argument %d: %w", name, i, err)
		}
		raw = append(raw, b)
	}
	return &Job{
		ID:         uuid.NewString(),
		Name:       name,
		Args:       raw,
		EnqueuedAt: time.Now().UTC(),
	}, nil
}
