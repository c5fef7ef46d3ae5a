package batch

import (
	"context"
	"fmt"

	"content-forge/core/errs"
	"content-forge/core/queue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher splits planned specs into fixed windows, stores each window as a pending
// record and enqueues one job per stored window.
type Dispatcher[S any] struct {
	records *Records[S]
	queue   queue.Queue
	logger  *zap.Logger
	newID   func() string
}

// NewDispatcher creates a dispatcher writing to records and publishing on q.
func NewDispatcher[S any](records *Records[S], q queue.Queue, logger *zap.Logger) *Dispatcher[S] {
	return &Dispatcher[S]{
		records: records,
		queue:   q,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// WithIDGenerator replaces the batch id generator.
func (d *Dispatcher[S]) WithIDGenerator(fn func() string) *Dispatcher[S] {
	d.newID = fn
	return d
}

// Dispatch returns the ids of the batches that were both stored and enqueued. A window
// whose record cannot be saved is dropped without a job, so no job ever references
// missing data. It fails only when nothing at all could be dispatched.
func (d *Dispatcher[S]) Dispatch(ctx context.Context, specs []S, batchSize int, jobName string) ([]string, error) {
	if batchSize <= 0 {
		return nil, errs.Configuration("batch size must be positive, got %d", batchSize)
	}
	if len(specs) == 0 {
		return []string{}, nil
	}

	var (
		ids     []string
		lastErr error
	)
	for start := 0; start < len(specs); start += batchSize {
		end := start + batchSize
		if end > len(specs) {
			end = len(specs)
		}
		window := make([]S, end-start)
		copy(window, specs[start:end])

		rec := Record[S]{
			BatchID:     d.newID(),
			Specs:       window,
			TargetCount: len(window),
			Status:      StatusPending,
		}

		if err := d.records.Save(ctx, rec); err != nil {
			lastErr = err
			d.logger.Warn("Batch save failed, window dropped",
				zap.String("batch_id", rec.BatchID),
				zap.Int("specs", len(window)),
				zap.Error(err),
			)
			continue
		}

		if _, err := d.queue.Enqueue(ctx, jobName, rec.BatchID); err != nil {
			lastErr = err
			d.logger.Error("Batch enqueue failed, record left to expire",
				zap.String("batch_id", rec.BatchID),
				zap.String("job", jobName),
				zap.Error(err),
			)
			continue
		}

		ids = append(ids, rec.BatchID)
	}

	d.logger.Info("Batches dispatched",
		zap.String("job", jobName),
		zap.Int("specs", len(specs)),
		zap.Int("batches", len(ids)),
	)

	if len(ids) == 0 {
		return nil, fmt.Errorf("no batch dispatched for %s: %w", jobName, lastErr)
	}
	return ids, nil
}
