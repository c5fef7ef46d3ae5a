package items

import (
	"context"
	"fmt"
	"time"

	"content-forge/core/batch"
	"content-forge/core/queue"
	"content-forge/core/reference"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Queue job and batch key of item generation.
const (
	JobName     = "generate_item_batch"
	KeyTemplate = "generation_task:item:{batch_id}"
	BatchKind   = "item"
)

// NewRecords returns the item batch records.
func NewRecords(store *batch.Store, ttl time.Duration) *batch.Records[Spec] {
	return batch.NewRecords[Spec](store, KeyTemplate, ttl)
}

// NewWorker wires the generic batch worker for items.
func NewWorker(db *gorm.DB, records *batch.Records[Spec], refs *reference.Store, repo *GormRepository, logger *zap.Logger) *batch.Worker[Spec, Template] {
	return batch.NewWorker[Spec, Template](db, records, NewGenerator(refs), repo, logger.Named("items")).
		WithKind(BatchKind)
}

// JobHandler adapts the worker to the queue consumer. The job's only argument is the batch id.
func JobHandler(w *batch.Worker[Spec, Template]) queue.HandlerFunc {
	return func(ctx context.Context, job *queue.Job) error {
		id, err := job.StringArg(0)
		if err != nil {
			return err
		}
		if _, err := w.Run(ctx, id); err != nil {
			return fmt.Errorf("item batch %s: %w", id, err)
		}
		return nil
	}
}
