package characters

import (
	"context"
	"fmt"
	"time"

	"content-forge/core/batch"
	"content-forge/core/queue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Queue job and batch key of character generation.
const (
	JobName     = "generate_character_batch"
	KeyTemplate = "generation_task:character:{batch_id}"
	BatchKind   = "character"
)

// NewRecords returns the character batch records.
func NewRecords(store *batch.Store, ttl time.Duration) *batch.Records[Spec] {
	return batch.NewRecords[Spec](store, KeyTemplate, ttl)
}

// NewWorker wires the generic batch worker for characters.
func NewWorker(db *gorm.DB, records *batch.Records[Spec], gen *Generator, repo *GormRepository, logger *zap.Logger) *batch.Worker[Spec, PoolEntry] {
	return batch.NewWorker[Spec, PoolEntry](db, records, gen, repo, logger.Named("characters")).
		WithKind(BatchKind)
}

// JobHandler adapts the worker to the queue consumer. The job's only argument is the batch id.
func JobHandler(w *batch.Worker[Spec, PoolEntry]) queue.HandlerFunc {
	return func(ctx context.Context, job *queue.Job) error {
		id, err := job.StringArg(0)
		if err != nil {
			return err
		}
		if _, err := w.Run(ctx, id); err != nil {
			return fmt.Errorf("character batch %s: %w", id, err)
		}
		return nil
	}
}
