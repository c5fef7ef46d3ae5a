package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"content-forge/core/errs"
	"content-forge/core/logger"
	"content-forge/core/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompletionTTL bounds how long a finished batch stays inspectable.
const CompletionTTL = time.Hour

// Generator turns one spec into one row.
type Generator[S, R any] interface {
	// Prepare runs once per batch before any Generate call.
	Prepare(ctx context.Context) error
	// Generate builds the row for spec. An error skips that spec only.
	Generate(ctx context.Context, spec S) (R, error)
}

// Persister writes rows inside the worker's transaction and returns how many were stored.
type Persister[R any] interface {
	Persist(ctx context.Context, tx *gorm.DB, rows []R) (int, error)
}

// Result summarizes one worker run.
type Result struct {
	Status    Status
	Generated int
	Failed    int
}

// Worker consumes one batch: generate every spec, persist the successes in one
// transaction, then write the terminal status.
type Worker[S, R any] struct {
	db            *gorm.DB
	records       *Records[S]
	generator     Generator[S, R]
	persister     Persister[R]
	logger        *zap.Logger
	kind          string
	completionTTL time.Duration
}

// NewWorker creates a worker.
func NewWorker[S, R any](db *gorm.DB, records *Records[S], generator Generator[S, R], persister Persister[R], logger *zap.Logger) *Worker[S, R] {
	return &Worker[S, R]{
		db:            db,
		records:       records,
		generator:     generator,
		persister:     persister,
		logger:        logger,
		completionTTL: CompletionTTL,
	}
}

// WithKind sets the batch kind reported in log lines.
func (w *Worker[S, R]) WithKind(kind string) *Worker[S, R] {
	w.kind = kind
	return w
}

// Run processes batchID. The returned error is non-nil only when the batch could not be
// read or the bulk write failed; per-spec failures are reflected in the Result.
func (w *Worker[S, R]) Run(ctx context.Context, batchID string) (Result, error) {
	ctx, span := telemetry.Tracer("content-forge/batch").Start(ctx, "batch.worker.run")
	defer span.End()
	span.SetAttributes(attribute.String("batch.id", batchID), attribute.String("batch.template", w.records.Template()))

	l := logger.WithBatch(w.logger, w.kind, batchID)

	rec, err := w.records.Load(ctx, batchID)
	if err != nil {
		return Result{}, fmt.Errorf("load batch %s: %w", batchID, err)
	}
	if rec == nil || len(rec.Specs) == 0 {
		l.Info("Batch empty or missing, nothing to generate")
		return w.finish(ctx, l, batchID, Result{Status: StatusCompleted}, "")
	}

	if err := w.records.MarkInProgress(ctx, batchID); err != nil {
		l.Warn("Failed to mark batch in progress", zap.Error(err))
	}

	if err := w.generator.Prepare(ctx); err != nil {
		res, _ := w.finish(ctx, l, batchID, Result{Status: StatusFailed, Failed: len(rec.Specs)}, err.Error())
		return res, fmt.Errorf("prepare batch %s: %w", batchID, err)
	}

	rows := make([]R, 0, len(rec.Specs))
	failed := 0
	for i, spec := range rec.Specs {
		row, err := w.generator.Generate(ctx, spec)
		if err != nil {
			failed++
			l.Warn("Spec generation failed", zap.Int("index", i), zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return w.finish(ctx, l, batchID, Result{Status: StatusFailed, Failed: failed}, "no spec could be generated")
	}

	persisted := 0
	err = w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := w.persister.Persist(ctx, tx, rows)
		if err != nil {
			return err
		}
		persisted = n
		return nil
	})
	if err != nil {
		// Written outside the rolled back transaction, best effort.
		if _, finishErr := w.finish(ctx, l, batchID, Result{Status: StatusFailed, Failed: failed}, err.Error()); finishErr != nil {
			err = errors.Join(err, finishErr)
		}
		span.RecordError(err)
		return Result{Status: StatusFailed, Failed: failed}, errs.Persistence("persist batch "+batchID, err)
	}

	// Upserts may report more affected rows than inserted ones.
	if persisted > len(rows) {
		persisted = len(rows)
	}

	res := Result{Status: StatusCompleted, Generated: persisted, Failed: failed}
	message := ""
	if failed > 0 || persisted < rec.TargetCount {
		res.Status = StatusCompletedWithWarnings
		message = fmt.Sprintf("%d of %d specs persisted, %d failed", persisted, rec.TargetCount, failed)
	}
	return w.finish(ctx, l, batchID, res, message)
}

func (w *Worker[S, R]) finish(ctx context.Context, l *zap.Logger, batchID string, res Result, message string) (Result, error) {
	if err := w.records.Finish(ctx, batchID, res.Status, res.Generated, message, w.completionTTL); err != nil {
		l.Error("Failed to write batch status", zap.String("status", string(res.Status)), zap.Error(err))
		return res, err
	}
	l.Info("Batch finished",
		zap.String("status", string(res.Status)),
		zap.Int("generated", res.Generated),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}
