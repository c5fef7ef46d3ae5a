package pipeline

import (
	"context"
	"fmt"
	"time"

	"content-forge/core/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Step is one idempotent unit of the pre-start sequence.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline runs its steps in order, retrying each one under the policy. The first step
// that exhausts its retries aborts the run. Steps are never rolled back.
type Pipeline struct {
	steps  []Step
	policy RetryPolicy
	logger *zap.Logger
}

// New creates a pipeline.
func New(policy RetryPolicy, logger *zap.Logger, steps ...Step) *Pipeline {
	return &Pipeline{steps: steps, policy: policy, logger: logger}
}

// Steps returns the step names in execution order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Run reports whether every step succeeded.
func (p *Pipeline) Run(ctx context.Context) bool {
	return p.RunE(ctx) == nil
}

// RunE runs the pipeline and returns the error of the step that aborted it.
func (p *Pipeline) RunE(ctx context.Context) error {
	ctx, span := telemetry.Tracer("content-forge/pipeline").Start(ctx, "prestart.pipeline")
	defer span.End()

	started := time.Now()
	p.logger.Info("Pre-start pipeline started", zap.Strings("steps", p.Steps()))

	for i, step := range p.steps {
		if err := p.runStep(ctx, i+1, step); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, step.Name)
			p.logger.Error("Pre-start pipeline aborted",
				zap.String("step", step.Name),
				zap.Int("position", i+1),
				zap.Error(err),
			)
			return fmt.Errorf("step %s: %w", step.Name, err)
		}
	}

	p.logger.Info("Pre-start pipeline completed", zap.Duration("elapsed", time.Since(started)))
	return nil
}

func (p *Pipeline) runStep(ctx context.Context, position int, step Step) error {
	ctx, span := telemetry.Tracer("content-forge/pipeline").Start(ctx, "prestart.step")
	defer span.End()
	span.SetAttributes(attribute.String("step.name", step.Name), attribute.Int("step.position", position))

	l := p.logger.With(zap.String("step", step.Name))
	l.Info("Step started")

	err := p.policy.Do(ctx, step.Run, func(attempt int, err error, next time.Duration) {
		l.Warn("Step failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.policy.MaxAttempts),
			zap.Duration("delay", next),
			zap.Error(err),
		)
	})
	if err != nil {
		return err
	}

	l.Info("Step completed")
	return nil
}
