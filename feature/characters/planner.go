package characters

import (
	"context"
	"time"

	"content-forge/core/batch"
	"content-forge/core/errs"
	"content-forge/core/telemetry"
	"content-forge/core/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Report describes one planning run.
type Report struct {
	Snapshot Snapshot `json:"snapshot"`
	Target   int      `json:"target"`
	Planned  int      `json:"planned"`
	BatchIDs []string `json:"batch_ids"`
}

// Planner tops the character pool up to its target size.
type Planner struct {
	repo       Repository
	quota      *QuotaPlanner
	dispatcher *batch.Dispatcher[Spec]
	cfg        Config
	logger     *zap.Logger
}

// NewPlanner creates a planner.
func NewPlanner(repo Repository, quota *QuotaPlanner, dispatcher *batch.Dispatcher[Spec], cfg Config, logger *zap.Logger) *Planner {
	return &Planner{repo: repo, quota: quota, dispatcher: dispatcher, cfg: cfg, logger: logger}
}

// PlanAndEnqueue returns the ids of the dispatched batches.
func (p *Planner) PlanAndEnqueue(ctx context.Context, races []Race, maleRatio float64) ([]string, error) {
	report, err := p.Plan(ctx, races, maleRatio)
	if err != nil {
		return nil, err
	}
	return report.BatchIDs, nil
}

// Snapshot analyzes the available entries of the pool.
func (p *Planner) Snapshot(ctx context.Context) (Snapshot, error) {
	entries, err := p.repo.GetAll(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Analyze(entries), nil
}

// Target returns the configured pool size.
func (p *Planner) Target() int {
	return p.cfg.TargetPoolSize
}

// Plan analyzes the pool, computes the missing specs and dispatches them.
func (p *Planner) Plan(ctx context.Context, races []Race, maleRatio float64) (Report, error) {
	ctx, span := telemetry.Tracer("content-forge/characters").Start(ctx, "characters.plan")
	defer span.End()

	report := Report{Target: p.cfg.TargetPoolSize, BatchIDs: []string{}}
	if len(races) == 0 {
		return report, errs.Configuration("no playable races to plan characters for")
	}

	dist, err := p.cfg.Distribution()
	if err != nil {
		return report, err
	}

	report.Snapshot, err = p.Snapshot(ctx)
	if err != nil {
		return report, err
	}

	specs, err := p.quota.Plan(report.Snapshot, p.cfg.TargetPoolSize, maleRatio, dist, races)
	if err != nil {
		return report, err
	}
	report.Planned = len(specs)

	span.SetAttributes(
		attribute.Int("characters.available", report.Snapshot.Count),
		attribute.Int("characters.planned", report.Planned),
	)

	if len(specs) == 0 {
		p.logger.Info("Character pool full",
			zap.Int("available", report.Snapshot.Count),
			zap.Int("target", p.cfg.TargetPoolSize),
		)
		return report, nil
	}

	started := time.Now()
	ids, err := p.dispatcher.Dispatch(ctx, specs, p.cfg.BatchSize, JobName)
	if err != nil {
		return report, err
	}
	report.BatchIDs = ids

	p.logger.Info("Character pool planned",
		zap.Int("available", report.Snapshot.Count),
		zap.Int("target", p.cfg.TargetPoolSize),
		zap.Int("planned", report.Planned),
		zap.Int("batches", len(ids)),
		zap.String("distribution", utils.FormatWeights(dist)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}
