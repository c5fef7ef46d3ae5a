package items

import (
	"context"
	"time"

	"content-forge/core/batch"
	"content-forge/core/reference"
	"content-forge/core/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Report describes one planning run.
type Report struct {
	PoolSize   int      `json:"pool_size"`
	PoolCached bool     `json:"pool_cached"`
	Existing   int      `json:"existing"`
	Missing    int      `json:"missing"`
	Planned    int      `json:"planned"`
	Obsolete   int      `json:"obsolete"`
	Purged     int      `json:"purged"`
	BatchIDs   []string `json:"batch_ids"`
}

// Planner plans the item variants missing from the relational store and dispatches
// them as generation batches.
type Planner struct {
	store      *reference.Store
	repo       Repository
	pool       *PoolCache
	dispatcher *batch.Dispatcher[Spec]
	cfg        Config
	logger     *zap.Logger
}

// NewPlanner creates a planner.
func NewPlanner(store *reference.Store, repo Repository, pool *PoolCache, dispatcher *batch.Dispatcher[Spec], cfg Config, logger *zap.Logger) *Planner {
	return &Planner{
		store:      store,
		repo:       repo,
		pool:       pool,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger,
	}
}

// PlanAndEnqueue returns the ids of the dispatched batches.
func (p *Planner) PlanAndEnqueue(ctx context.Context) ([]string, error) {
	report, err := p.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return report.BatchIDs, nil
}

// Preview computes the pool and its diff against the store without purging or
// dispatching anything.
func (p *Planner) Preview(ctx context.Context) (Report, error) {
	report, _, _, err := p.diff(ctx)
	return report, err
}

func (p *Planner) diff(ctx context.Context) (Report, []Spec, []string, error) {
	report := Report{BatchIDs: []string{}}

	refs, err := LoadReferences(ctx, p.store)
	if err != nil {
		return report, nil, nil, err
	}

	pool, cached, err := p.pool.GetOrBuild(ctx, refs.Fingerprint, func() Pool {
		return Build(refs.Bases, refs.Materials, refs.Suffixes)
	})
	if err != nil {
		return report, nil, nil, err
	}
	report.PoolSize = len(pool)
	report.PoolCached = cached

	existing, err := p.repo.GetAllItemCodes(ctx)
	if err != nil {
		return report, nil, nil, err
	}
	report.Existing = len(existing)

	missing, obsolete := Diff(pool, existing)
	report.Missing = len(missing)
	report.Obsolete = len(obsolete)
	return report, missing, obsolete, nil
}

// Plan runs one planning cycle and reports what it found and dispatched.
func (p *Planner) Plan(ctx context.Context) (Report, error) {
	ctx, span := telemetry.Tracer("content-forge/items").Start(ctx, "items.plan")
	defer span.End()

	started := time.Now()
	report, missing, obsolete, err := p.diff(ctx)
	if err != nil {
		return report, err
	}
	cached := report.PoolCached

	if len(obsolete) > 0 {
		if p.cfg.PurgeObsolete {
			n, err := p.repo.DeleteByCodes(ctx, obsolete)
			if err != nil {
				p.logger.Error("Failed to purge obsolete item codes", zap.Int("codes", len(obsolete)), zap.Error(err))
			} else {
				report.Purged = n
				p.logger.Info("Purged obsolete item codes", zap.Int("deleted", n))
			}
		} else {
			p.logger.Info("Obsolete item codes kept", zap.Int("codes", len(obsolete)))
		}
	}

	if p.cfg.GenerationLimit > 0 && len(missing) > p.cfg.GenerationLimit {
		p.logger.Info("Item generation capped",
			zap.Int("missing", len(missing)),
			zap.Int("limit", p.cfg.GenerationLimit),
		)
		missing = missing[:p.cfg.GenerationLimit]
	}
	report.Planned = len(missing)

	span.SetAttributes(
		attribute.Int("items.pool_size", report.PoolSize),
		attribute.Int("items.missing", report.Missing),
		attribute.Int("items.planned", report.Planned),
	)

	if len(missing) == 0 {
		p.logger.Info("Item templates up to date",
			zap.Int("pool", report.PoolSize),
			zap.Bool("pool_cached", cached),
			zap.Duration("elapsed", time.Since(started)),
		)
		return report, nil
	}

	ids, err := p.dispatcher.Dispatch(ctx, missing, p.cfg.BatchSize, JobName)
	if err != nil {
		return report, err
	}
	report.BatchIDs = ids

	p.logger.Info("Item templates planned",
		zap.Int("pool", report.PoolSize),
		zap.Bool("pool_cached", cached),
		zap.Int("planned", report.Planned),
		zap.Int("batches", len(ids)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}
