package generation

import (
	"context"
	"encoding/json"
	"time"

	"content-forge/core/batch"
	"content-forge/core/cache"
	"content-forge/core/database"
	"content-forge/core/errs"
	"content-forge/core/pipeline"
	"content-forge/core/reference"
	"content-forge/feature/characters"
	"content-forge/feature/items"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Pipeline step names in execution order.
const (
	StepCacheReferenceData = "cache_reference_data"
	StepDataLoaders        = "data_loaders"
	StepPlanners           = "planners"
)

// PlannerLockKey guards the planners step across concurrently starting instances.
const PlannerLockKey = "prestart:planners:lock"

// Dependencies are the components the service orchestrates.
type Dependencies struct {
	Cache      cache.Cache
	DB         *gorm.DB
	Store      *reference.Store
	Batches    *batch.Store
	Items      *items.Planner
	Characters *characters.Planner
	// GenderRatio is the "MALE:x,FEMALE:y" ratio the pipeline plans characters with.
	GenderRatio string
	Pipeline    pipeline.Config
}

// Service exposes the planning operations and the pre-start pipeline.
type Service struct {
	deps   Dependencies
	logger *zap.Logger
}

// NewService creates a new generation service.
func NewService(deps Dependencies, logger *zap.Logger) *Service {
	return &Service{deps: deps, logger: logger}
}

// PlanItems runs one item planning cycle.
func (s *Service) PlanItems(ctx context.Context) (items.Report, error) {
	return s.deps.Items.Plan(ctx)
}

// PlayableRaces loads the races characters are planned for.
func (s *Service) PlayableRaces(ctx context.Context) ([]characters.Race, error) {
	return characters.PlayableRaces(ctx, s.deps.Store)
}

// PlanCharacters runs one character planning cycle. A nil races list loads the playable
// races from the reference store.
func (s *Service) PlanCharacters(ctx context.Context, races []characters.Race, maleRatio float64) (characters.Report, error) {
	if races == nil {
		var err error
		if races, err = s.PlayableRaces(ctx); err != nil {
			return characters.Report{}, err
		}
	}
	return s.deps.Characters.Plan(ctx, races, maleRatio)
}

// RunPrestart runs the pre-start pipeline once and returns the error of the aborting step.
func (s *Service) RunPrestart(ctx context.Context) error {
	return s.Pipeline().RunE(ctx)
}

// Pipeline builds a fresh pre-start pipeline. Races loaded by data_loaders are handed to
// planners within the same run only.
func (s *Service) Pipeline() *pipeline.Pipeline {
	var races []characters.Race

	return pipeline.New(s.deps.Pipeline.Policy(), s.logger.Named("prestart"),
		pipeline.Step{Name: StepCacheReferenceData, Run: func(ctx context.Context) error {
			report, err := s.deps.Store.CacheAll(ctx)
			if err != nil {
				return err
			}
			s.logger.Info("Reference data cached",
				zap.Strings("written", report.Written),
				zap.Strings("unchanged", report.Unchanged),
			)
			return nil
		}},
		pipeline.Step{Name: StepDataLoaders, Run: func(ctx context.Context) error {
			if err := database.VerifyColumns(s.deps.DB.WithContext(ctx), map[string][]string{
				items.Template{}.TableName():       items.RequiredColumns,
				characters.PoolEntry{}.TableName(): characters.RequiredColumns,
			}); err != nil {
				return err
			}
			loaded, err := s.PlayableRaces(ctx)
			if err != nil {
				return err
			}
			if len(loaded) == 0 {
				return errs.Configuration("no playable creature types in %s", reference.CreatureTypes)
			}
			races = loaded
			return nil
		}},
		pipeline.Step{Name: StepPlanners, Run: func(ctx context.Context) error {
			return s.runPlanners(ctx, races)
		}},
	)
}

func (s *Service) runPlanners(ctx context.Context, races []characters.Race) error {
	ratio, err := characters.ParseGenderRatio(s.deps.GenderRatio)
	if err != nil {
		return err
	}

	release, ok := s.acquireLock(ctx)
	if !ok {
		s.logger.Info("Planners already running elsewhere, skipped")
		return nil
	}
	defer release()

	if _, err := s.deps.Items.Plan(ctx); err != nil {
		return err
	}
	_, err = s.deps.Characters.Plan(ctx, races, ratio)
	return err
}

// acquireLock takes the planner lock with SET NX. A cache failure does not block the
// planners: the lock only reduces duplicate work, upserts keep the result correct.
func (s *Service) acquireLock(ctx context.Context) (func(), bool) {
	ttl := time.Duration(s.deps.Pipeline.LockTTLSeconds) * time.Second
	owner := uuid.NewString()

	ok, err := s.deps.Cache.SetNX(ctx, PlannerLockKey, []byte(owner), ttl)
	if err != nil {
		s.logger.Warn("Planner lock unavailable, running unguarded", zap.Error(err))
		return func() {}, true
	}
	if !ok {
		return nil, false
	}
	return func() {
		// Context may already be cancelled; the ttl reclaims the key then.
		if err := s.deps.Cache.Del(context.WithoutCancel(ctx), PlannerLockKey); err != nil {
			s.logger.Warn("Failed to release planner lock", zap.Error(err))
		}
	}, true
}

// BatchStatus is the progress of one dispatched batch.
type BatchStatus struct {
	Kind           string       `json:"kind"`
	BatchID        string       `json:"batch_id"`
	Status         batch.Status `json:"status"`
	TargetCount    int          `json:"target_count"`
	GeneratedCount int          `json:"generated_count"`
	ErrorMessage   string       `json:"error_message,omitempty"`
}

// BatchTemplates maps batch kinds to their key templates.
var BatchTemplates = map[string]string{
	items.BatchKind:      items.KeyTemplate,
	characters.BatchKind: characters.KeyTemplate,
}

// BatchStatus reads the record of batch id of the given kind. An expired or unknown
// batch is ErrNotFound.
func (s *Service) BatchStatus(ctx context.Context, kind, id string) (*BatchStatus, error) {
	template, ok := BatchTemplates[kind]
	if !ok {
		return nil, errs.Validation("unknown batch kind %q", kind)
	}

	rec, err := batch.NewRecords[json.RawMessage](s.deps.Batches, template, 0).Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("%s batch %s", kind, id)
	}
	return &BatchStatus{
		Kind:           kind,
		BatchID:        id,
		Status:         rec.Status,
		TargetCount:    rec.TargetCount,
		GeneratedCount: rec.GeneratedCount,
		ErrorMessage:   rec.ErrorMessage,
	}, nil
}
