package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"content-forge/core/batch"
	"content-forge/core/cache"
	"content-forge/core/config"
	"content-forge/core/database"
	"content-forge/core/fingerprint"
	"content-forge/core/logger"
	"content-forge/core/queue"
	"content-forge/core/reference"
	"content-forge/core/storage"
	"content-forge/core/telemetry"
	"content-forge/feature/characters"
	"content-forge/feature/generation"
	"content-forge/feature/items"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the components every command builds from the configuration.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	cache  cache.Cache
	db     *gorm.DB
	broker queue.Broker
	store  *reference.Store

	itemPlanner      *items.Planner
	characterPlanner *characters.Planner
	service          *generation.Service
	registry         *queue.Registry

	shutdownTelemetry telemetry.Shutdown
}

// newApp loads configuration and connects every backend. The returned app must be closed.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	a := &app{cfg: cfg, logger: logg}
	a.shutdownTelemetry = telemetry.Init(ctx, cfg.Telemetry, logg)

	if a.cache, err = cache.New(cfg.Cache); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}
	if a.broker, err = newBroker(cfg.Queue, a.cache); err != nil {
		a.close()
		return nil, err
	}
	if a.db, err = database.Connect(cfg.Database); err != nil {
		a.close()
		return nil, err
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	itemRepo := items.NewRepository(a.db)
	characterRepo := characters.NewRepository(a.db)
	dbVersions := fingerprint.NewDBVersionStore(a.db)
	if cfg.Database.AutoMigrate {
		for _, m := range []func(context.Context) error{itemRepo.Migrate, characterRepo.Migrate, dbVersions.Migrate} {
			if err := m(ctx); err != nil {
				a.close()
				return nil, fmt.Errorf("failed to migrate: %w", err)
			}
		}
	}

	source, err := newSource(cfg)
	if err != nil {
		a.close()
		return nil, err
	}
	a.store = reference.NewStore(a.cache,
		fingerprint.Chain{fingerprint.NewCacheVersionStore(a.cache), dbVersions},
		source, logg.Named("reference"))

	batches := batch.NewStore(a.cache)
	itemRecords := items.NewRecords(batches, cfg.Items.BatchTTL())
	characterRecords := characters.NewRecords(batches, cfg.Characters.BatchTTL())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	a.itemPlanner = items.NewPlanner(a.store, itemRepo,
		items.NewPoolCache(a.cache, cfg.Items.PoolTTL(), logg),
		batch.NewDispatcher(itemRecords, a.broker, logg),
		cfg.Items, logg.Named("items"))
	a.characterPlanner = characters.NewPlanner(characterRepo,
		characters.NewQuotaPlanner(rand.New(rand.NewSource(rng.Int63()))),
		batch.NewDispatcher(characterRecords, a.broker, logg),
		cfg.Characters, logg.Named("characters"))

	a.service = generation.NewService(generation.Dependencies{
		Cache:       a.cache,
		DB:          a.db,
		Store:       a.store,
		Batches:     batches,
		Items:       a.itemPlanner,
		Characters:  a.characterPlanner,
		GenderRatio: cfg.Characters.DefaultGenderRatio,
		Pipeline:    cfg.Pipeline,
	}, logg)

	a.registry = queue.NewRegistry()
	err = errors.Join(
		a.registry.Register(items.JobName,
			items.JobHandler(items.NewWorker(a.db, itemRecords, a.store, itemRepo, logg))),
		a.registry.Register(characters.JobName,
			characters.JobHandler(characters.NewWorker(a.db, characterRecords,
				characters.NewGenerator(a.store, rand.New(rand.NewSource(rng.Int63()))), characterRepo, logg))),
	)
	if err != nil {
		a.close()
		return nil, err
	}

	return a, nil
}

func newBroker(cfg queue.Config, c cache.Cache) (queue.Broker, error) {
	switch cfg.Driver {
	case queue.DriverMemory:
		return queue.NewMemoryQueue(1024), nil
	case queue.DriverRedis, "":
		rc, ok := c.(*cache.RedisCache)
		if !ok {
			return nil, fmt.Errorf("queue driver %s needs the redis cache driver", cfg.Driver)
		}
		return queue.NewRedisQueue(rc.Client(), cfg), nil
	default:
		return nil, fmt.Errorf("unsupported queue driver: %s", cfg.Driver)
	}
}

func newSource(cfg *config.Config) (reference.Source, error) {
	if cfg.Reference.Source != reference.SourceBucket {
		return reference.NewDirSource(cfg.Reference.Dir), nil
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return reference.NewBucketSource(client, cfg.Storage.Bucket, cfg.Reference.Prefix), nil
}

func (a *app) consumer() *queue.Consumer {
	return queue.NewConsumer(a.broker, a.registry, a.logger, a.cfg.Queue)
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			a.logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.logger.Sync()
}
