package generation_test

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"content-forge/core/batch"
	"content-forge/core/cache"
	"content-forge/core/database"
	"content-forge/core/fingerprint"
	"content-forge/core/pipeline"
	"content-forge/core/queue"
	"content-forge/core/reference"
	"content-forge/feature/characters"
	"content-forge/feature/generation"
	"content-forge/feature/items"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapSource map[string]map[string]any

func (s mapSource) Load(_ context.Context, collection string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	for code, rec := range s[collection] {
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		out[code] = raw
	}
	return out, nil
}

func seeds() mapSource {
	return mapSource{
		reference.ItemBases: {
			"DAGGER": map[string]any{
				"category":   "WEAPON",
				"names":      map[string]any{"Shiv": map[string]any{"allowed_suffix_groups": []string{}}},
				"properties": map[string]any{"equip_slot": "MAIN_HAND", "inventory_size": "1x2"},
			},
		},
		reference.Materials: {
			"IRON": map[string]any{"name": "Iron", "type": "METAL", "rarity_level": 1},
		},
		reference.Suffixes: {
			"BASIC_EMPTY": map[string]any{},
		},
		reference.Personalities: {
			"BRAVE": map[string]any{"personality_id": 1, "name": "Brave", "rarity_weight": 10},
		},
		reference.BackgroundStories: {
			"ORPHAN": map[string]any{"story_id": 7, "name": "Orphan", "rarity_weight": 3},
		},
		reference.CreatureTypes: {
			"HUMAN": map[string]any{"creature_type_id": 1, "name": "Human", "rarity_weight": 100, "is_playable": true},
		},
	}
}

type fixture struct {
	service *generation.Service
	cache   *cache.MemoryCache
	store   *reference.Store
	queue   *queue.MemoryQueue
}

type fixtureOptions struct {
	src           mapSource
	cached        bool
	skipMigration bool
}

func newFixture(t *testing.T, opts fixtureOptions) fixture {
	ctx := context.Background()
	if opts.src == nil {
		opts.src = seeds()
	}

	c := cache.NewMemory()
	store := reference.NewStore(c, fingerprint.NewCacheVersionStore(c), opts.src, zap.NewNop())
	if opts.cached {
		_, err := store.CacheAll(ctx)
		require.NoError(t, err)
	}

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	itemRepo := items.NewRepository(db)
	require.NoError(t, itemRepo.Migrate(ctx))
	charRepo := characters.NewRepository(db)
	if !opts.skipMigration {
		require.NoError(t, charRepo.Migrate(ctx))
	}

	q := queue.NewMemoryQueue(32)
	batches := batch.NewStore(c)

	itemPlanner := items.NewPlanner(store, itemRepo, items.NewPoolCache(c, time.Hour, zap.NewNop()),
		batch.NewDispatcher(items.NewRecords(batches, time.Hour), q, zap.NewNop()),
		items.Config{BatchSize: 10}, zap.NewNop())

	charCfg := characters.Config{
		TargetPoolSize:      4,
		BatchSize:           2,
		DefaultGenderRatio:  "MALE:0.5,FEMALE:0.5",
		QualityDistribution: "BASIC_QUALITY:1",
	}
	charPlanner := characters.NewPlanner(charRepo, characters.NewQuotaPlanner(rand.New(rand.NewSource(3))),
		batch.NewDispatcher(characters.NewRecords(batches, time.Hour), q, zap.NewNop()),
		charCfg, zap.NewNop())

	svc := generation.NewService(generation.Dependencies{
		Cache:       c,
		DB:          db,
		Store:       store,
		Batches:     batches,
		Items:       itemPlanner,
		Characters:  charPlanner,
		GenderRatio: charCfg.DefaultGenderRatio,
		Pipeline:    pipeline.Config{MaxAttempts: 2, RetryDelaySeconds: 0, LockTTLSeconds: 60},
	}, zap.NewNop())

	return fixture{service: svc, cache: c, store: store, queue: q}
}
