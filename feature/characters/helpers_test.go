package characters_test

import (
	"context"
	"encoding/json"
	"testing"

	"content-forge/core/cache"
	"content-forge/core/database"
	"content-forge/core/fingerprint"
	"content-forge/core/reference"
	"content-forge/feature/characters"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
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

func characterSeeds() mapSource {
	return mapSource{
		reference.Personalities: {
			"BRAVE":  map[string]any{"personality_id": 1, "name": "Brave", "rarity_weight": 10},
			"HIDDEN": map[string]any{"personality_id": 2, "name": "Hidden", "rarity_weight": 0},
		},
		reference.BackgroundStories: {
			"ORPHAN": map[string]any{"story_id": 7, "name": "Orphan", "rarity_weight": 3},
		},
		reference.CreatureTypes: {
			"HUMAN": map[string]any{"creature_type_id": 1, "name": "Human", "rarity_weight": 100, "is_playable": true},
			"ELF":   map[string]any{"creature_type_id": 2, "name": "Elf", "rarity_weight": "rare", "is_playable": 1},
			"DRAKE": map[string]any{"creature_type_id": 3, "name": "Drake", "rarity_weight": 5, "is_playable": false},
		},
	}
}

func newReferenceStore(t *testing.T, c cache.Cache, src mapSource) *reference.Store {
	store := reference.NewStore(c, fingerprint.NewCacheVersionStore(c), src, zap.NewNop())
	_, err := store.CacheAll(context.Background())
	require.NoError(t, err)
	return store
}

func newDB(t *testing.T) (*gorm.DB, *characters.GormRepository) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	repo := characters.NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return db, repo
}
