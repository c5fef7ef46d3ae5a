package items_test

import (
	"context"
	"encoding/json"
	"testing"

	"content-forge/core/cache"
	"content-forge/core/database"
	"content-forge/core/fingerprint"
	"content-forge/core/reference"
	"content-forge/feature/items"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// mapSource serves seed collections from memory.
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

func intPtr(v int) *int { return &v }

func daggerSeeds() mapSource {
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
	}
}

func newReferenceStore(t *testing.T, c cache.Cache, src mapSource) *reference.Store {
	store := reference.NewStore(c, fingerprint.NewCacheVersionStore(c), src, zap.NewNop())
	_, err := store.CacheAll(context.Background())
	require.NoError(t, err)
	return store
}

func newDB(t *testing.T) (*gorm.DB, *items.GormRepository) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	repo := items.NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return db, repo
}
