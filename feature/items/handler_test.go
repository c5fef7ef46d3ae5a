package items_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"content-forge/core/loader"
	"content-forge/core/reference"
	"content-forge/feature/items"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newItemsApp(t *testing.T, src mapSource) *fiber.App {
	f := newPlannerFixture(t, src, items.Config{BatchSize: 5})
	app := fiber.New()
	mgr := loader.NewManager(zap.NewNop())
	mgr.Register(items.NewFeature(f.planner, zap.NewNop()))
	require.NoError(t, mgr.LoadAll(app))
	return app
}

func TestHandlePool(t *testing.T) {
	app := newItemsApp(t, daggerSeeds())

	resp, err := app.Test(httptest.NewRequest("GET", "/items/pool", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report items.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 1, report.PoolSize)
	assert.Equal(t, 1, report.Missing)
	assert.Zero(t, report.Planned)
}

func TestHandlePool_InvalidReferences(t *testing.T) {
	src := daggerSeeds()
	src[reference.Modifiers] = map[string]any{
		"BROKEN": map[string]any{"name": "Broken", "min": 5, "max": 1},
	}
	app := newItemsApp(t, src)

	resp, err := app.Test(httptest.NewRequest("GET", "/items/pool", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
