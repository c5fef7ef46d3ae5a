package generation_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"content-forge/core/batch"
	"content-forge/core/loader"
	"content-forge/feature/characters"
	"content-forge/feature/generation"
	"content-forge/feature/items"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, opts fixtureOptions) (*fiber.App, fixture) {
	f := newFixture(t, opts)
	app := fiber.New()
	mgr := loader.NewManager(zap.NewNop())
	mgr.Register(generation.NewFeature(f.service))
	require.NoError(t, mgr.LoadAll(app))
	return app, f
}

func decode[T any](t *testing.T, body io.Reader) T {
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}

func TestHandlePlanItems(t *testing.T) {
	app, f := setupTestApp(t, fixtureOptions{cached: true})

	resp, err := app.Test(httptest.NewRequest("POST", "/generation/items/plan", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	report := decode[items.Report](t, resp.Body)
	assert.Equal(t, 1, report.Planned)
	require.Len(t, report.BatchIDs, 1)
	assert.Equal(t, 1, f.queue.Len())

	resp, err = app.Test(httptest.NewRequest("GET", "/generation/batches/item/"+report.BatchIDs[0], nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	status := decode[generation.BatchStatus](t, resp.Body)
	assert.Equal(t, batch.StatusPending, status.Status)
	assert.Equal(t, 1, status.TargetCount)
}

func TestHandlePlanItems_NotCached(t *testing.T) {
	app, _ := setupTestApp(t, fixtureOptions{})

	resp, err := app.Test(httptest.NewRequest("POST", "/generation/items/plan", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandlePlanCharacters(t *testing.T) {
	app, _ := setupTestApp(t, fixtureOptions{cached: true})

	req := httptest.NewRequest("POST", "/generation/characters/plan", strings.NewReader(`{"gender_ratio":"MALE:1,FEMALE:0"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	report := decode[characters.Report](t, resp.Body)
	assert.Equal(t, 4, report.Target)
	assert.Equal(t, 4, report.Planned)
	assert.Len(t, report.BatchIDs, 2)

	req = httptest.NewRequest("POST", "/generation/characters/plan", strings.NewReader(`{"gender_ratio":"MALE:x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestHandlePrestart(t *testing.T) {
	app, f := setupTestApp(t, fixtureOptions{})

	resp, err := app.Test(httptest.NewRequest("POST", "/generation/prestart", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode[map[string]any](t, resp.Body)
	assert.Equal(t, "completed", body["status"])
	assert.Len(t, body["steps"], 3)
	assert.Equal(t, 3, f.queue.Len())
}

func TestHandleBatchStatus_Errors(t *testing.T) {
	app, _ := setupTestApp(t, fixtureOptions{cached: true})

	resp, err := app.Test(httptest.NewRequest("GET", "/generation/batches/item/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/generation/batches/weapon/x", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
