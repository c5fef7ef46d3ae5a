package generation_test

import (
	"context"
	"testing"
	"time"

	"content-forge/core/batch"
	"content-forge/core/errs"
	"content-forge/core/reference"
	"content-forge/feature/characters"
	"content-forge/feature/generation"
	"content-forge/feature/items"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_PipelineSteps(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	assert.Equal(t, []string{
		generation.StepCacheReferenceData,
		generation.StepDataLoaders,
		generation.StepPlanners,
	}, f.service.Pipeline().Steps())
}

func TestService_RunPrestart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOptions{})

	require.NoError(t, f.service.RunPrestart(ctx))

	// One item batch and two character batches of two specs each.
	assert.Equal(t, 3, f.queue.Len())

	_, held, err := f.cache.Get(ctx, generation.PlannerLockKey)
	require.NoError(t, err)
	assert.False(t, held, "lock released after planners")

	races, err := f.service.PlayableRaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, []characters.Race{{ID: 1, Name: "Human", Weight: 100}}, races)
}

func TestService_RunPrestart_Locked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOptions{})

	ok, err := f.cache.SetNX(ctx, generation.PlannerLockKey, []byte("other"), time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, f.service.RunPrestart(ctx))
	assert.Zero(t, f.queue.Len())

	owner, held, err := f.cache.Get(ctx, generation.PlannerLockKey)
	require.NoError(t, err)
	assert.True(t, held)
	assert.Equal(t, "other", string(owner))
}

func TestService_RunPrestart_NoPlayableRaces(t *testing.T) {
	src := seeds()
	src[reference.CreatureTypes] = map[string]any{
		"DRAKE": map[string]any{"creature_type_id": 3, "name": "Drake", "is_playable": false},
	}
	f := newFixture(t, fixtureOptions{src: src})

	err := f.service.RunPrestart(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConfiguration)
	assert.Contains(t, err.Error(), generation.StepDataLoaders)
	assert.Zero(t, f.queue.Len())
}

func TestService_RunPrestart_MissingTable(t *testing.T) {
	f := newFixture(t, fixtureOptions{skipMigration: true})

	err := f.service.RunPrestart(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table character_pool is missing")
	assert.Zero(t, f.queue.Len())
}

func TestService_PlanCharacters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOptions{cached: true})

	report, err := f.service.PlanCharacters(ctx, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Planned)
	assert.Len(t, report.BatchIDs, 2)

	_, err = f.service.PlanCharacters(ctx, []characters.Race{}, 1)
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestService_BatchStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOptions{cached: true})

	report, err := f.service.PlanItems(ctx)
	require.NoError(t, err)
	require.Len(t, report.BatchIDs, 1)

	status, err := f.service.BatchStatus(ctx, items.BatchKind, report.BatchIDs[0])
	require.NoError(t, err)
	assert.Equal(t, &generation.BatchStatus{
		Kind:        items.BatchKind,
		BatchID:     report.BatchIDs[0],
		Status:      batch.StatusPending,
		TargetCount: 1,
	}, status)

	_, err = f.service.BatchStatus(ctx, characters.BatchKind, report.BatchIDs[0])
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = f.service.BatchStatus(ctx, "weapon", report.BatchIDs[0])
	assert.ErrorIs(t, err, errs.ErrValidation)
}
