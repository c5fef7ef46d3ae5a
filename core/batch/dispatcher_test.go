package batch_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"content-forge/core/batch"
	"content-forge/core/cache"
	"content-forge/core/errs"
	"content-forge/core/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyCache fails HashSetAll for chosen keys.
type flakyCache struct {
	cache.Cache
	failKeys map[string]bool
}

func (c *flakyCache) HashSetAll(ctx context.Context, key string, fields map[string]string) error {
	if c.failKeys[key] {
		return errs.CacheUnavailable("hset "+key, errors.New("connection refused"))
	}
	return c.Cache.HashSetAll(ctx, key, fields)
}

func makeSpecs(n int) []testSpec {
	specs := make([]testSpec, n)
	for i := range specs {
		specs[i] = testSpec{Code: fmt.Sprintf("S%03d", i)}
	}
	return specs
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("batch-%d", n)
	}
}

func TestDispatcher_Windows(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory()
	records := batch.NewRecords[testSpec](batch.NewStore(c), testTemplate, time.Hour)
	q := queue.NewMemoryQueue(10)

	d := batch.NewDispatcher(records, q, zap.NewNop())
	ids, err := d.Dispatch(ctx, makeSpecs(150), 50, "generate_test_batch")
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, 3, q.Len())

	seen := map[string]bool{}
	for _, id := range ids {
		rec, err := records.Load(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, batch.StatusPending, rec.Status)
		assert.Equal(t, 50, rec.TargetCount)
		assert.Len(t, rec.Specs, 50)
		for _, s := range rec.Specs {
			assert.False(t, seen[s.Code], "spec %s dispatched twice", s.Code)
			seen[s.Code] = true
		}
	}
	assert.Len(t, seen, 150)

	for range ids {
		job, err := q.Dequeue(ctx, time.Second)
		require.NoError(t, err)
		require.NotNil(t, job)
		assert.Equal(t, "generate_test_batch", job.Name)
		assert.Len(t, job.Args, 1)
		id, err := job.StringArg(0)
		require.NoError(t, err)
		assert.Contains(t, ids, id)
	}
}

func TestDispatcher_ShortLastWindow(t *testing.T) {
	ctx := context.Background()
	records := batch.NewRecords[testSpec](batch.NewStore(cache.NewMemory()), testTemplate, time.Hour)
	d := batch.NewDispatcher(records, queue.NewMemoryQueue(10), zap.NewNop()).WithIDGenerator(sequentialIDs())

	ids, err := d.Dispatch(ctx, makeSpecs(7), 3, "job")
	require.NoError(t, err)
	assert.Equal(t, []string{"batch-1", "batch-2", "batch-3"}, ids)

	last, err := records.Load(ctx, "batch-3")
	require.NoError(t, err)
	assert.Equal(t, 1, last.TargetCount)
}

func TestDispatcher_SaveFailureDropsWindow(t *testing.T) {
	ctx := context.Background()
	c := &flakyCache{
		Cache:    cache.NewMemory(),
		failKeys: map[string]bool{batch.Key(testTemplate, "batch-2"): true},
	}
	records := batch.NewRecords[testSpec](batch.NewStore(c), testTemplate, time.Hour)
	q := queue.NewMemoryQueue(10)
	d := batch.NewDispatcher(records, q, zap.NewNop()).WithIDGenerator(sequentialIDs())

	ids, err := d.Dispatch(ctx, makeSpecs(150), 50, "job")
	require.NoError(t, err)
	assert.Equal(t, []string{"batch-1", "batch-3"}, ids)
	assert.Equal(t, 2, q.Len())

	for i := 0; i < 2; i++ {
		job, _ := q.Dequeue(ctx, time.Second)
		id, _ := job.StringArg(0)
		assert.NotEqual(t, "batch-2", id)
	}
}

func TestDispatcher_Edges(t *testing.T) {
	ctx := context.Background()
	records := batch.NewRecords[testSpec](batch.NewStore(cache.NewMemory()), testTemplate, time.Hour)
	q := queue.NewMemoryQueue(10)
	d := batch.NewDispatcher(records, q, zap.NewNop())

	ids, err := d.Dispatch(ctx, nil, 50, "job")
	assert.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, 0, q.Len())

	_, err = d.Dispatch(ctx, makeSpecs(3), 0, "job")
	assert.ErrorIs(t, err, errs.ErrConfiguration)

	t.Run("Nothing stored", func(t *testing.T) {
		c := &flakyCache{Cache: cache.NewMemory(), failKeys: map[string]bool{batch.Key(testTemplate, "batch-1"): true}}
		d := batch.NewDispatcher(batch.NewRecords[testSpec](batch.NewStore(c), testTemplate, time.Hour), q, zap.NewNop()).
			WithIDGenerator(sequentialIDs())
		_, err := d.Dispatch(ctx, makeSpecs(2), 5, "job")
		assert.ErrorIs(t, err, errs.ErrCacheUnavailable)
		assert.Equal(t, 0, q.Len())
	})
}
