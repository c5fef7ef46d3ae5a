package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"content-forge/core/queue"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testCfg = queue.Config{Name: "generation", Prefix: "queue", Concurrency: 2, PollSeconds: 1}

func TestRedisQueue_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	defer rdb.Close()

	q := queue.NewRedisQueue(rdb, testCfg)

	id, err := q.Enqueue(ctx, "generate_item_batch", "batch-1")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	items, err := s.List("queue:generation")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	job, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, id, job.ID)
	assert.Equal(t, "generate_item_batch", job.Name)

	batchID, err := job.StringArg(0)
	assert.NoError(t, err)
	assert.Equal(t, "batch-1", batchID)

	_, err = job.StringArg(1)
	assert.Error(t, err)

	require.NoError(t, q.DeadLetter(ctx, job, errors.New("boom")))
	dead, err := s.List("queue:generation:dead")
	require.NoError(t, err)
	require.Len(t, dead, 1)

	var failed queue.Job
	require.NoError(t, json.Unmarshal([]byte(dead[0]), &failed))
	assert.Equal(t, "boom", failed.Error)
}

func TestRegistry(t *testing.T) {
	reg := queue.NewRegistry()
	noop := func(context.Context, *queue.Job) error { return nil }

	assert.NoError(t, reg.Register("a", noop))
	assert.Error(t, reg.Register("a", noop))
	assert.Error(t, reg.Register("", noop))
	assert.Error(t, reg.Register("b", nil))

	_, ok := reg.Get("a")
	assert.True(t, ok)
	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestConsumer_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewMemoryQueue(10)
	reg := queue.NewRegistry()

	var (
		mu   sync.Mutex
		seen []string
		done = make(chan struct{})
	)
	require.NoError(t, reg.Register("ok", func(_ context.Context, job *queue.Job) error {
		id, err := job.StringArg(0)
		if err != nil {
			return err
		}
		mu.Lock()
		seen = append(seen, id)
		if len(seen) == 2 {
			close(done)
		}
		mu.Unlock()
		return nil
	}))
	require.NoError(t, reg.Register("panics", func(context.Context, *queue.Job) error {
		panic("handler exploded")
	}))

	_, err := q.Enqueue(ctx, "panics")
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "ok", "b1")
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "ok", "b2")
	require.NoError(t, err)

	c := queue.NewConsumer(q, reg, zap.NewNop(), testCfg)
	stopped := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(stopped)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs were not consumed")
	}
	cancel()
	<-stopped

	assert.ElementsMatch(t, []string{"b1", "b2"}, seen)
	dead := q.DeadLetters()
	require.Len(t, dead, 1)
	assert.Equal(t, "panics", dead[0].Name)
	assert.Contains(t, dead[0].Error, "handler exploded")
}

func TestConsumer_ProcessUnknownJob(t *testing.T) {
	c := queue.NewConsumer(queue.NewMemoryQueue(1), queue.NewRegistry(), zap.NewNop(), testCfg)
	err := c.Process(context.Background(), &queue.Job{Name: "unknown"})
	assert.Error(t, err)
}
