package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"content-forge/core/errs"

	goredis "github.com/redis/go-redis/v9"
)

// RedisQueue stores jobs in a redis list: producers LPUSH, consumers BRPOP.
type RedisQueue struct {
	rdb  *goredis.Client
	key  string
	dead string
}

// NewRedisQueue creates a queue on an existing client.
func NewRedisQueue(rdb *goredis.Client, cfg Config) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: cfg.Key(), dead: cfg.DeadLetterKey()}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job string, args ...any) (string, error) {
	j, err := newJob(job, args)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(j)
	if err != nil {
		return "", fmt.Errorf("encode job: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.key, payload).Err(); err != nil {
		return "", errs.CacheUnavailable("enqueue "+job, err)
	}
	return j.ID, nil
}

func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	res, err := q.rdb.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.CacheUnavailable("dequeue", err)
	}
	// BRPOP replies with [key, value].
	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected brpop reply of %d elements", len(res))
	}
	var j Job
	if err := json.Unmarshal([]byte(res[1]), &j); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &j, nil
}

func (q *RedisQueue) DeadLetter(ctx context.Context, job *Job, cause error) error {
	failed := *job
	if cause != nil {
		failed.Error = cause.Error()
	}
	payload, err := json.Marshal(failed)
	if err != nil {
		return fmt.Errorf("encode dead letter: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.dead, payload).Err(); err != nil {
		return errs.CacheUnavailable("dead letter", err)
	}
	return nil
}
