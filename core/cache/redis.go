package cache

import (
	"context"
	"errors"
	"time"

	"content-forge/core/errs"

	goredis "github.com/redis/go-redis/v9"
)

// RedisCache implements Cache on top of go-redis.
type RedisCache struct {
	rdb *goredis.Client
}

// NewRedis connects to redis and verifies the connection with a ping.
func NewRedis(cfg Config) (*RedisCache, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: time.Duration(timeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errs.CacheUnavailable("redis ping", err)
	}

	return &RedisCache{rdb: rdb}, nil
}

// Client exposes the underlying client for components sharing the connection (job queue).
func (c *RedisCache) Client() *goredis.Client {
	return c.rdb
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.CacheUnavailable("get "+key, err)
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return errs.CacheUnavailable("set "+key, err)
	}
	return nil
}

func (c *RedisCache) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, errs.CacheUnavailable("setnx "+key, err)
	}
	return ok, nil
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return errs.CacheUnavailable("del", err)
	}
	return nil
}

func (c *RedisCache) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	m, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, errs.CacheUnavailable("hgetall "+key, err)
	}
	return m, nil
}

func (c *RedisCache) HashSetAll(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	if err := c.rdb.HSet(ctx, key, values).Err(); err != nil {
		return errs.CacheUnavailable("hset "+key, err)
	}
	return nil
}

func (c *RedisCache) HashSet(ctx context.Context, key, field, value string) error {
	if err := c.rdb.HSet(ctx, key, field, value).Err(); err != nil {
		return errs.CacheUnavailable("hset "+key, err)
	}
	return nil
}

func (c *RedisCache) HashIncrBy(ctx context.Context, key, field string, incr int64) (int64, error) {
	n, err := c.rdb.HIncrBy(ctx, key, field, incr).Result()
	if err != nil {
		return 0, errs.CacheUnavailable("hincrby "+key, err)
	}
	return n, nil
}

func (c *RedisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := c.rdb.Expire(ctx, key, ttl).Err(); err != nil {
		return errs.CacheUnavailable("expire "+key, err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errs.CacheUnavailable("ping", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
