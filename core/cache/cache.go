package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is the key/value and hash store used for reference data, versions and batch records.
// A missing key is reported through the bool return, never as an error.
type Cache interface {
	// Get returns the value stored at key.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value at key. A zero ttl keeps the key forever.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX stores value only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// Del removes keys.
	Del(ctx context.Context, keys ...string) error
	// HashGetAll returns every field of the hash at key, empty when absent.
	HashGetAll(ctx context.Context, key string) (map[string]string, error)
	// HashSetAll writes fields into the hash at key.
	HashSetAll(ctx context.Context, key string, fields map[string]string) error
	// HashSet writes a single field.
	HashSet(ctx context.Context, key, field, value string) error
	// HashIncrBy atomically increments an integer field and returns the new value.
	HashIncrBy(ctx context.Context, key, field string, incr int64) (int64, error)
	// Expire sets a ttl on key.
	Expire(ctx context.Context, key string, ttl time.Duration) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close() error
}

const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// New creates the cache selected by cfg.Driver.
func New(cfg Config) (Cache, error) {
	switch cfg.Driver {
	case DriverRedis, "":
		c, err := NewRedis(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", cfg.Driver)
	}
}
