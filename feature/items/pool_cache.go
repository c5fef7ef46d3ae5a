package items

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"content-forge/core/cache"
	"content-forge/core/fingerprint"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache keys of the built etalon pool.
const (
	PoolKey            = "etalon_pool:items"
	PoolFingerprintKey = "etalon_pool:items:fingerprint"
)

// PoolFingerprint hashes the three collections the pool is built from.
func PoolFingerprint(bases, materials, suffixes map[string]json.RawMessage) (string, error) {
	parts := make([]any, 0, 3)
	for _, c := range []struct {
		name    string
		records map[string]json.RawMessage
	}{
		{"item_base", bases},
		{"materials", materials},
		{"suffixes", suffixes},
	} {
		h, err := fingerprint.HashCollection(c.records)
		if err != nil {
			return "", err
		}
		parts = append(parts, map[string]string{"collection": c.name, "hash": h})
	}
	return fingerprint.Hash(parts)
}

// PoolCache keeps the last built pool next to the fingerprint of its inputs.
// Concurrent callers asking for the same fingerprint share one build.
type PoolCache struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
	group  singleflight.Group
}

// NewPoolCache creates a pool cache. A zero ttl keeps the pool until replaced.
func NewPoolCache(c cache.Cache, ttl time.Duration, logger *zap.Logger) *PoolCache {
	return &PoolCache{cache: c, ttl: ttl, logger: logger}
}

type poolResult struct {
	pool   Pool
	cached bool
}

// GetOrBuild returns the cached pool when its fingerprint equals fp, otherwise runs
// build and caches the result. The bool reports a cache hit.
func (p *PoolCache) GetOrBuild(ctx context.Context, fp string, build func() Pool) (Pool, bool, error) {
	v, err, _ := p.group.Do(fp, func() (any, error) {
		pool, ok, err := p.load(ctx, fp)
		if err != nil {
			return nil, err
		}
		if ok {
			return poolResult{pool: pool, cached: true}, nil
		}

		pool = build()
		if err := p.store(ctx, fp, pool); err != nil {
			p.logger.Warn("Failed to cache etalon pool", zap.Error(err))
		}
		return poolResult{pool: pool}, nil
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(poolResult)
	return res.pool, res.cached, nil
}

func (p *PoolCache) load(ctx context.Context, fp string) (Pool, bool, error) {
	stored, ok, err := p.cache.Get(ctx, PoolFingerprintKey)
	if err != nil {
		return nil, false, err
	}
	if !ok || string(stored) != fp {
		return nil, false, nil
	}

	raw, ok, err := p.cache.Get(ctx, PoolKey)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	var pool Pool
	if err := json.Unmarshal(raw, &pool); err != nil {
		p.logger.Warn("Cached etalon pool unreadable, rebuilding", zap.Error(err))
		return nil, false, nil
	}
	return pool, true, nil
}

func (p *PoolCache) store(ctx context.Context, fp string, pool Pool) error {
	raw, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("encode pool: %w", err)
	}
	if err := p.cache.Set(ctx, PoolKey, raw, p.ttl); err != nil {
		return err
	}
	return p.cache.Set(ctx, PoolFingerprintKey, []byte(fp), p.ttl)
}

// Invalidate drops the cached pool.
func (p *PoolCache) Invalidate(ctx context.Context) error {
	return p.cache.Del(ctx, PoolKey, PoolFingerprintKey)
}
