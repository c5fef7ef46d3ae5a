// Package cache provides the key/value and hash store behind reference data, version
// fingerprints, the etalon pool and in-flight batch records.
//
// # Backends
//
//   - RedisCache: go-redis client, verified with a ping on construction. Every backend
//     error is wrapped with errs.ErrCacheUnavailable so pipeline steps can retry it.
//   - MemoryCache: mutex-guarded map with ttl support, selected with driver "memory"
//     for local runs and unit tests.
//
// A cache miss is never an error: Get reports absence through its bool return and
// HashGetAll returns an empty map. Callers treat a miss as "not yet warmed".
//
// # Usage
//
//	c, err := cache.New(cfg.Cache)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//	_ = c.HashSetAll(ctx, "generation_task:item:abc", map[string]string{"status": "pending"})
package cache
