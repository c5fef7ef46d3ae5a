package reference

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"content-forge/core/cache"
	"content-forge/core/errs"
	"content-forge/core/fingerprint"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Report summarizes a CacheAll run.
type Report struct {
	Written   []string
	Unchanged []string
}

// Store is a fingerprint-guarded read-through cache of reference collections.
type Store struct {
	cache       cache.Cache
	versions    fingerprint.VersionStore
	source      Source
	collections []string
	logger      *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewStore creates a store caching collections from source.
func NewStore(c cache.Cache, versions fingerprint.VersionStore, source Source, logger *zap.Logger, collections ...string) *Store {
	if len(collections) == 0 {
		collections = AllCollections
	}
	return &Store{
		cache:       c,
		versions:    versions,
		source:      source,
		collections: collections,
		logger:      logger,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the random source used by GetWeightedRandom.
func (s *Store) WithRand(rng *rand.Rand) *Store {
	s.mu.Lock()
	s.rng = rng
	s.mu.Unlock()
	return s
}

// CacheAll loads every collection from the source and rewrites the cache entry and its
// version when the fingerprint changed or the cached entry no longer matches it.
func (s *Store) CacheAll(ctx context.Context) (Report, error) {
	var report Report

	for _, collection := range s.collections {
		records, err := s.source.Load(ctx, collection)
		if err != nil {
			return report, fmt.Errorf("load %s: %w", collection, err)
		}

		hash, err := fingerprint.HashCollection(records)
		if err != nil {
			return report, fmt.Errorf("fingerprint %s: %w", collection, err)
		}

		key := Key(collection)
		write := func(ctx context.Context) error {
			return s.write(ctx, key, records)
		}
		intact, err := s.intact(ctx, key, hash)
		if err != nil {
			return report, fmt.Errorf("read %s: %w", collection, err)
		}
		changed := true
		if intact {
			changed, err = fingerprint.Refresh(ctx, s.versions, key, hash, write)
		} else {
			err = fingerprint.Rewrite(ctx, s.versions, key, hash, write)
		}
		if err != nil {
			return report, fmt.Errorf("refresh %s: %w", collection, err)
		}

		if changed {
			report.Written = append(report.Written, collection)
			s.logger.Info("Reference collection cached",
				zap.String("collection", collection),
				zap.Int("records", len(records)),
				zap.String("version", hash),
			)
		} else {
			report.Unchanged = append(report.Unchanged, collection)
			s.logger.Debug("Reference collection up to date", zap.String("collection", collection))
		}
	}

	return report, nil
}

// intact reports whether the cached hash at key still fingerprints to hash. An evicted
// or edited entry is rewritten even when its version key survived.
func (s *Store) intact(ctx context.Context, key, hash string) (bool, error) {
	records, err := s.cached(ctx, key)
	if err != nil {
		return false, err
	}
	cached, err := fingerprint.HashCollection(records)
	if err != nil {
		return false, nil
	}
	return cached == hash, nil
}

func (s *Store) cached(ctx context.Context, key string) (map[string]json.RawMessage, error) {
	fields, err := s.cache.HashGetAll(ctx, key)
	if err != nil {
		return nil, err
	}
	records := make(map[string]json.RawMessage, len(fields))
	for code, raw := range fields {
		records[code] = json.RawMessage(raw)
	}
	return records, nil
}

func (s *Store) write(ctx context.Context, key string, records map[string]json.RawMessage) error {
	if err := s.cache.Del(ctx, key); err != nil {
		return err
	}
	fields := make(map[string]string, len(records))
	for code, raw := range records {
		fields[code] = string(raw)
	}
	return s.cache.HashSetAll(ctx, key, fields)
}

// GetAll returns every record of a collection. It fails with errs.ErrNotCached when the
// collection was never cached and with errs.ErrStale when the cached content does not
// match its version.
func (s *Store) GetAll(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	key := Key(collection)

	version, ok, err := s.versions.GetVersion(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("collection %s: %w", collection, errs.ErrNotCached)
	}

	records, err := s.cached(ctx, key)
	if err != nil {
		return nil, err
	}

	hash, err := fingerprint.HashCollection(records)
	if err != nil {
		return nil, fmt.Errorf("fingerprint %s: %w", collection, err)
	}
	if hash != version {
		return nil, fmt.Errorf("collection %s: %w", collection, errs.ErrStale)
	}

	return records, nil
}

// GetWeightedRandom performs one weighted draw over a collection and returns the drawn
// record's idField (the record code when the field is absent). Records whose weightField
// is not positive are excluded. def is returned when nothing qualifies.
func (s *Store) GetWeightedRandom(ctx context.Context, collection, idField, weightField, def string) (string, error) {
	records, err := s.GetAll(ctx, collection)
	if err != nil {
		return def, err
	}
	return s.Pick(records, idField, weightField, def), nil
}

// Pick draws from already loaded records with the same rules as GetWeightedRandom.
func (s *Store) Pick(records map[string]json.RawMessage, idField, weightField, def string) string {
	codes := make([]string, 0, len(records))
	for code := range records {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	type candidate struct {
		id     string
		weight float64
	}
	var (
		candidates []candidate
		total      float64
	)
	for _, code := range codes {
		raw := records[code]
		weight := gjson.GetBytes(raw, weightField).Float()
		if weight <= 0 {
			continue
		}
		id := code
		if r := gjson.GetBytes(raw, idField); r.Exists() {
			id = r.String()
		}
		candidates = append(candidates, candidate{id: id, weight: weight})
		total += weight
	}
	if len(candidates) == 0 {
		return def
	}

	s.mu.Lock()
	roll := s.rng.Float64() * total
	s.mu.Unlock()

	for _, c := range candidates {
		roll -= c.weight
		if roll < 0 {
			return c.id
		}
	}
	return candidates[len(candidates)-1].id
}

// validator is implemented by typed views with invariants beyond their JSON shape.
type validator interface {
	Validate() error
}

// Decode converts raw records into typed values once, at the boundary.
// A record that does not decode or validate is a validation error.
func Decode[T any](records map[string]json.RawMessage) (map[string]T, error) {
	out := make(map[string]T, len(records))
	for code, raw := range records {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errs.Validation("record %s: %v", code, err)
		}
		if val, ok := any(&v).(validator); ok {
			if err := val.Validate(); err != nil {
				return nil, errs.Validation("record %s: %v", code, err)
			}
		}
		out[code] = v
	}
	return out, nil
}
