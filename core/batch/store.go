package batch

import (
	"context"
	"time"

	"content-forge/core/cache"
)

// Store persists batch records as cache hashes at templated keys.
type Store struct {
	cache cache.Cache
}

// NewStore creates a batch store on c.
func NewStore(c cache.Cache) *Store {
	return &Store{cache: c}
}

// Save writes every field of a record and sets its ttl.
func (s *Store) Save(ctx context.Context, template, batchID string, values map[string]any, ttl time.Duration) error {
	fields, err := encodeFields(values)
	if err != nil {
		return err
	}
	key := Key(template, batchID)
	if err := s.cache.HashSetAll(ctx, key, fields); err != nil {
		return err
	}
	if ttl > 0 {
		return s.cache.Expire(ctx, key, ttl)
	}
	return nil
}

// Load returns the raw fields of a record. Absence is reported with ok=false.
func (s *Store) Load(ctx context.Context, template, batchID string) (map[string]string, bool, error) {
	fields, err := s.cache.HashGetAll(ctx, Key(template, batchID))
	if err != nil {
		return nil, false, err
	}
	if len(fields) == 0 {
		return nil, false, nil
	}
	return fields, true, nil
}

// UpdateFields partially updates a record; a positive ttl refreshes its expiry.
func (s *Store) UpdateFields(ctx context.Context, template, batchID string, values map[string]any, ttl time.Duration) error {
	return s.Save(ctx, template, batchID, values, ttl)
}

// IncrementField atomically adds delta to an integer field.
func (s *Store) IncrementField(ctx context.Context, template, batchID, field string, delta int64) (int64, error) {
	return s.cache.HashIncrBy(ctx, Key(template, batchID), field, delta)
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, template, batchID string) error {
	return s.cache.Del(ctx, Key(template, batchID))
}

// Records is a typed view of the store for one key template.
type Records[S any] struct {
	store    *Store
	template string
	ttl      time.Duration
}

// NewRecords binds a spec type and key template to store. ttl bounds pending records.
func NewRecords[S any](store *Store, template string, ttl time.Duration) *Records[S] {
	return &Records[S]{store: store, template: template, ttl: ttl}
}

// Template returns the key template.
func (r *Records[S]) Template() string {
	return r.template
}

// Save writes a full record.
func (r *Records[S]) Save(ctx context.Context, rec Record[S]) error {
	fields, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	values := make(map[string]any, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	return r.store.Save(ctx, r.template, rec.BatchID, values, r.ttl)
}

// Load returns the record or nil when it does not exist.
func (r *Records[S]) Load(ctx context.Context, batchID string) (*Record[S], error) {
	fields, ok, err := r.store.Load(ctx, r.template, batchID)
	if err != nil || !ok {
		return nil, err
	}
	return decodeRecord[S](batchID, fields)
}

// MarkInProgress moves a loaded record to in_progress.
func (r *Records[S]) MarkInProgress(ctx context.Context, batchID string) error {
	return r.store.UpdateFields(ctx, r.template, batchID, map[string]any{FieldStatus: StatusInProgress}, 0)
}

// Finish writes the terminal state of a batch and bounds it with ttl.
func (r *Records[S]) Finish(ctx context.Context, batchID string, status Status, generated int, message string, ttl time.Duration) error {
	values := map[string]any{
		FieldStatus:         status,
		FieldGeneratedCount: generated,
	}
	if message != "" {
		values[FieldErrorMessage] = message
	}
	return r.store.UpdateFields(ctx, r.template, batchID, values, ttl)
}
