// Package errs defines the error taxonomy shared by every generation component.
//
// Callers classify failures with errors.Is against the sentinels:
//   - ErrNotFound (and its refinements ErrNotCached, ErrStale): absent or outdated entry.
//   - ErrValidation: a single record or spec is malformed; skip it and continue.
//   - ErrPersistence: a bulk write failed; the enclosing batch fails.
//   - ErrCacheUnavailable: the cache backend is unreachable; pipeline steps retry.
//   - ErrConfiguration: a required setting is missing; surfaced immediately, never retried.
package errs
