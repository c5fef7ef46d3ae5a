package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound marks an absent cache or store entry. Recoverable by re-caching or a fallback.
	ErrNotFound = errors.New("not found")
	// ErrNotCached is returned when a collection has never been written to the cache.
	ErrNotCached = fmt.Errorf("not cached: %w", ErrNotFound)
	// ErrStale is returned when cached content no longer matches its stored version.
	ErrStale = fmt.Errorf("stale cache entry: %w", ErrNotFound)
	// ErrValidation marks a spec or record that fails schema checks. Only that item is skipped.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence marks a failed bulk write. Fatal to the batch.
	ErrPersistence = errors.New("persistence failed")
	// ErrCacheUnavailable marks an unreachable cache backend. Fatal to the pipeline step, retried.
	ErrCacheUnavailable = errors.New("cache unavailable")
	// ErrConfiguration marks a missing or malformed required setting. Never retried.
	ErrConfiguration = errors.New("configuration error")
)

// NotFound wraps a formatted message with ErrNotFound.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Validation wraps a formatted message with ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Configuration wraps a formatted message with ErrConfiguration.
func Configuration(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// Persistence wraps cause with ErrPersistence.
func Persistence(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, cause)
}

// CacheUnavailable wraps cause with ErrCacheUnavailable.
func CacheUnavailable(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrCacheUnavailable, op, cause)
}

// HTTPStatus maps err onto the status code the HTTP handlers answer with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrCacheUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
