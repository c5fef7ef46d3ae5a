// Package pipeline coordinates the ordered steps run at process start.
//
// The default sequence is: cache reference data, initialize data loaders, run planners.
// Each step is wrapped by a RetryPolicy (fixed delay, bounded attempts, built on
// cenkalti/backoff). A step failing with errs.ErrConfiguration is surfaced at once
// without retries. The first step that exhausts its attempts aborts the pipeline and Run
// returns false after logging at error level.
//
// There is no cross-step rollback, so every step must be idempotent: re-caching
// reference data is a no-op when fingerprints match, and planners only plan what the
// relational store is missing.
package pipeline
