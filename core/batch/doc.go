// Package batch moves planned generation work through the cache and the job queue.
//
// # Records
//
// A batch record is a cache hash at a templated key (for example
// "generation_task:item:{batch_id}") with the fields batch_id, specs (JSON),
// target_count, generated_count, status and an optional error_message. Records are
// created pending, moved to in_progress when a worker loads them, and receive exactly
// one terminal status (completed, completed_with_warnings, failed) with a one hour ttl.
// generated_count never exceeds target_count.
//
// # Dispatcher
//
// Dispatch splits specs into windows of batch size (the last may be short), saves each
// window under a fresh uuid and enqueues one job carrying only the batch id. A window
// that cannot be saved is dropped and never enqueued.
//
// # Worker
//
// Worker.Run generates each spec independently, counting failures without aborting,
// and persists every success in one transaction. An empty or missing batch completes
// with zero rows. A failed bulk write rolls back, the failed status is written outside
// the transaction, and the error is returned wrapped in errs.ErrPersistence.
//
// A worker that crashes leaves its batch in_progress until the record expires; nothing
// re-dispatches it.
package batch
