// Package generation orchestrates the planners of the items and characters features and
// runs the pre-start pipeline.
//
// # Pre-start Pipeline
//
// Service.Pipeline builds three steps, run in order under the configured retry policy:
//
//   - cache_reference_data: reads every seed collection and rewrites the cached copy
//     only where its fingerprint changed.
//   - data_loaders: checks that item_templates and character_pool carry the columns the
//     generators write, then loads the playable races. No playable race is a
//     configuration error and aborts without retry.
//   - planners: plans items, then characters with the configured default gender ratio.
//
// The planners step takes "prestart:planners:lock" with SET NX for lock_ttl_seconds. An
// instance that finds the lock held skips planning; a cache failure while locking is
// logged and planning runs anyway. Both planners dispatch work the workers upsert, so a
// duplicate run costs time, not correctness.
//
// # Batch Status
//
// BatchStatus reads "generation_task:{kind}:{batch_id}" for kind item or character.
// Records of pending batches expire after batch_ttl_seconds and finished ones after an
// hour; an expired record is reported as not found. A batch left in_progress by a
// crashed worker is not re-dispatched; it expires and the next planning cycle plans its
// specs again.
//
// # HTTP Endpoints
//
//   - POST /generation/items/plan : Runs one item planning cycle.
//   - POST /generation/characters/plan : Runs one character planning cycle. Optional body
//     {"gender_ratio": "MALE:x,FEMALE:y"}.
//   - POST /generation/prestart : Runs the pre-start pipeline synchronously.
//   - GET /generation/batches/:kind/:id : Returns the status of one batch.
package generation
