// Package queue implements the job queue that carries generation batches to workers.
//
// Producers call Enqueue with a job name and JSON-encodable arguments. A job for a
// generation batch carries only the batch id; the specs live in the batch store.
//
// # Backends
//
//   - RedisQueue: a redis list per queue ("queue:generation"), LPUSH to enqueue and
//     BRPOP to consume. Failed jobs are pushed to "<key>:dead" with the error text.
//   - MemoryQueue: buffered channel for single-process runs and tests.
//
// # Consumer
//
// Consumer runs N independent loops. Each loop pulls one job at a time, looks up the
// handler in the Registry, recovers handler panics, and dead-letters failures. Jobs are
// unordered relative to each other.
//
//	reg := queue.NewRegistry()
//	_ = reg.Register("generate_item_batch", handler)
//	queue.NewConsumer(broker, reg, logger, cfg.Queue).Run(ctx)
package queue
