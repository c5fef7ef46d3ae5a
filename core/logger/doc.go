// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework and the generation batch workers.
//
// # Context Awareness
//
// HTTP requests carry a RayID (request id). The WithRayID helper extracts it from a Fiber
// context and attaches it to the log entry, so that all logs related to a specific request
// can be correlated. Batch workers use WithBatch to tag every entry with the batch kind and id.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Planner failed", zap.Error(err))
//
// Loggers are passed down through constructors. Domain packages never read the global logger.
package logger
