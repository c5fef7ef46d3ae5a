// Package telemetry wires OpenTelemetry tracing.
//
// Init installs a batching tracer provider exporting over OTLP/HTTP, or to stdout when
// no endpoint is configured. With tracing disabled nothing is installed and Tracer
// returns the global no-op tracer, so instrumented code needs no conditionals.
//
// Spans cover pipeline steps, planner runs and batch worker runs.
package telemetry
