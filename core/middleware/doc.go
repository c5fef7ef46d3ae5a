// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting every generation endpoint.
//   - rayid: assigns a request id (RayID) to every incoming request, storing it in the
//     context locals read by logger.WithRayID and echoing it in the X-Ray-ID header.
//
// These middleware components are registered globally in the start command.
package middleware
