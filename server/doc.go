// Package server provides the HTTP server: a Gin engine behind a net/http
// middleware chain, served over HTTP/1.1 and h2c on one port.
//
// The server follows the component pattern with lifecycle management and
// health endpoints.
//
// # Middleware
//
// Built-in middleware (server/middleware), applied in this order:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation into the log context
//   - RequestLogger: request logging with duration tracking
//   - BodySizeLimit: upload size cap parsed from a human-readable size
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: component health aggregation
//   - /info: build and runtime information
//
// The transcription routes live in server/handler.
package server
