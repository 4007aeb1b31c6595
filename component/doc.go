// Package component manages long-lived parts of the service (HTTP server,
// speech engine, telemetry exporters) that need ordered startup, reverse
// ordered shutdown and health reporting.
package component
