// Package ports defines the interfaces that connect the calculation layer
// (internal/app) to its surroundings.
//
// # Port Interfaces
//
//   - [Logger]: Structured logging abstraction
//   - [Observer]: Receives the outcome of every computation (metrics)
//   - [ChartSink]: Persists a rendered chart of an estimate
//
// The application layer depends only on these interfaces. The HTTP server
// supplies a Prometheus-backed Observer and internal/adapters/fs a file-backed
// ChartSink.
package ports
