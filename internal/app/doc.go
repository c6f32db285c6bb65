// Package app wires the web application together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration (defaults, optional config.yaml, SSF_* env vars)
//	2. Initialize the global slog JSON logger
//	3. Initialize OTel metrics with the Prometheus exporter
//	4. Construct the analysis service
//	5. Assemble the chi router and middleware chain
//	6. Create the HTTP server
//
// # Middleware Ordering
//
// RequestID and RealIP run first so every later middleware and handler sees
// the trace ID and the client address. Logging, panic recovery, security
// headers, CORS and rate limiting follow, with the Prometheus /metrics
// endpoint mounted outside the group so scrapes are neither logged nor rate
// limited.
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests within
// the configured shutdown timeout, flushes the meter provider and closes the
// log file.
package app
