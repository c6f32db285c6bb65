// Package http contains the HTTP transport layer: the analysis upload and
// export handlers, health and version probes, and the embedded UI handler.
//
// Handlers parse and validate the request, delegate to the service layer and
// render responses with go-chi/render. Failures are converted to RFC 7807
// problem responses by the shared error handler.
//
// # Endpoints
//
//	POST /api/analysis         multipart workbook upload -> JSON report
//	POST /api/analysis/export  multipart workbook upload -> xlsx download
//	GET  /api/health           liveness probe
//	GET  /api/version          build information
//	GET  /                     embedded single-page UI
package http
