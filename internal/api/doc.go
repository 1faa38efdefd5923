// Package api hosts the HTTP server, middleware, and REST handlers for the
// insights service. Notable routes:
//   - GET /healthz and /readyz for Kubernetes probes.
//   - GET /metrics for Prometheus scraping.
//   - POST /v1/insights to run (or serve a cached) extraction for a store.
//   - GET /v1/insights/history and /v1/insights/{store} for stored records.
//   - DELETE /v1/insights/{store} to purge a store's records.
//   - GET /v1/stats for aggregate extraction statistics.
package api
