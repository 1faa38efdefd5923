// Package main hosts the insights service entrypoint.
//
// Architecture overview:
//   - HTTP API: internal/api.Server exposes health, metrics, insights extraction, history, and stats endpoints.
//     Requests are validated, store URLs are normalized, and finished runs are persisted via the insights.Store.
//   - Extraction pipeline: internal/scrape.Service fetches the store's root page, fans eight topic extractors out
//     concurrently (catalog, hero products, policies, FAQ, contact, social, brand, links), and merges their disjoint
//     sections into one StoreInsights aggregate after the join barrier. Faults inside one extractor never abort the
//     run or its siblings.
//   - Fetching: the Colly-based fetcher retries transient statuses (429/5xx) with jittered backoff; 404s resolve
//     immediately and quietly since the candidate prober produces them constantly.
//   - Persistence & caching: extraction records land in Postgres (or the in-memory store when no DSN is configured).
//     A fresh successful record within scrape.cache_ttl_hours satisfies new requests without re-scraping.
//   - Configuration & plumbing: Viper populates config from env/files; zap provides structured logging; Prometheus
//     metrics are exported via the metrics middleware and /metrics handler. The service is stateless across requests.
//
// Operational notes:
//   - Concurrency model: one extraction run spawns eight goroutines behind a single join barrier; each owns a
//     disjoint section of the aggregate, so no locking is needed for the merge. A slow extractor delays the join but
//     cannot corrupt sibling results.
//   - Observability: zap logs carry store URLs and topic names at key transitions; Prometheus counters/histograms
//     track runs, topic faults, fetches, and API activity.
//   - Shutdown: the HTTP server listens on the configured port and reacts to SIGTERM/SIGINT for graceful drain.
//
// Quick checklist:
//   - Configure env vars: SHOPSIGHT_SERVER_PORT, SHOPSIGHT_HTTP_TIMEOUT_SECONDS, SHOPSIGHT_SCRAPE_USER_AGENT,
//     SHOPSIGHT_SCRAPE_CACHE_TTL_HOURS, and SHOPSIGHT_DB_DSN when persistence beyond memory is required.
//   - Run locally: go run ./cmd/shopsight -config config.yaml (or rely solely on env overrides).
package main
