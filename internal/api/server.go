package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsight/shopsight/internal/competitors"
	"github.com/shopsight/shopsight/internal/config"
	"github.com/shopsight/shopsight/internal/insights"
	"github.com/shopsight/shopsight/internal/metrics"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
	statsSample         = 1000
	requestTimeout      = 120 * time.Second
)

// Runner executes one extraction run.
type Runner interface {
	Run(ctx context.Context, rawURL string) insights.StoreInsights
}

// Server wires HTTP handlers to the extraction service and store.
type Server struct {
	router chi.Router
	runner Runner
	store  insights.Store
	finder competitors.Finder
	idGen  insights.IDGenerator
	clock  insights.Clock
	cfg    config.Config
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	runner Runner,
	store insights.Store,
	finder competitors.Finder,
	idGen insights.IDGenerator,
	clock insights.Clock,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		runner: runner,
		store:  store,
		finder: finder,
		idGen:  idGen,
		clock:  clock,
		cfg:    cfg,
		logger: logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(metricsMiddleware)
	r.Use(timeoutMiddleware(requestTimeout))
	if cfg.Auth.Enabled {
		r.Use(apiKeyMiddleware(cfg.Auth.APIKey))
	}

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/insights", func(r chi.Router) {
			r.Post("/", s.fetchInsights)
			r.Get("/history", s.listHistory)
			r.Get("/*", s.getLatest)
			r.Delete("/*", s.deleteInsights)
		})
		r.Get("/stats", s.getStats)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	// The in-memory store is always ready; Postgres reports trouble on the
	// first query. Check downstreams here if that ever proves too lax.
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type insightsRequest struct {
	WebsiteURL         string `json:"website_url"`
	IncludeCompetitors bool   `json:"include_competitors"`
}

func (s *Server) fetchInsights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	normalized := insights.NormalizeStoreURL(req.WebsiteURL)
	if !insights.ValidStoreURL(normalized) {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid website_url: %q", req.WebsiteURL))
		return
	}

	if cached, ok := s.freshRecord(r.Context(), normalized); ok {
		s.logger.Info("serving cached insights", zap.String("store_url", normalized))
		writeJSON(w, http.StatusOK, cached.Insights)
		return
	}

	result := s.runner.Run(r.Context(), normalized)

	if req.IncludeCompetitors && result.Success {
		brand := result.StoreName
		if brand == "" {
			brand = insights.Domain(normalized)
		}
		found, err := s.finder.Find(r.Context(), brand)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("competitor lookup failed: %v", err))
		} else {
			result.Competitors = found
		}
	}

	s.saveAsync(result)
	writeJSON(w, http.StatusOK, result)
}

// freshRecord returns the latest stored record when it is successful and
// young enough to satisfy the request.
func (s *Server) freshRecord(ctx context.Context, storeURL string) (insights.Record, bool) {
	ttl := s.cfg.CacheTTL()
	if ttl <= 0 {
		return insights.Record{}, false
	}
	rec, found, err := s.store.Latest(ctx, storeURL)
	if err != nil {
		s.logger.Warn("cache lookup failed", zap.String("store_url", storeURL), zap.Error(err))
		return insights.Record{}, false
	}
	if !found || !rec.Success {
		return insights.Record{}, false
	}
	if s.clock.Now().Sub(rec.CapturedAt) > ttl {
		return insights.Record{}, false
	}
	return rec, true
}

// saveAsync persists the run off the request path; a failed save only costs
// the cache, not the response.
func (s *Server) saveAsync(result insights.StoreInsights) {
	id, err := s.idGen.NewID()
	if err != nil {
		s.logger.Warn("id generation failed, skipping save", zap.Error(err))
		return
	}
	rec := insights.Record{
		ID:             id,
		StoreURL:       result.StoreURL,
		StoreName:      result.StoreName,
		Insights:       result,
		CapturedAt:     s.clock.Now(),
		ProcessingTime: result.ProcessingTime,
		Success:        result.Success,
	}
	if len(result.Errors) > 0 {
		rec.ErrorText = result.Errors[0]
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := s.store.Save(ctx, rec); err != nil {
			s.logger.Warn("failed to persist insights record",
				zap.String("store_url", rec.StoreURL),
				zap.Error(err),
			)
		}
	}()
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := clampLimit(r.URL.Query().Get("limit"))
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	records, err := s.store.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"limit":   limit,
		"offset":  offset,
	})
}

func (s *Server) getLatest(w http.ResponseWriter, r *http.Request) {
	storeURL := insights.NormalizeStoreURL(chi.URLParam(r, "*"))
	rec, found, err := s.store.Latest(r.Context(), storeURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch record")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "no insights for store")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) deleteInsights(w http.ResponseWriter, r *http.Request) {
	storeURL := insights.NormalizeStoreURL(chi.URLParam(r, "*"))
	count, err := s.store.Delete(r.Context(), storeURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete records")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"store_url": storeURL, "deleted": count})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context(), statsSample, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	var successful int
	var totalDuration float64
	for _, rec := range records {
		if rec.Success {
			successful++
		}
		totalDuration += rec.ProcessingTime
	}
	stats := map[string]any{
		"total_records":      len(records),
		"successful_records": successful,
		"failed_records":     len(records) - successful,
	}
	if len(records) > 0 {
		stats["avg_processing_time"] = totalDuration / float64(len(records))
	}
	writeJSON(w, http.StatusOK, stats)
}

func clampLimit(raw string) int {
	limit := defaultHistoryLimit
	if raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return limit
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("error", rec))
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.ObserveHTTPRequest(r.Method, route, ww.status, time.Since(start))
	})
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := rw.ResponseWriter.(http.Hijacker); ok {
		conn, buf, err := h.Hijack()
		if err != nil {
			return nil, nil, fmt.Errorf("hijack connection: %w", err)
		}
		return conn, buf, nil
	}
	return nil, nil, errors.New("hijacker not supported")
}

type requestIDKey struct{}

func apiKeyMiddleware(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				key = r.URL.Query().Get("api_key")
			}
			if key != expected {
				writeError(w, http.StatusForbidden, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
