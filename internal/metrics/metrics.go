// Package metrics exposes Prometheus collectors for the insights service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	scrapeRunsTotal           *prometheus.CounterVec
	scrapeDurationSeconds     prometheus.Histogram
	scrapeTopicFailuresTotal  *prometheus.CounterVec
	scrapeFetchesTotal        *prometheus.CounterVec
	httpRequestsTotal         *prometheus.CounterVec
	httpRequestDurationSecond *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus collectors. It is safe to call multiple
// times; the Observe helpers call it themselves so instrumented code never
// races registration.
func Init() {
	once.Do(func() {
		scrapeRunsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_scrape_runs_total",
				Help: "Total extraction runs, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		scrapeDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "insights_scrape_duration_seconds",
				Help:    "Histogram of full extraction run durations.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		)

		scrapeTopicFailuresTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_scrape_topic_failures_total",
				Help: "Extractor faults contained at the topic boundary, labeled by topic.",
			},
			[]string{"topic"},
		)

		scrapeFetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_fetches_total",
				Help: "Outbound page fetches, labeled by status code (0 = no response).",
			},
			[]string{"status"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total API requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSecond = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of API request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15, 60},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler exposing the Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRun records one finished extraction run.
func ObserveRun(outcome string, duration time.Duration) {
	Init()
	scrapeRunsTotal.WithLabelValues(outcome).Inc()
	scrapeDurationSeconds.Observe(duration.Seconds())
}

// ObserveTopicFailure records a contained extractor fault.
func ObserveTopicFailure(topic string) {
	Init()
	scrapeTopicFailuresTotal.WithLabelValues(topic).Inc()
}

// ObserveFetch records one outbound page fetch by status code.
func ObserveFetch(status int) {
	Init()
	scrapeFetchesTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

// ObserveHTTPRequest records one API request.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSecond.WithLabelValues(method, route).Observe(duration.Seconds())
}
