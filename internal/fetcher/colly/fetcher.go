// Package collyfetcher implements insights.Fetcher using gocolly.
package collyfetcher

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/shopsight/shopsight/internal/insights"
	"github.com/shopsight/shopsight/internal/metrics"
)

// Config controls collector and retry behavior.
type Config struct {
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	BackoffInitial time.Duration
	BackoffMax     time.Duration
}

// Statuses worth retrying: rate limiting and transient server errors.
// Everything else (404 included) resolves immediately.
var transientStatuses = map[int]struct{}{
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// Fetcher performs single GETs through a shared Colly collector. The base
// collector is cloned per request, so individual calls share only the
// connection pool and never each other's state.
type Fetcher struct {
	cfg       Config
	transport http.RoundTripper
	base      *colly.Collector
	backoff   *backoffPolicy
	logger    *zap.Logger
}

// New builds a Fetcher.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	// Clones share the base collector's visited-URL store, so revisits must
	// be allowed or retries and repeat runs for the same store would fail
	// with "already visited".
	c := colly.NewCollector(colly.Async(false), colly.AllowURLRevisit())
	transport := newHTTPTransport()
	c.WithTransport(transport)

	return &Fetcher{
		cfg:       cfg,
		transport: transport,
		base:      c,
		backoff:   newBackoffPolicy(cfg.BackoffInitial, cfg.BackoffMax),
		logger:    logger,
	}
}

// Fetch executes one HTTP GET with bounded retries on transient status
// codes. A response with any status code returns with a nil error; an error
// means no HTTP response could be obtained at all.
func (f *Fetcher) Fetch(ctx context.Context, url string) (insights.FetchResponse, error) {
	for attempt := 0; ; attempt++ {
		resp, err := f.fetchOnce(ctx, url)
		if err != nil {
			// Transport-level failures (DNS, connection refused) are not
			// retried; the request timeout already bounds each attempt.
			metrics.ObserveFetch(0)
			return insights.FetchResponse{}, fmt.Errorf("fetch %s: %w", url, err)
		}
		if _, transient := transientStatuses[resp.StatusCode]; transient && attempt < f.cfg.MaxRetries {
			f.logger.Debug("transient status, retrying",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			if waitErr := sleepCtx(ctx, f.backoff.wait(attempt)); waitErr != nil {
				return insights.FetchResponse{}, waitErr
			}
			continue
		}
		if resp.StatusCode == http.StatusNotFound {
			// Expected constantly during candidate probing.
			f.logger.Debug("page not found", zap.String("url", url))
		}
		metrics.ObserveFetch(resp.StatusCode)
		return resp, nil
	}
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (insights.FetchResponse, error) {
	collector := f.base.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(f.cfg.Timeout)
	collector.WithTransport(f.transport)

	start := time.Now()
	var (
		result   insights.FetchResponse
		gotResp  bool
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		result = responseFrom(r, start)
		gotResp = true
	})
	collector.OnError(func(r *colly.Response, err error) {
		// Colly reports non-2xx statuses here; a response with a status
		// code is still a response for our purposes.
		if r != nil && r.StatusCode != 0 {
			result = responseFrom(r, start)
			gotResp = true
			return
		}
		fetchErr = err
	})

	err := f.visit(ctx, collector, url)
	if gotResp {
		return result, nil
	}
	if fetchErr != nil {
		return insights.FetchResponse{}, fetchErr
	}
	if err != nil {
		return insights.FetchResponse{}, err
	}
	return insights.FetchResponse{}, fmt.Errorf("no response received")
}

func (f *Fetcher) visit(ctx context.Context, collector *colly.Collector, url string) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("visit failed: %w", err)
		}
		return nil
	}
}

func responseFrom(r *colly.Response, start time.Time) insights.FetchResponse {
	url := ""
	if r.Request != nil && r.Request.URL != nil {
		url = r.Request.URL.String()
	}
	return insights.FetchResponse{
		URL:        url,
		StatusCode: r.StatusCode,
		Body:       append([]byte(nil), r.Body...),
		Duration:   time.Since(start),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch canceled during backoff: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
