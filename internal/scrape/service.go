// Package scrape orchestrates one extraction run: root fetch, concurrent
// topic extraction, and aggregation into a single StoreInsights record.
package scrape

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/shopsight/shopsight/internal/extract"
	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
	"github.com/shopsight/shopsight/internal/metrics"
	"github.com/shopsight/shopsight/internal/probe"
)

// Service runs store extractions.
type Service struct {
	fetcher    insights.Fetcher
	clock      insights.Clock
	extractors []extract.Extractor
	limits     extract.Limits
	logger     *zap.Logger
}

// New builds a Service. A nil extractor list means the full default set.
func New(fetcher insights.Fetcher, clock insights.Clock, extractors []extract.Extractor, limits extract.Limits, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if extractors == nil {
		extractors = extract.All()
	}
	return &Service{
		fetcher:    fetcher,
		clock:      clock,
		extractors: extractors,
		limits:     limits,
		logger:     logger,
	}
}

// topicResult is one extractor's tagged outcome, collected at the join
// barrier before aggregation.
type topicResult struct {
	topic    string
	section  extract.Section
	warnings []string
	err      error
}

// Run executes one extraction for rawURL and always returns a complete
// aggregate. Only an invalid URL or a failed root fetch flips Success.
// The named return lets the deferred duration stamp reach the caller.
func (s *Service) Run(ctx context.Context, rawURL string) (out insights.StoreInsights) {
	start := s.clock.Now()

	normalized := insights.NormalizeStoreURL(rawURL)
	out = insights.NewStoreInsights(normalized)
	out.ScrapedAt = start

	defer func() {
		out.ProcessingTime = s.clock.Now().Sub(start).Seconds()
		outcome := "success"
		if !out.Success {
			outcome = "failure"
		}
		metrics.ObserveRun(outcome, s.clock.Now().Sub(start))
	}()

	if !insights.ValidStoreURL(normalized) {
		out.Success = false
		out.Errors = append(out.Errors, fmt.Sprintf("invalid store URL: %q", rawURL))
		return out
	}

	s.logger.Info("starting extraction", zap.String("store_url", normalized))

	root, err := s.fetchRoot(ctx, normalized)
	if err != nil {
		out.Success = false
		out.Errors = append(out.Errors, fmt.Sprintf("failed to fetch the main page: %v", err))
		s.logger.Warn("root fetch failed", zap.String("store_url", normalized), zap.Error(err))
		return out
	}

	out.StoreName = extract.StoreName(root)

	target := extract.Target{
		BaseURL:   normalized,
		StoreName: out.StoreName,
		Root:      root,
		Fetcher:   s.fetcher,
		Prober:    probe.New(s.fetcher, s.logger),
		Limits:    s.limits,
		Logger:    s.logger,
	}

	results := s.runExtractors(ctx, target)

	// Sections own disjoint fields; applying in extractor order keeps the
	// merge deterministic.
	for _, res := range results {
		if res.err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s error: %v", res.topic, res.err))
			metrics.ObserveTopicFailure(res.topic)
			s.logger.Warn("extractor failed", zap.String("topic", res.topic), zap.Error(res.err))
			continue
		}
		out.Warnings = append(out.Warnings, res.warnings...)
		if res.section != nil {
			res.section.Apply(&out)
		}
	}

	s.logger.Info("extraction finished",
		zap.String("store_url", normalized),
		zap.String("store_name", out.StoreName),
		zap.Int("products", out.ProductCatalog.TotalProducts),
		zap.Int("errors", len(out.Errors)),
		zap.Int("warnings", len(out.Warnings)),
	)
	return out
}

func (s *Service) fetchRoot(ctx context.Context, url string) (*htmldoc.Document, error) {
	resp, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, ok := htmldoc.ParseResponse(resp)
	if !ok {
		return nil, fmt.Errorf("root page unusable (status %d)", resp.StatusCode)
	}
	return doc, nil
}

// runExtractors fans the extractors out concurrently and joins them all.
// A panic inside one extractor becomes that topic's error and never
// touches its siblings.
func (s *Service) runExtractors(ctx context.Context, target extract.Target) []topicResult {
	results := make([]topicResult, len(s.extractors))
	var wg sync.WaitGroup

	for i, e := range s.extractors {
		wg.Add(1)
		go func(i int, e extract.Extractor) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = topicResult{topic: e.Topic(), err: fmt.Errorf("extractor panic: %v", r)}
				}
			}()
			section, warnings, err := e.Extract(ctx, target)
			results[i] = topicResult{topic: e.Topic(), section: section, warnings: warnings, err: err}
		}(i, e)
	}

	wg.Wait()
	return results
}
