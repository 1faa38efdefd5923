// Package probe implements ordered URL-candidate probing: fetch each
// candidate path in turn and stop at the first one yielding usable content.
package probe

import (
	"context"

	"go.uber.org/zap"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
)

// Content is the winning candidate's page.
type Content struct {
	URL  string
	Doc  *htmldoc.Document
	Text string
}

// Prober fetches candidate paths in caller-supplied order.
type Prober struct {
	fetcher insights.Fetcher
	logger  *zap.Logger
}

// New builds a Prober.
func New(fetcher insights.Fetcher, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{fetcher: fetcher, logger: logger}
}

// Probe fetches each candidate path against baseURL in order and applies
// the content selectors. The first candidate producing non-empty matched
// text wins; later candidates are never consulted. Exhausting the list is
// not-found, not an error.
func (p *Prober) Probe(ctx context.Context, baseURL string, paths []string, contentSelectors []string) (Content, bool) {
	for _, path := range paths {
		if ctx.Err() != nil {
			return Content{}, false
		}
		candidate := insights.AbsoluteURL(baseURL, path)
		resp, err := p.fetcher.Fetch(ctx, candidate)
		if err != nil {
			p.logger.Debug("candidate fetch failed", zap.String("url", candidate), zap.Error(err))
			continue
		}
		doc, ok := htmldoc.ParseResponse(resp)
		if !ok {
			continue
		}
		text := htmldoc.Text(doc.First(contentSelectors...))
		if text == "" {
			continue
		}
		p.logger.Debug("candidate matched", zap.String("url", candidate))
		return Content{URL: candidate, Doc: doc, Text: text}, true
	}
	return Content{}, false
}
