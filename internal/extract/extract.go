// Package extract holds the topic extractors. Each extractor reads the root
// document (or performs its own probes) and returns an immutable Section
// covering only its own slice of the aggregate; the orchestrator applies the
// sections after all extractors have joined.
package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
	"github.com/shopsight/shopsight/internal/probe"
)

// Limits carries the tunable extraction thresholds.
type Limits struct {
	// HeroPerPage caps the featured products taken from the homepage.
	HeroPerPage int
	// BrandMinChars is the minimum rune count for a homepage section to
	// count as substantive brand copy.
	BrandMinChars int
}

// DefaultLimits returns the standard thresholds.
func DefaultLimits() Limits {
	return Limits{HeroPerPage: 5, BrandMinChars: 100}
}

// Target is the shared input handed to every extractor for one run.
type Target struct {
	BaseURL   string
	StoreName string
	Root      *htmldoc.Document
	Fetcher   insights.Fetcher
	Prober    *probe.Prober
	Limits    Limits
	Logger    *zap.Logger
}

// Section is one extractor's completed output. Apply writes it into the
// aggregate; sections touch disjoint fields so application order only
// matters for determinism, not correctness.
type Section interface {
	Apply(out *insights.StoreInsights)
}

// Extractor produces one topic section. Warnings describe non-fatal absence
// (missing feed, no FAQ page); a returned error is an extractor fault.
type Extractor interface {
	Topic() string
	Extract(ctx context.Context, t Target) (Section, []string, error)
}

// All returns the eight topic extractors in their canonical order.
func All() []Extractor {
	return []Extractor{
		&CatalogExtractor{},
		&HeroExtractor{},
		&PolicyExtractor{},
		&FAQExtractor{},
		&ContactExtractor{},
		&SocialExtractor{},
		&BrandExtractor{},
		&LinksExtractor{},
	}
}
