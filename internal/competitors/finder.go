// Package competitors provides the best-effort competitor lookup used as a
// post-step after extraction.
package competitors

import (
	"context"
	"fmt"

	"github.com/shopsight/shopsight/internal/insights"
)

// Finder looks up competitors for a brand name.
type Finder interface {
	Find(ctx context.Context, brandName string) ([]insights.CompetitorInsight, error)
}

// StaticFinder returns a canned competitor entry. A real implementation
// would query a search or market-intelligence API.
type StaticFinder struct{}

// NewStaticFinder creates a StaticFinder.
func NewStaticFinder() *StaticFinder {
	return &StaticFinder{}
}

// Find returns a single placeholder competitor for the brand.
func (StaticFinder) Find(_ context.Context, brandName string) ([]insights.CompetitorInsight, error) {
	if brandName == "" {
		return []insights.CompetitorInsight{}, nil
	}
	return []insights.CompetitorInsight{
		{
			Name:        fmt.Sprintf("Competitor of %s", brandName),
			WebsiteURL:  "https://example-competitor.com",
			Description: "A similar brand in the same industry",
		},
	}, nil
}
