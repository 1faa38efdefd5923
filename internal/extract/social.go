package extract

import (
	"context"

	"github.com/shopsight/shopsight/internal/insights"
)

// SocialExtractor matches platform handle patterns against the root page's
// text and raw markup.
type SocialExtractor struct{}

func (SocialExtractor) Topic() string { return "social_handles" }

type socialSection struct {
	handles insights.SocialHandles
}

func (s socialSection) Apply(out *insights.StoreInsights) {
	out.SocialHandles = s.handles
}

func (SocialExtractor) Extract(_ context.Context, t Target) (Section, []string, error) {
	handles := insights.ExtractSocialHandles(t.Root.Text(), t.Root.HTML())
	return socialSection{handles: handles}, nil, nil
}
