package extract

import (
	"context"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
)

var (
	aboutPaths            = []string{"/pages/about", "/about", "/pages/about-us", "/about-us"}
	aboutContentSelectors = []string{".page-content", ".about-content", "main", ".content"}
	brandFallbackSections = ".hero, .banner, .intro, .about-section"
)

// BrandExtractor collects the store's narrative: an about page if one
// probes successfully, otherwise the first substantive homepage section.
type BrandExtractor struct{}

func (BrandExtractor) Topic() string { return "brand_context" }

type brandSection struct {
	brand insights.BrandContext
}

func (s brandSection) Apply(out *insights.StoreInsights) {
	out.BrandContext = s.brand
}

func (BrandExtractor) Extract(ctx context.Context, t Target) (Section, []string, error) {
	brand := insights.BrandContext{Name: t.StoreName}

	if content, ok := t.Prober.Probe(ctx, t.BaseURL, aboutPaths, aboutContentSelectors); ok {
		brand.Description = content.Text
		return brandSection{brand: brand}, nil, nil
	}

	minChars := t.Limits.BrandMinChars
	t.Root.All(brandFallbackSections).EachWithBreak(func(_ int, section *goquery.Selection) bool {
		text := htmldoc.Text(section)
		if utf8.RuneCountInString(text) > minChars {
			brand.Description = text
			return false
		}
		return true
	})

	return brandSection{brand: brand}, nil, nil
}
