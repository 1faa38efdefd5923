package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
)

// Featured-card patterns across common storefront themes, most specific
// first. The first selector with any matches wins outright.
var heroSelectors = []string{
	".featured-product",
	".hero-product",
	".product-hero",
	".featured-collection .product-item",
	".collection-hero .product",
	".homepage-product",
	".product-card",
	".grid-product",
}

// HeroExtractor parses featured product cards from the homepage.
type HeroExtractor struct{}

func (HeroExtractor) Topic() string { return "hero_products" }

type heroSection struct {
	products []insights.HeroProduct
}

func (s heroSection) Apply(out *insights.StoreInsights) {
	out.HeroProducts = s.products
}

func (HeroExtractor) Extract(_ context.Context, t Target) (Section, []string, error) {
	products := []insights.HeroProduct{}
	limit := t.Limits.HeroPerPage

	for _, selector := range heroSelectors {
		cards := t.Root.All(selector)
		if cards.Length() == 0 {
			continue
		}
		cards.EachWithBreak(func(i int, card *goquery.Selection) bool {
			if i >= limit {
				return false
			}
			if p, ok := parseHeroCard(t.BaseURL, card); ok && !containsHero(products, p) {
				products = append(products, p)
			}
			return true
		})
		break
	}

	return heroSection{products: products}, nil, nil
}

func parseHeroCard(baseURL string, card *goquery.Selection) (insights.HeroProduct, bool) {
	title := htmldoc.Text(htmldoc.FirstIn(card, ".product-title", ".product-name", "h3", "h2", "a"))
	p := insights.HeroProduct{
		Title:           title,
		Description:     htmldoc.Text(htmldoc.FirstIn(card, ".product-description", ".product-summary", "p")),
		Price:           htmldoc.Text(htmldoc.FirstIn(card, ".price", ".product-price", ".money")),
		FeaturedSection: "homepage",
	}
	if p.Title == "" {
		p.Title = "Unknown Product"
	}
	if src := htmldoc.Attr(htmldoc.FirstIn(card, "img"), "src", "data-src"); src != "" {
		p.ImageURL = insights.AbsoluteURL(baseURL, src)
	}
	if href := htmldoc.Attr(htmldoc.FirstIn(card, "a"), "href"); href != "" {
		p.ProductURL = insights.AbsoluteURL(baseURL, href)
	}
	// A card with neither a title nor a product link is decoration.
	return p, title != "" || p.ProductURL != ""
}

func containsHero(products []insights.HeroProduct, p insights.HeroProduct) bool {
	for _, existing := range products {
		if existing == p {
			return true
		}
	}
	return false
}
