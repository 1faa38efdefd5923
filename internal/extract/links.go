package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
)

const navAnchorSelector = "nav a, .navigation a, .menu a, footer a"

// linkCategory pairs a category label with the keywords that claim a link
// for it. Order matters: the first category with a keyword hit wins.
type linkCategory struct {
	name     string
	keywords []string
}

var linkCategories = []linkCategory{
	{"order tracking", []string{"track", "order", "tracking"}},
	{"contact", []string{"contact", "support", "help"}},
	{"blog", []string{"blog", "news", "articles"}},
	{"support", []string{"support", "help", "faq"}},
	{"shipping", []string{"shipping", "delivery"}},
	{"returns", []string{"return", "refund"}},
	{"size guide", []string{"size", "guide", "fitting"}},
}

// LinksExtractor classifies navigation and footer anchors into a fixed
// category table. Unclassified links are dropped.
type LinksExtractor struct{}

func (LinksExtractor) Topic() string { return "important_links" }

type linksSection struct {
	links []insights.ImportantLink
}

func (s linksSection) Apply(out *insights.StoreInsights) {
	out.ImportantLinks = s.links
}

func (LinksExtractor) Extract(_ context.Context, t Target) (Section, []string, error) {
	links := []insights.ImportantLink{}
	seen := map[string]struct{}{}

	t.Root.All(navAnchorSelector).Each(func(_ int, anchor *goquery.Selection) {
		href := htmldoc.Attr(anchor, "href")
		text := htmldoc.Text(anchor)
		if href == "" || text == "" {
			return
		}
		category, ok := categorizeLink(text, href)
		if !ok {
			return
		}
		absolute := insights.AbsoluteURL(t.BaseURL, href)
		if _, dup := seen[absolute]; dup {
			return
		}
		seen[absolute] = struct{}{}
		links = append(links, insights.ImportantLink{Title: text, URL: absolute, Category: category})
	})

	return linksSection{links: links}, nil, nil
}

func categorizeLink(text, href string) (string, bool) {
	textLower := strings.ToLower(text)
	hrefLower := strings.ToLower(href)
	for _, cat := range linkCategories {
		for _, keyword := range cat.keywords {
			if strings.Contains(textLower, keyword) || strings.Contains(hrefLower, keyword) {
				return cat.name, true
			}
		}
	}
	return "", false
}
