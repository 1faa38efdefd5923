package extract

import (
	"strings"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
)

var storeNameSelectors = []string{
	".site-header__logo img",
	".header__logo img",
	".logo img",
	"h1.site-title",
	".site-title",
	".header-logo",
}

// StoreName derives the store's display name from the homepage. Logo alt
// text wins over header titles; the <title> tag, truncated at the first
// " - " separator, is the last resort.
func StoreName(doc *htmldoc.Document) string {
	for _, selector := range storeNameSelectors {
		sel := doc.First(selector)
		if sel == nil {
			continue
		}
		if alt := htmldoc.Attr(sel, "alt"); alt != "" {
			return insights.CleanText(alt)
		}
		if text := htmldoc.Text(sel); text != "" {
			return text
		}
	}
	if title := htmldoc.Text(doc.First("title")); title != "" {
		name, _, _ := strings.Cut(title, " - ")
		return strings.TrimSpace(name)
	}
	return ""
}
