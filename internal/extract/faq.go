package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
)

var faqPaths = []string{
	"/pages/faq",
	"/pages/frequently-asked-questions",
	"/faq",
	"/help",
	"/support",
}

// FAQExtractor probes FAQ-like pages and parses question/answer pairs.
type FAQExtractor struct{}

func (FAQExtractor) Topic() string { return "faqs" }

type faqSection struct {
	faqs []insights.FAQ
}

func (s faqSection) Apply(out *insights.StoreInsights) {
	out.FAQs = s.faqs
}

func (FAQExtractor) Extract(ctx context.Context, t Target) (Section, []string, error) {
	faqs := []insights.FAQ{}
	for _, path := range faqPaths {
		if ctx.Err() != nil {
			break
		}
		url := insights.AbsoluteURL(t.BaseURL, path)
		resp, err := t.Fetcher.Fetch(ctx, url)
		if err != nil {
			continue
		}
		doc, ok := htmldoc.ParseResponse(resp)
		if !ok {
			continue
		}
		if found := parseFAQPage(doc); len(found) > 0 {
			faqs = found
			break
		}
	}
	return faqSection{faqs: faqs}, nil, nil
}

// parseFAQPage tries three strategies in fixed priority order and stops at
// the first that yields any pair: accordion items, then definition lists,
// then question-mark headings paired with the next sibling block.
func parseFAQPage(doc *htmldoc.Document) []insights.FAQ {
	faqs := []insights.FAQ{}

	doc.All(".accordion-item, .faq-item, .collapsible-item").Each(func(_ int, item *goquery.Selection) {
		question := htmldoc.Text(htmldoc.FirstIn(item, ".accordion-title", ".faq-question", ".question", "h3", "h4"))
		answer := htmldoc.Text(htmldoc.FirstIn(item, ".accordion-content", ".faq-answer", ".answer", ".content"))
		if question != "" && answer != "" {
			faqs = append(faqs, insights.FAQ{Question: question, Answer: answer})
		}
	})
	if len(faqs) > 0 {
		return faqs
	}

	doc.All("dt").Each(func(_ int, dt *goquery.Selection) {
		dd := dt.NextAllFiltered("dd").First()
		if dd.Length() == 0 {
			return
		}
		question := htmldoc.Text(dt)
		answer := htmldoc.Text(dd)
		if question != "" && answer != "" {
			faqs = append(faqs, insights.FAQ{Question: question, Answer: answer})
		}
	})
	if len(faqs) > 0 {
		return faqs
	}

	doc.All("h3, h4, h5").Each(func(_ int, heading *goquery.Selection) {
		question := htmldoc.Text(heading)
		if !strings.Contains(question, "?") {
			return
		}
		next := heading.NextAllFiltered("p, div").First()
		if next.Length() == 0 {
			return
		}
		if answer := htmldoc.Text(next); answer != "" {
			faqs = append(faqs, insights.FAQ{Question: question, Answer: answer})
		}
	})
	return faqs
}
