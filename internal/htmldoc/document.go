// Package htmldoc wraps goquery with the small query surface the topic
// extractors need: ordered first-match selector lookup, all-match lookup,
// and whitespace/entity-normalized text extraction.
package htmldoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shopsight/shopsight/internal/insights"
)

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from raw bytes. html parsing is lenient, but a
// hard failure surfaces as an error the caller treats as absence.
func Parse(body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseResponse converts a fetch response into a Document. Non-200
// responses and unparsable bodies yield (nil, false).
func ParseResponse(resp insights.FetchResponse) (*Document, bool) {
	if !resp.OK() {
		return nil, false
	}
	doc, err := Parse(resp.Body)
	if err != nil {
		return nil, false
	}
	return doc, true
}

// First returns the first selection matched by the first selector that
// matches anything, honoring the caller-supplied order. Returns nil when no
// selector matches.
func (d *Document) First(selectors ...string) *goquery.Selection {
	return FirstIn(d.doc.Selection, selectors...)
}

// All returns every node matching the selector.
func (d *Document) All(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Text returns the cleaned text of the whole document.
func (d *Document) Text() string {
	return insights.CleanText(d.doc.Text())
}

// HTML returns the raw markup, used by pattern extractors that scan hrefs.
func (d *Document) HTML() string {
	markup, err := d.doc.Html()
	if err != nil {
		return ""
	}
	return markup
}

// FirstIn is First scoped to an arbitrary selection (e.g. one product card).
func FirstIn(scope *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if found := scope.Find(sel); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

// Text extracts cleaned text from a selection; nil-safe.
func Text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return insights.CleanText(sel.Text())
}

// Attr returns the first non-empty attribute among names; nil-safe.
func Attr(sel *goquery.Selection, names ...string) string {
	if sel == nil {
		return ""
	}
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// StripTags parses an HTML fragment and returns its cleaned text content.
// Used for product descriptions delivered as body_html.
func StripTags(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return insights.CleanText(fragment)
	}
	return insights.CleanText(doc.Text())
}
