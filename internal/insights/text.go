package insights

import (
	"regexp"
	"strings"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Entities that frequently survive HTML text extraction on storefront
// themes. Decoded before whitespace collapsing so "&nbsp;" runs fold away.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"\u00a0", " ", // parsers decode &nbsp; to NBSP, which \s does not match
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// CleanText normalizes extracted text: decodes common HTML entities,
// collapses whitespace runs to single spaces, and trims the ends.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = entityReplacer.Replace(s)
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SplitCommaList splits a comma-separated value into trimmed non-empty
// items. Product feeds deliver tags in this form.
func SplitCommaList(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
