package insights

import (
	"net/url"
	"strings"
)

// NormalizeStoreURL trims whitespace and prepends a secure scheme when the
// input has none. An empty input normalizes to the empty string, which then
// fails validation; malformed input never panics here.
func NormalizeStoreURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return raw
}

// ValidStoreURL performs a purely syntactic check: a well-formed http(s)
// URL with a plausible host. No network access.
func ValidStoreURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	if host == "" || strings.ContainsAny(host, " \t") {
		return false
	}
	// Bare words like "storefront" are not reachable hosts.
	if !strings.Contains(host, ".") && host != "localhost" {
		return false
	}
	return true
}

// Domain extracts the lowercase host of a URL, or "" when unparsable.
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// IsShopifyStoreURL reports whether the URL carries a common Shopify
// indicator. This is a hint only; a custom domain defeats it.
func IsShopifyStoreURL(raw string) bool {
	lower := strings.ToLower(raw)
	for _, indicator := range []string{".myshopify.com", "shopifycdn.com", "shopify-checkout"} {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// AbsoluteURL resolves ref against base. On any parse failure the ref is
// returned unchanged rather than dropped.
func AbsoluteURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
