package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsight/shopsight/internal/insights"
)

func TestLinksClassification(t *testing.T) {
	t.Parallel()

	html := `<html><body>
	  <nav>
	    <a href="/pages/track-order">Track Your Order</a>
	    <a href="/collections/all">Shop All</a>
	  </nav>
	  <footer>
	    <a href="/blogs/news">Blog</a>
	    <a href="/pages/shipping-info">Delivery Info</a>
	    <a href="/pages/track-order">Track Your Order</a>
	  </footer>
	</body></html>`

	out := applied(t, &LinksExtractor{}, newTarget(t, html, nil))

	require.Len(t, out.ImportantLinks, 3)
	assert.Equal(t, insights.ImportantLink{
		Title:    "Track Your Order",
		URL:      testBaseURL + "/pages/track-order",
		Category: "order tracking",
	}, out.ImportantLinks[0])
	assert.Equal(t, "blog", out.ImportantLinks[1].Category)
	assert.Equal(t, "shipping", out.ImportantLinks[2].Category)
}

func TestLinksFirstCategoryWins(t *testing.T) {
	t.Parallel()

	// "faq" sits in the support category, but "help" in the URL claims the
	// contact category first.
	html := `<html><body><footer><a href="/pages/help-faq">FAQ</a></footer></body></html>`
	out := applied(t, &LinksExtractor{}, newTarget(t, html, nil))

	require.Len(t, out.ImportantLinks, 1)
	assert.Equal(t, "contact", out.ImportantLinks[0].Category)
}

func TestLinksUnclassifiedDropped(t *testing.T) {
	t.Parallel()

	html := `<html><body><nav><a href="/collections/sale">Sale</a></nav></body></html>`
	out := applied(t, &LinksExtractor{}, newTarget(t, html, nil))
	assert.Empty(t, out.ImportantLinks)
}
