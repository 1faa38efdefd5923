package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrandFromAboutPage(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"/pages/about": `<html><body><main class="page-content">Founded in a garage, we make small-batch soap.</main></body></html>`,
	}
	out := applied(t, &BrandExtractor{}, newTarget(t, "<html></html>", pages))

	assert.Equal(t, "Test Store", out.BrandContext.Name)
	assert.Equal(t, "Founded in a garage, we make small-batch soap.", out.BrandContext.Description)
}

func TestBrandHomepageFallback(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("Our story continues. ", 10)
	html := `<html><body>
	  <div class="hero">Short slogan</div>
	  <div class="banner">` + long + `</div>
	</body></html>`

	out := applied(t, &BrandExtractor{}, newTarget(t, html, nil))

	// The first section over the substantiveness threshold wins; the short
	// slogan is skipped.
	assert.Equal(t, strings.TrimSpace(long), out.BrandContext.Description)
}

func TestBrandNothingSubstantive(t *testing.T) {
	t.Parallel()

	out := applied(t, &BrandExtractor{}, newTarget(t, `<html><body><div class="hero">Buy now</div></body></html>`, nil))
	assert.Equal(t, "Test Store", out.BrandContext.Name)
	assert.Empty(t, out.BrandContext.Description)
}
