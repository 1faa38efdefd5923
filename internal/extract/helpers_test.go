package extract

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
	"github.com/shopsight/shopsight/internal/probe"
)

const testBaseURL = "https://store.example.com"

// pageFetcher serves canned bodies keyed by URL path suffix; everything
// else is a 404.
type pageFetcher struct {
	pages map[string]string
}

func (f *pageFetcher) Fetch(_ context.Context, url string) (insights.FetchResponse, error) {
	for suffix, body := range f.pages {
		if strings.HasSuffix(url, suffix) {
			return insights.FetchResponse{URL: url, StatusCode: http.StatusOK, Body: []byte(body)}, nil
		}
	}
	return insights.FetchResponse{URL: url, StatusCode: http.StatusNotFound}, nil
}

// newTarget builds a Target around the given homepage markup and canned
// subpages.
func newTarget(t *testing.T, rootHTML string, pages map[string]string) Target {
	t.Helper()
	root, err := htmldoc.Parse([]byte(rootHTML))
	require.NoError(t, err)
	fetcher := &pageFetcher{pages: pages}
	return Target{
		BaseURL:   testBaseURL,
		StoreName: "Test Store",
		Root:      root,
		Fetcher:   fetcher,
		Prober:    probe.New(fetcher, nil),
		Limits:    DefaultLimits(),
	}
}

// applied runs an extractor and applies its section to a fresh aggregate.
func applied(t *testing.T, e Extractor, target Target) insights.StoreInsights {
	t.Helper()
	section, _, err := e.Extract(context.Background(), target)
	require.NoError(t, err)
	require.NotNil(t, section)
	out := insights.NewStoreInsights(testBaseURL)
	section.Apply(&out)
	return out
}
