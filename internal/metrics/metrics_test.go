package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveHelpersRegisterAndCount(t *testing.T) {
	Init()
	// Init is idempotent; a second call must not re-register collectors.
	Init()

	before := testutil.ToFloat64(scrapeRunsTotal.WithLabelValues("success"))
	ObserveRun("success", 2*time.Second)
	after := testutil.ToFloat64(scrapeRunsTotal.WithLabelValues("success"))
	if after != before+1 {
		t.Fatalf("expected success runs to increment by 1, got %v -> %v", before, after)
	}

	before = testutil.ToFloat64(scrapeTopicFailuresTotal.WithLabelValues("faqs"))
	ObserveTopicFailure("faqs")
	after = testutil.ToFloat64(scrapeTopicFailuresTotal.WithLabelValues("faqs"))
	if after != before+1 {
		t.Fatalf("expected topic failures to increment by 1, got %v -> %v", before, after)
	}

	before = testutil.ToFloat64(scrapeFetchesTotal.WithLabelValues("404"))
	ObserveFetch(404)
	after = testutil.ToFloat64(scrapeFetchesTotal.WithLabelValues("404"))
	if after != before+1 {
		t.Fatalf("expected 404 fetches to increment by 1, got %v -> %v", before, after)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	Init()
	ObserveRun("success", time.Second)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "insights_scrape_runs_total") {
		t.Fatal("expected scrape run counter in metrics output")
	}
}
