package insights

import (
	"context"
	"net/http"
	"time"
)

// FetchResponse is the result returned by a Fetcher implementation. A
// response with a non-2xx status is an ordinary outcome, not an error;
// callers decide how to treat absence.
type FetchResponse struct {
	URL        string
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// OK reports whether the response carries a usable body.
func (r FetchResponse) OK() bool {
	return r.StatusCode == http.StatusOK && len(r.Body) > 0
}

// Fetcher performs a single GET against the given URL. Implementations
// retry transient HTTP failures internally; a returned error means no HTTP
// response could be obtained at all (DNS failure, exhausted timeouts).
// Implementations hold no per-call mutable state.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResponse, error)
}

// Record is a persisted extraction result.
type Record struct {
	ID             string        `json:"id"`
	StoreURL       string        `json:"store_url"`
	StoreName      string        `json:"store_name,omitempty"`
	Insights       StoreInsights `json:"insights"`
	CapturedAt     time.Time     `json:"captured_at"`
	ProcessingTime float64       `json:"processing_time"`
	Success        bool          `json:"success"`
	ErrorText      string        `json:"error_text,omitempty"`
}

// Store persists extraction records. Freshness policy (how old a cached
// record may be before it is ignored) belongs to the caller, not the store.
type Store interface {
	Save(ctx context.Context, rec Record) (string, error)
	Latest(ctx context.Context, storeURL string) (Record, bool, error)
	List(ctx context.Context, limit, offset int) ([]Record, error)
	Delete(ctx context.Context, storeURL string) (int64, error)
}

// Clock abstracts time.Now for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator creates unique record identifiers.
type IDGenerator interface {
	NewID() (string, error)
}
