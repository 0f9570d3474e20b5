package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/baldidon/transfermarkt-api/internal/config"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("transfermarkt-api/scraper")

// Fetcher retrieves one page and parses it into a document. Every call hits
// the network; nothing is cached.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// ErrFetch matches every *FetchError.
var ErrFetch = errors.New("fetch failed")

// FetchError is returned when the page could not be retrieved or parsed.
// Status is zero for transport failures.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetch}
	}
	return []error{ErrFetch, e.Err}
}

// New creates a fetcher based on the configuration
func New(cfg *config.AppConfig) Fetcher {
	if cfg.Browser.Enabled {
		return NewBrowserFetcher(cfg)
	}
	return NewHTTPFetcher(cfg)
}
