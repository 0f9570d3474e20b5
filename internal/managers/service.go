// Package managers extracts manager search results and manager profiles from
// Transfermarkt pages.
package managers

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/baldidon/transfermarkt-api/internal/extraction"
	"github.com/baldidon/transfermarkt-api/internal/scraper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("transfermarkt-api/managers")

// Service runs one extraction per call: build the URL, fetch it, check the
// page is the expected one, then extract. Nothing is cached between calls.
type Service struct {
	Fetcher scraper.Fetcher
	BaseURL string

	// Now stamps UpdatedAt. Defaults to time.Now.
	Now func() time.Time
}

// NewService creates a service fetching pages below baseURL.
func NewService(f scraper.Fetcher, baseURL string) *Service {
	return &Service{
		Fetcher: f,
		BaseURL: baseURL,
		Now:     time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// load fetches pageURL and fails with extraction.ErrNotFound unless found
// matches something on it.
func (s *Service) load(ctx context.Context, pageURL string, found extraction.Selector) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "managers.load", trace.WithAttributes(attribute.String("url", pageURL)))
	defer span.End()

	doc, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}
	if err := extraction.AssertFound(doc, found); err != nil {
		span.SetStatus(codes.Error, "page not found")
		return nil, err
	}
	return doc, nil
}

// resolve makes href absolute against base. Empty or unparsable hrefs are
// returned unchanged.
func resolve(base, href string) string {
	if href == "" {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

func trimBase(base string) string {
	return strings.TrimRight(base, "/")
}
