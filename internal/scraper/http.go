package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/baldidon/transfermarkt-api/internal/config"
	"github.com/baldidon/transfermarkt-api/internal/proxy"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html/charset"
)

const bodySnippetLimit = 512

// HTTPFetcher fetches pages with a plain HTTP client
type HTTPFetcher struct {
	Config *config.AppConfig
	Proxy  *proxy.Manager

	client *resty.Client
}

// NewHTTPFetcher creates a new HTTP fetcher
func NewHTTPFetcher(cfg *config.AppConfig) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	pm := proxy.NewManager(&cfg.Proxies)
	pm.ApplyToTransport(transport)

	var rt http.RoundTripper = transport
	if cfg.Scraper.CloudflareBypass {
		rt = cloudflarebp.AddCloudFlareByPass(rt)
	}

	client := resty.New().
		SetTransport(rt).
		SetTimeout(cfg.Scraper.Timeout).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	return &HTTPFetcher{
		Config: cfg,
		Proxy:  pm,
		client: client,
	}
}

// Fetch performs one GET and parses the body. A 404 body is still parsed:
// the site answers unknown ids with a regular page and the presence check
// decides what it means. Any other non-2xx status is a FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "HTTPFetcher.Fetch", trace.WithAttributes(attribute.String("url", url)))
	defer span.End()

	start := time.Now()
	res, err := f.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", f.userAgent()).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, &FetchError{URL: url, Err: err}
	}

	status := res.StatusCode()
	span.SetAttributes(attribute.Int("http.status_code", status))
	log.Debug().
		Str("url", url).
		Int("status", status).
		Dur("took", time.Since(start)).
		Msg("fetched page")

	if (status < 200 || status > 299) && status != http.StatusNotFound {
		err := &FetchError{URL: url, Status: status, Err: fmt.Errorf("unexpected response: %s", snippet(res.Body()))}
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	doc, err := parseHTML(bytes.NewReader(res.Body()), res.Header().Get("Content-Type"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, &FetchError{URL: url, Status: status, Err: err}
	}
	return doc, nil
}

// userAgent picks a random user agent from the configuration
func (f *HTTPFetcher) userAgent() string {
	agents := f.Config.Scraper.UserAgents
	if len(agents) == 0 {
		agents = config.DefaultUserAgents
	}
	return agents[rand.Intn(len(agents))]
}

// parseHTML decodes r to UTF-8 using the declared or sniffed charset before
// handing it to goquery.
func parseHTML(r io.Reader, contentType string) (*goquery.Document, error) {
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func snippet(body []byte) string {
	if len(body) > bodySnippetLimit {
		body = body[:bodySnippetLimit]
	}
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty body"
	}
	return s
}
