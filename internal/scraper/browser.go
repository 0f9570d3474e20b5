package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/baldidon/transfermarkt-api/internal/config"
	"github.com/baldidon/transfermarkt-api/internal/proxy"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BrowserFetcher renders pages in a headless browser before parsing them
type BrowserFetcher struct {
	Config *config.AppConfig
	Proxy  *proxy.Manager
}

// NewBrowserFetcher creates a new browser fetcher
func NewBrowserFetcher(cfg *config.AppConfig) *BrowserFetcher {
	return &BrowserFetcher{
		Config: cfg,
		Proxy:  proxy.NewManager(&cfg.Proxies),
	}
}

// allocatorOptions builds the Chrome flags for one fetch.
func (f *BrowserFetcher) allocatorOptions() ([]chromedp.ExecAllocatorOption, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.Config.Browser.Headless),
		chromedp.UserAgent(f.Config.Browser.UserAgent),
	)

	proxyURL, err := f.Proxy.GetProxyURL()
	if err != nil {
		return nil, err
	}
	if proxyURL != nil {
		// Chrome takes credentials through auth challenges, not the proxy flag.
		opts = append(opts, chromedp.ProxyServer(proxyURL.Scheme+"://"+proxyURL.Host))
	}
	return opts, nil
}

// Fetch loads url in a fresh browser context and parses the rendered DOM.
// Navigation does not expose the status code, so every rendered page is
// handed to the presence check.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "BrowserFetcher.Fetch", trace.WithAttributes(attribute.String("url", url)))
	defer span.End()

	if f.Config.Scraper.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Config.Scraper.Timeout)
		defer cancel()
	}

	opts, err := f.allocatorOptions()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad proxy configuration")
		return nil, &FetchError{URL: url, Err: err}
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	start := time.Now()
	var html string
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(f.Config.Browser.WaitTime),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "browser run failed")
		return nil, &FetchError{URL: url, Err: err}
	}

	log.Debug().
		Str("url", url).
		Dur("took", time.Since(start)).
		Msg("rendered page")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, &FetchError{URL: url, Err: err}
	}
	return doc, nil
}
