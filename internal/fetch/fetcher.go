// Package fetch retrieves and parses vendor menu pages.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/models"
)

const (
	// DefaultTimeout bounds one menu page fetch.
	DefaultTimeout = 30 * time.Second

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second

	userAgent = "Mozilla/5.0 (compatible; Forktimize-Autocart/1.0)"
)

// Page is a fetched vendor menu: the parsed document, the hostname that
// actually served it (after redirects, used for the vendor check) and the
// final URL add-control actions resolve against.
type Page struct {
	Document *goquery.Document
	Hostname string
	BaseURL  string
}

// Fetcher retrieves a vendor's menu page. Injectable so handlers can be
// tested against fixture documents.
type Fetcher interface {
	FetchMenu(ctx context.Context, v models.VendorConfig) (*Page, error)
}

// HTTPFetcher fetches menu pages over HTTP with a tuned shared transport.
type HTTPFetcher struct {
	client *http.Client
	log    logger.Logger
}

// NewHTTPFetcher creates a fetcher. A zero timeout uses DefaultTimeout.
func NewHTTPFetcher(timeout time.Duration, log logger.Logger) *HTTPFetcher {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
				TLSHandshakeTimeout: defaultTLSHandshakeTimeout,
			},
		},
		log: log,
	}
}

// Client exposes the underlying HTTP client so the activator can share its
// transport and cookie behavior.
func (f *HTTPFetcher) Client() *http.Client {
	return f.client
}

// FetchMenu downloads and parses the vendor's menu page.
func (f *HTTPFetcher) FetchMenu(ctx context.Context, v models.VendorConfig) (*Page, error) {
	f.log.Info("Fetching vendor menu",
		logger.String("vendor", v.ID),
		logger.String("url", v.MenuURL),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.MenuURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch menu page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("menu page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse menu page: %w", err)
	}

	return &Page{
		Document: doc,
		Hostname: resp.Request.URL.Hostname(),
		BaseURL:  resp.Request.URL.String(),
	}, nil
}
