package engine

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetch failure taxonomy. ErrNotFound is only meaningful to the detail
// lookup; every other caller treats both the same way.
var (
	ErrNotFound    = errors.New("upstream document not found")
	ErrFetchFailed = errors.New("upstream fetch failed")
)

// newFetchClient creates an HTTP client with proper settings for page fetches.
func newFetchClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: 15 * time.Second,
		},
	}
}

// FetchDocument performs exactly one GET against the given URL and
// parses the response into a document. No retry, no caching: every
// logical request re-fetches. A 404 maps to ErrNotFound; any other
// non-2xx status or transport failure maps to ErrFetchFailed.
func FetchDocument(ctx context.Context, fetchURL string) (*goquery.Document, error) {
	metrics.FetchRequests.Add(1)

	body, status, err := fetchBody(ctx, fetchURL)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if status == http.StatusNotFound {
		metrics.FetchErrors.Add(1)
		return nil, ErrNotFound
	}
	if status < 200 || status > 299 {
		metrics.FetchErrors.Add(1)
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, status)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		metrics.FetchErrors.Add(1)
		return nil, fmt.Errorf("%w: parse: %w", ErrFetchFailed, err)
	}
	return doc, nil
}

// fetchBody issues the GET over the browser-fingerprint transport when
// one is configured, the plain HTTP client otherwise.
func fetchBody(ctx context.Context, fetchURL string) ([]byte, int, error) {
	if cfg.Browser != nil {
		headers := ChromeHeaders()
		headers["referer"] = cfg.BaseURL + "/"
		return cfg.Browser.Do(http.MethodGet, fetchURL, headers, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", RandomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := readResponseBody(resp, cfg.MaxBodyBytes)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// readResponseBody reads the response body, handling gzip decompression if needed.
func readResponseBody(resp *http.Response, limit int64) ([]byte, error) {
	var r io.Reader = io.LimitReader(resp.Body, limit)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(r)
}
