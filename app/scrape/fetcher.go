package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/sduras/webwatch/app/metrics"
)

const (
	// FetchTimeout bounds a single request attempt, not the whole retry loop.
	FetchTimeout = 10 * time.Second

	// RetryAttempts is the total number of attempts per URL, including the first.
	RetryAttempts = 3

	// Backoff window between attempts. The actual delay is drawn uniformly
	// from [RetryBackoffMin, RetryBackoffMax).
	RetryBackoffMin = 1 * time.Second
	RetryBackoffMax = 3 * time.Second
)

type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	metrics    *metrics.Metrics

	backoffMin time.Duration
	backoffMax time.Duration
}

func NewFetcher(httpClient *http.Client, userAgent string, m *metrics.Metrics) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		userAgent:  userAgent,
		metrics:    m,
		backoffMin: RetryBackoffMin,
		backoffMax: RetryBackoffMax,
	}
}

// Fetch retrieves url, retrying failed attempts with a randomized backoff.
// The returned body is decoded to UTF-8 regardless of the page charset.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= RetryAttempts; attempt++ {
		body, err := f.fetchOnce(ctx, url)
		if err == nil {
			f.metrics.CountFetchAttempt("success")
			return body, nil
		}

		lastErr = err
		f.metrics.CountFetchAttempt("failure")
		slog.Warn("Fetch attempt failed",
			"url", url,
			"attempt", attempt,
			"attempts", RetryAttempts,
			"error", err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt < RetryAttempts {
			if err := f.wait(ctx); err != nil {
				return nil, err
			}
		}
	}

	slog.Error("Fetch failed",
		"url", url,
		"attempts", RetryAttempts,
		"error", lastErr)

	return nil, fmt.Errorf("failed to fetch %s after %d attempts: %w", url, RetryAttempts, lastErr)
}

// FetchDocument retrieves url and parses the body as an HTML document.
func (f *Fetcher) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	return doc, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Accept-Language", "uk-UA,uk;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

func (f *Fetcher) wait(ctx context.Context) error {
	backoff := f.backoffMin
	if f.backoffMax > f.backoffMin {
		backoff += time.Duration(rand.Int63n(int64(f.backoffMax - f.backoffMin)))
	}

	select {
	case <-time.After(backoff):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
