package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	UserAgent = "track-assets/1.0 (github.com/pfrederiksen/track-assets)"
)

// StatusError reports a response whose status code was not 200 OK
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// Fetcher handles fetching pages and binary resources
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher. A zero timeout leaves requests bounded only by the
// transport defaults.
func New(userAgent string, timeout time.Duration) *Fetcher {
	if userAgent == "" {
		userAgent = UserAgent
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// WithClient replaces the underlying HTTP client
func (f *Fetcher) WithClient(client *http.Client) *Fetcher {
	f.client = client
	return f
}

// Open issues a GET for url and returns the response body for streaming.
// The caller must close it.
func (f *Fetcher) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}
