package logo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPFetcher downloads logo bytes with bounded retries. Transport errors
// and 5xx responses are retried; 4xx responses are not.
type HTTPFetcher struct {
	client   *http.Client
	attempts int
	backoff  time.Duration
	maxBytes int64
}

// NewHTTPFetcher creates a fetcher with pooled connections tuned for
// single image downloads.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	transport := &http.Transport{
		MaxIdleConns:           10,
		MaxIdleConnsPerHost:    2,
		IdleConnTimeout:        30 * time.Second,
		TLSHandshakeTimeout:    10 * time.Second,
		ResponseHeaderTimeout:  10 * time.Second,
		ExpectContinueTimeout:  1 * time.Second,
		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		attempts: 3,
		backoff:  time.Second,
		maxBytes: maxBytes,
	}
}

// Fetch returns the response body of a successful GET.
func (h *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < h.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * h.backoff):
			}
		}

		body, retry, err := h.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return nil, fmt.Errorf("failed to fetch logo after %d attempts: %w", h.attempts, lastErr)
}

func (h *HTTPFetcher) get(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/png, image/jpeg, image/webp, image/gif, image/svg+xml, */*")
	req.Header.Set("User-Agent", "qrframe/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("server error: status code %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, false, fmt.Errorf("client error: status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > h.maxBytes {
		return nil, false, fmt.Errorf("logo exceeds %d bytes", h.maxBytes)
	}
	return body, false, nil
}
