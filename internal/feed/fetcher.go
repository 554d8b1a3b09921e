package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// feeds are a few hundred KB at most; anything beyond this is not a calendar
const maxFeedSize = 5 << 20

// Fetcher retrieves the raw calendar text for a feed URL. Host allow-listing
// is the upstream proxy's concern, not the fetcher's.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// StatusError is returned when the feed host answers with a non-success
// HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed request failed with status %d", e.Code)
}

type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create feed request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar, text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return "", fmt.Errorf("failed to read feed body: %w", err)
	}

	return string(body), nil
}
