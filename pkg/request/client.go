package request

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"langcat/pkg/tracker"
	"langcat/pkg/version"
)

var (
	defaultUserAgent = fmt.Sprintf("langcat/%s", version.Version)
)

// StatusError is returned when the server answers with a non-success status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api error: status %d (%s)", e.Code, e.URL)
}

// Client performs single-shot HTTP requests with usage tracking.
// It never retries; the transport timeout is the only deadline besides ctx.
type Client struct {
	httpClient *http.Client
	tracker    *tracker.Tracker
}

// New creates a new Client. A zero timeout leaves the transport default in place.
func New(t *tracker.Tracker, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		tracker:    t,
	}
}

// Get performs one GET request and returns the body.
func (c *Client) Get(ctx context.Context, u string) ([]byte, error) {
	parsedURL, err := url.Parse(u)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")

	body, err := c.execute(req)
	if c.tracker != nil {
		if err != nil {
			c.tracker.TrackFetchFailure(parsedURL.Host)
		} else {
			c.tracker.TrackFetchSuccess(parsedURL.Host)
		}
	}
	return body, err
}

func (c *Client) execute(req *http.Request) ([]byte, error) {
	slog.Debug("Network Request", "host", req.URL.Host, "path", req.URL.Path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, URL: req.URL.String()}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	return body, nil
}
