package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sambabib/webcompat/pkg/logger"
)

const (
	// DefaultTimeout bounds a single request including reading the body.
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "webcompat-scanner"
)

// Response is the result of a successful fetch
type Response struct {
	URL        string
	StatusCode int
	Body       string
	FetchedAt  time.Time
}

// Client fetches remote content units.
type Client interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// FetchError reports a network failure or a non-2xx response for URL.
type FetchError struct {
	URL        string
	StatusCode int // zero for network failures
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPClient is a net/http backed Client
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates a client with the given timeout and user agent.
// Zero values fall back to DefaultTimeout and DefaultUserAgent.
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPClient{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get issues a GET request and returns the body as text.
// Any status outside 2xx is returned as a *FetchError.
func (c *HTTPClient) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)

	logger.Debugf("Fetching %s", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	return &Response{
		URL:        url,
		StatusCode: resp.StatusCode,
		Body:       string(body),
		FetchedAt:  time.Now(),
	}, nil
}
