// Package fetch retrieves raw page content from external price sources.
package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenoskoczek/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "CenoSkoczek/1.0 (+https://cenoskoczek.example)"
	defaultRate      = 2.0
	defaultBurst     = 4
)

// Config holds fetcher configuration.
type Config struct {
	// Timeout bounds a single fetch, including body read.
	Timeout time.Duration

	// UserAgent is sent with every request. Retailers reject the Go
	// default agent outright, so this is always set.
	UserAgent string

	// RatePerSecond and Burst throttle outbound requests across all
	// concurrent comparisons sharing this client.
	RatePerSecond float64
	Burst         int
}

// Client performs single bounded GET requests against price sources.
// It holds no mutable state beyond the shared limiter and is safe for
// concurrent use.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	rateLimiter *rate.Limiter
}

// NewClient creates a fetch client with the given configuration.
// Zero values fall back to conservative defaults.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = defaultRate
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Fetch issues a single GET with a bounded timeout and returns the raw
// page body. There are no retries; every failure is returned as a
// *domain.FetchError classified as network, timeout, or bad status.
func (c *Client) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fetchErr(pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchNetwork, URL: pageURL, Err: err}
	}

	// Browser-like headers; several retailers 403 bare clients.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pl-PL,pl;q=0.9,en;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fetchErr(pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return nil, &domain.FetchError{Kind: domain.FetchBadStatus, URL: pageURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fetchErr(pageURL, err)
	}

	return body, nil
}

// fetchErr classifies a transport-level failure as timeout or network.
func fetchErr(pageURL string, err error) *domain.FetchError {
	kind := domain.FetchNetwork
	if isTimeout(err) {
		kind = domain.FetchTimeout
	}
	return &domain.FetchError{Kind: kind, URL: pageURL, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
