// Package fetcher retrieves the raw station feed from the MOENV open-data API.
package fetcher

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the feed client.
type Options struct {
	BaseURL   string
	APIKey    string
	Limit     int
	UserAgent string
	Timeout   time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	// Development only; verification stays on by default.
	InsecureSkipVerify bool
}

// Client issues the feed request. A run performs exactly one GET; the limiter
// keeps repeated manual runs polite toward the open-data host.
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
}

// New creates a feed client with the given options.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "aqimon/1.0"
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Client{
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:    opts,
		limiter: rate.NewLimiter(1, 2),
	}
}

// Fetch performs the feed GET and returns the canonical record list.
// Transport errors, non-2xx statuses, malformed JSON, and unrecognized
// response shapes are distinct errors; none of them is retried.
func (c *Client) Fetch(ctx context.Context) ([]Record, error) {
	if c.opts.APIKey == "" {
		return nil, eris.New("fetcher: api key is required")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "fetcher: rate limiter wait")
	}

	u, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: parse base url %s", c.opts.BaseURL)
	}
	q := u.Query()
	q.Set("api_key", c.opts.APIKey)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(c.opts.Limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: request feed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, eris.Errorf("fetcher: unexpected status %d from %s", resp.StatusCode, c.opts.BaseURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: read response body")
	}

	records, err := DecodeRecords(body)
	if err != nil {
		return nil, err
	}

	zap.L().Info("fetched station feed", zap.Int("records", len(records)))
	return records, nil
}
