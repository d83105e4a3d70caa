package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return New(Options{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		Limit:     100,
		UserAgent: "test-agent",
		Timeout:   5 * time.Second,
	})
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"sitename":"大安","aqi":"45"}]`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "大安", records[0]["sitename"])
}

func TestFetchEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"records":[{"sitename":"大安","aqi":"45"}]}`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchNoRetry(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, int64(1), calls.Load(), "a failed fetch must not be retried")
}

func TestFetchMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"sitename":`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchMissingAPIKey(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL})
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
	assert.Equal(t, int64(0), calls.Load(), "missing key must be caught before any request")
}

func TestNewDefaults(t *testing.T) {
	c := New(Options{BaseURL: "https://example.test", APIKey: "k"})
	assert.Equal(t, 30*time.Second, c.opts.Timeout)
	assert.Equal(t, 100, c.opts.Limit)
	assert.Equal(t, "aqimon/1.0", c.opts.UserAgent)
}
