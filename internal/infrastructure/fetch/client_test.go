package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cenoskoczek/backend/internal/domain"
)

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})

	assert.NotNil(t, client)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
	assert.Equal(t, defaultUserAgent, client.userAgent)
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TestAgent/1.0", r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept"), "text/html")

		w.Write([]byte(`<html><span class="price">3,50 zł</span></html>`))
	}))
	defer server.Close()

	client := NewClient(Config{UserAgent: "TestAgent/1.0", RatePerSecond: 100})

	content, err := client.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, string(content), "3,50")
}

func TestFetch_BadStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
		{"forbidden", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(Config{RatePerSecond: 100})

			_, err := client.Fetch(context.Background(), server.URL)

			var fetchErr *domain.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, domain.FetchBadStatus, fetchErr.Kind)
			assert.Equal(t, tt.status, fetchErr.Status)
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(Config{Timeout: 20 * time.Millisecond, RatePerSecond: 100})

	_, err := client.Fetch(context.Background(), server.URL)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, domain.FetchTimeout, fetchErr.Kind)
}

func TestFetch_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(Config{RatePerSecond: 100})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx, server.URL)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, domain.FetchTimeout, fetchErr.Kind)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	// Reserve a port then close it so nothing is listening.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	client := NewClient(Config{RatePerSecond: 100})

	_, err := client.Fetch(context.Background(), deadURL)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, domain.FetchNetwork, fetchErr.Kind)
}

func TestFetch_InvalidURL(t *testing.T) {
	client := NewClient(Config{RatePerSecond: 100})

	_, err := client.Fetch(context.Background(), "http://\x00invalid")

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.FetchNetwork, fetchErr.Kind)
}
