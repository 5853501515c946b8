package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://ec.europa.eu/eurostat/api/dissemination/statistics/1.0/data/")

		if c.baseURL != "https://ec.europa.eu/eurostat/api/dissemination/statistics/1.0/data" {
			t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxRetries != 0 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 0)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with multiple options", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient("https://api.example.com",
			WithTimeout(15*time.Second),
			WithRetries(2, 500*time.Millisecond),
			WithLanguage("FR"),
			WithLogger(logger),
		)
		if c.httpClient.Timeout != 15*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 15*time.Second)
		}
		if c.maxRetries != 2 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 2)
		}
		if c.retryBackoff != 500*time.Millisecond {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 500*time.Millisecond)
		}
		if c.language != "FR" {
			t.Errorf("language = %q, want %q", c.language, "FR")
		}
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		c := NewClient("https://api.example.com", WithHTTPClient(customClient))
		if c.httpClient != customClient {
			t.Error("custom HTTP client not set")
		}
	})
}

// TestAPIError tests the APIError type.
func TestAPIError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Message: "Not Found"}
		expected := "eurostat api error 404: Not Found"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("classified as HTTP failure", func(t *testing.T) {
		var err error = &APIError{StatusCode: 503}
		if !errors.Is(err, ErrHTTPFailure) {
			t.Error("errors.Is(APIError, ErrHTTPFailure) = false, want true")
		}
	})

	t.Run("IsRetryable", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{500, true},
			{503, true},
			{429, true},
			{400, false},
			{404, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.expected {
				t.Errorf("IsRetryable() for status %d = %v, want %v", tt.code, got, tt.expected)
			}
		}
	})
}

// TestDoRequest tests the HTTP request functionality.
func TestDoRequest(t *testing.T) {
	t.Run("successful request with query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Accept") != "application/json" {
				t.Errorf("Accept header = %q, want %q", r.Header.Get("Accept"), "application/json")
			}
			if r.URL.Path != "/gov_10dd_edpt1" {
				t.Errorf("path = %q, want %q", r.URL.Path, "/gov_10dd_edpt1")
			}
			if r.URL.Query().Get("unit") != "MIO_EUR" {
				t.Errorf("unit = %q, want %q", r.URL.Query().Get("unit"), "MIO_EUR")
			}
			if r.Header.Get("User-Agent") != "debtwatch/test" {
				t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), "debtwatch/test")
			}
			if r.URL.Query().Get("lang") != "EN" {
				t.Errorf("lang = %q, want %q", r.URL.Query().Get("lang"), "EN")
			}
			w.Write([]byte(`{"status": "ok"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL+"/", WithLanguage("EN"), WithUserAgent("debtwatch/test"))
		query := url.Values{"unit": {"MIO_EUR"}}
		body, err := c.doRequest(context.Background(), http.MethodGet, "/gov_10dd_edpt1", query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != `{"status": "ok"}` {
			t.Errorf("body = %q, want %q", string(body), `{"status": "ok"}`)
		}
		if query.Get("lang") != "" {
			t.Error("caller query mutated with lang parameter")
		}
	})

	t.Run("error status returns APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "dataset not found"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL)
		_, err := c.doRequest(context.Background(), http.MethodGet, "/missing", nil)

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T", err)
		}
		if apiErr.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusNotFound)
		}
		if string(apiErr.Body) != `{"error": "dataset not found"}` {
			t.Errorf("Body = %q", string(apiErr.Body))
		}
	})

	t.Run("connection refused is a network failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		addr := server.URL
		server.Close()

		c := NewClient(addr, WithTimeout(time.Second))
		_, err := c.doRequest(context.Background(), http.MethodGet, "/x", nil)
		if !errors.Is(err, ErrNetworkFailure) {
			t.Errorf("error = %v, want ErrNetworkFailure", err)
		}
	})
}

// TestDoWithRetry tests retry behavior when enabled.
func TestDoWithRetry(t *testing.T) {
	t.Run("no retry by default", func(t *testing.T) {
		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(server.URL)
		_, err := c.doWithRetry(context.Background(), http.MethodGet, "/x", nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if got := attempts.Load(); got != 1 {
			t.Errorf("attempts = %d, want 1", got)
		}
	})

	t.Run("retries on 5xx when configured", func(t *testing.T) {
		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if attempts.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, WithRetries(3, 10*time.Millisecond))
		if _, err := c.doWithRetry(context.Background(), http.MethodGet, "/x", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := attempts.Load(); got != 3 {
			t.Errorf("attempts = %d, want 3", got)
		}
	})

	t.Run("does not retry 4xx", func(t *testing.T) {
		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		c := NewClient(server.URL, WithRetries(3, 10*time.Millisecond))
		if _, err := c.doWithRetry(context.Background(), http.MethodGet, "/x", nil); err == nil {
			t.Fatal("expected error")
		}
		if got := attempts.Load(); got != 1 {
			t.Errorf("attempts = %d, want 1", got)
		}
	})
}
