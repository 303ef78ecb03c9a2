package sfmc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, server *httptest.Server, maxRetries int) *Client {
	t.Helper()
	client, err := NewClient(Config{
		RESTBase:     server.URL,
		SOAPEndpoint: server.URL + "/Service.asmx",
		TokenSource:  &StaticTokenSource{Value: "token"},
		MaxRetries:   maxRetries,
		BaseDelay:    time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestCallRetriesUntilCeiling(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server, 3)
	_, err := client.call(context.Background(), http.MethodGet, server.URL+"/x", nil, "")
	if err == nil {
		t.Fatalf("expected error after retries exhausted")
	}
	if got := attempts.Load(); got != 4 {
		t.Fatalf("expect 4 attempts (1 initial + 3 retries), got %d", got)
	}
	stats := client.Stats()
	if stats.Retries != 3 {
		t.Fatalf("expect 3 retries counted, got %d", stats.Retries)
	}
	if stats.APICalls != 4 {
		t.Fatalf("expect 4 api calls counted, got %d", stats.APICalls)
	}
}

func TestCallDoesNotRetryUnauthorized(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, server, 3)
	_, err := client.call(context.Background(), http.MethodGet, server.URL+"/x", nil, "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("auth failure must not retry, got %d attempts", got)
	}
}

func TestCallDoesNotRetryClientError(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server, 3)
	_, err := client.call(context.Background(), http.MethodGet, server.URL+"/x", nil, "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Retryable() {
		t.Fatalf("400 must not be retryable")
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("400 must not retry, got %d attempts", got)
	}
}

func TestCallSucceedsAfterTransientFailure(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, 3)
	data, err := client.call(context.Background(), http.MethodGet, server.URL+"/x", nil, "")
	if err != nil {
		t.Fatalf("expected success after retries: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected body %s", data)
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("expect 3 attempts, got %d", got)
	}
}

func TestCallSetsBearerHeader(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, 3)
	if _, err := client.call(context.Background(), http.MethodGet, server.URL+"/x", nil, ""); err != nil {
		t.Fatalf("call: %v", err)
	}
	if auth != "Bearer token" {
		t.Fatalf("unexpected authorization header %q", auth)
	}
}
