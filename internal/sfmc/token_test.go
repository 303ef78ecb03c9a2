package sfmc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticTokenSource(t *testing.T) {
	src := &StaticTokenSource{Value: "fixed"}
	got, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if got != "fixed" {
		t.Fatalf("expect fixed, got %q", got)
	}
}

func TestClientCredentialsTokenCached(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["grant_type"] != "client_credentials" {
			t.Fatalf("unexpected grant_type %q", body["grant_type"])
		}
		if body["account_id"] != "mid-1" {
			t.Fatalf("unexpected account_id %q", body["account_id"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"token_type":   "Bearer",
			"expires_in":   1200,
		})
	}))
	defer srv.Close()

	src, err := NewClientCredentialsTokenSource(ClientCredentialsConfig{
		Endpoint:     srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		AccountID:    "mid-1",
	})
	if err != nil {
		t.Fatalf("new token source: %v", err)
	}

	for i := 0; i < 3; i++ {
		tok, err := src.Token(context.Background())
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		if tok != "tok-1" {
			t.Fatalf("expect tok-1, got %q", tok)
		}
	}
	if calls != 1 {
		t.Fatalf("token must be cached until expiry, got %d calls", calls)
	}
}

func TestClientCredentialsTokenUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	src, err := NewClientCredentialsTokenSource(ClientCredentialsConfig{
		Endpoint:     srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
	})
	if err != nil {
		t.Fatalf("new token source: %v", err)
	}
	if _, err := src.Token(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expect ErrUnauthorized, got %v", err)
	}
}

func TestClientCredentialsConfigValidation(t *testing.T) {
	if _, err := NewClientCredentialsTokenSource(ClientCredentialsConfig{ClientID: "id", ClientSecret: "s"}); err == nil {
		t.Fatalf("missing endpoint must fail")
	}
	if _, err := NewClientCredentialsTokenSource(ClientCredentialsConfig{Endpoint: "https://x/token"}); err == nil {
		t.Fatalf("missing credentials must fail")
	}
}
