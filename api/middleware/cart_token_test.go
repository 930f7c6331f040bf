package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestCartTokenPropagatesExistingToken(t *testing.T) {
	var seen string
	handler := CartToken(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartTokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "existing-token")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen != "existing-token" {
		t.Fatalf("expected token passthrough got %q", seen)
	}
	if got := resp.Header().Get("X-Cart-Token"); got != "existing-token" {
		t.Fatalf("expected header echo got %q", got)
	}
}

func TestCartTokenMintsWhenAbsent(t *testing.T) {
	var seen string
	handler := CartToken(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartTokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == "" {
		t.Fatal("expected a minted token")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("minted token is not a uuid: %v", err)
	}
	if got := resp.Header().Get("X-Cart-Token"); got != seen {
		t.Fatalf("header %q does not match context token %q", got, seen)
	}
}

func TestCartTokenFromContextMissing(t *testing.T) {
	if got := CartTokenFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Fatalf("expected empty token got %q", got)
	}
}
