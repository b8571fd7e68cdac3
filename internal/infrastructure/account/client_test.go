package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/goalcard/console-api/internal/platform/resilience"
	"github.com/goalcard/console-api/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_VerifyAccessToken_ParsesPrincipal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":         true,
			"user_id":        "user-123",
			"email":          "manager@example.com",
			"wallet_address": "0xabc",
		})
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: false},
		discardLogger(),
	)

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if principal.UserID != "user-123" || principal.WalletAddress != "0xabc" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestClient_VerifyAccessToken_DenialsAndEmptyToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: false},
		discardLogger(),
	)

	if _, err := client.VerifyAccessToken(context.Background(), ""); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("empty token: expected ErrUnauthorized, got %v", err)
	}
	if _, err := client.VerifyAccessToken(context.Background(), "bad-token"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("denied token: expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_VerifyAccessToken_CircuitOpensOnOutage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, HalfOpenMaxReq: 1},
		discardLogger(),
	)

	for i := 0; i < 2; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "token"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("outage %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}

	// Third call is short-circuited without touching the server.
	if _, err := client.VerifyAccessToken(context.Background(), "token"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("open circuit: expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestClient_VerifyAccessToken_InactiveTokenIsUnauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: false},
		discardLogger(),
	)

	if _, err := client.VerifyAccessToken(context.Background(), "token"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("inactive token: expected ErrUnauthorized, got %v", err)
	}
}
