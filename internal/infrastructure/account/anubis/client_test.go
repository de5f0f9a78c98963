package anubis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/hr-profile/internal/platform/logging"
	"github.com/riskibarqy/hr-profile/internal/platform/resilience"
	"github.com/riskibarqy/hr-profile/internal/usecase"
)

func newTestClient(srv *httptest.Server, opts Options) *Client {
	opts.BaseURL = srv.URL
	opts.IntrospectPath = "/v1/auth/introspect"
	return NewClient(srv.Client(), opts, logging.NewNop())
}

func TestClientVerifyAccessToken_SendsAdminKeyAndParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-admin-key"); got != "admin-secret" {
			t.Errorf("unexpected x-admin-key: %s", got)
		}

		var req map[string]string
		if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Errorf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-123",
			"email":   "user@example.com",
			"roles":   []string{"viewer"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, Options{AdminKey: "admin-secret", CacheTTL: -1})

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.UserID != "user-123" || principal.Email != "user@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestClientVerifyAccessToken_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		payload map[string]any
		want    error
	}{
		{name: "inactive token", status: http.StatusOK, payload: map[string]any{"active": false}, want: usecase.ErrUnauthorized},
		{name: "expired token", status: http.StatusOK, payload: map[string]any{"active": true, "user_id": "u1", "exp": 1}, want: usecase.ErrUnauthorized},
		{name: "unauthorized", status: http.StatusUnauthorized, want: usecase.ErrUnauthorized},
		{name: "forbidden admin key", status: http.StatusForbidden, want: usecase.ErrDependencyUnavailable},
		{name: "server error", status: http.StatusBadGateway, want: usecase.ErrDependencyUnavailable},
		{name: "missing user id", status: http.StatusOK, payload: map[string]any{"active": true}, want: usecase.ErrDependencyUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				if tt.payload != nil {
					_ = jsoniter.NewEncoder(w).Encode(tt.payload)
				}
			}))
			defer srv.Close()

			_, err := newTestClient(srv, Options{CacheTTL: -1}).VerifyAccessToken(context.Background(), "token-abc")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestClientVerifyAccessToken_UsesInMemoryCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-cache",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, Options{})

	for i := 0; i < 2; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "cached-token")
		if err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
		if principal.UserID != "user-cache" {
			t.Fatalf("unexpected user id: %s", principal.UserID)
		}
	}

	if calls.Load() != 1 {
		t.Fatalf("expected one introspection call with cache, got %d", calls.Load())
	}
}

func TestClientVerifyAccessToken_CacheStopsAtTokenExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Second).Unix() + 1
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) > 1 {
			_ = jsoniter.NewEncoder(w).Encode(map[string]any{"active": false})
			return
		}
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-exp",
			"exp":     exp,
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, Options{CacheTTL: time.Minute})

	if _, err := client.VerifyAccessToken(context.Background(), "expiring-token"); err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if _, err := client.VerifyAccessToken(context.Background(), "expiring-token"); err != nil {
		t.Fatalf("verify cached token failed: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one introspection call before expiry, got %d", got)
	}

	time.Sleep(time.Until(time.Unix(exp, 0)) + 50*time.Millisecond)

	_, err := client.VerifyAccessToken(context.Background(), "expiring-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after token expiry, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected expired token to be introspected again, got %d calls", got)
	}
}

func TestClientVerifyAccessToken_OpensCircuitOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv, Options{
		CacheTTL: -1,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
		},
	})

	for i := 0; i < 4; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token-abc")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("call %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected the breaker to stop calls after 2 failures, got %d calls", got)
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, Options{BaseURL: "http://127.0.0.1:0"}, nil)
	if _, err := client.VerifyAccessToken(context.Background(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	cases := map[string][3]string{
		"joins":      {"https://anubis.example.com/", "v1/auth/introspect", "https://anubis.example.com/v1/auth/introspect"},
		"absolute":   {"https://anubis.example.com", "https://other.example.com/x", "https://other.example.com/x"},
		"empty path": {"https://anubis.example.com/", "", "https://anubis.example.com"},
	}
	for name, tc := range cases {
		if got := buildURL(tc[0], tc[1]); got != tc[2] {
			t.Fatalf("%s: buildURL(%q, %q)=%q want %q", name, tc[0], tc[1], got, tc[2])
		}
	}
}
