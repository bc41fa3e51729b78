package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/config"
)

func rateCtx(method, path string, uid interface{}) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.9:4242"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	if uid != nil {
		c.Set("user_id", uid)
	}
	return c
}

func TestBuildRateKey(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}
	key := buildRateKey(cfg, rateCtx(http.MethodPost, "/v1/orders", float64(42)))

	for _, part := range []string{"rl:", "203.0.113.9", "user:42", "POST /v1/orders"} {
		if !strings.Contains(key, part) {
			t.Fatalf("key %q missing %q", key, part)
		}
	}
}

func TestBuildRateKeyStrategies(t *testing.T) {
	base := rateCtx(http.MethodGet, "/v1/journeys", float64(7))
	tests := []struct {
		strategy string
		want     []string
		absent   []string
	}{
		{"ip", []string{"ip:203.0.113.9"}, []string{"user:", "route:"}},
		{"user", []string{"user:7"}, []string{"ip:", "route:"}},
		{"route", []string{"route:GET /v1/journeys"}, []string{"ip:", "user:"}},
		{"ip_route", []string{"ip:203.0.113.9", "route:GET /v1/journeys"}, []string{"user:"}},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: tt.strategy}
			key := buildRateKey(cfg, base)
			for _, w := range tt.want {
				if !strings.Contains(key, w) {
					t.Fatalf("key %q missing %q", key, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(key, a) {
					t.Fatalf("key %q must not contain %q", key, a)
				}
			}
		})
	}
}

func TestBuildRateKeyAnon(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	key := buildRateKey(cfg, rateCtx(http.MethodGet, "/v1/journeys", nil))
	if !strings.Contains(key, "user:anon") {
		t.Fatalf("key %q should fall back to anon", key)
	}
}

func TestAsInt64(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"int64", int64(5), 5},
		{"int", 5, 5},
		{"float64", float64(5.9), 5},
		{"numeric string", "12", 12},
		{"garbage string", "x", 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := asInt64(tt.in); got != tt.want {
				t.Fatalf("asInt64(%#v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewTokenBucketDisabledPassesThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)
	c := rateCtx(http.MethodGet, "/v1/journeys", nil)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("disabled limiter must pass requests through")
	}
}
