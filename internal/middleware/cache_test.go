package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{
		"Content-Type": []string{"application/json"},
		"X-Custom":     []string{"a", "b"},
	}
	body := []byte(`{"data":[],"total":0}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatal(err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decodePayload rejected a valid payload")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d, want %d", status, http.StatusOK)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := gotHdr["X-Custom"]; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("X-Custom = %v", got)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %q, want %q", gotBody, body)
	}
}

func TestPayloadEmptyBody(t *testing.T) {
	payload, err := encodePayload(http.StatusOK, http.Header{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	status, _, body, ok := decodePayload(payload)
	if !ok || status != http.StatusOK || len(body) != 0 {
		t.Fatalf("got status=%d body=%q ok=%v", status, body, ok)
	}
}

func TestDecodePayloadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		bs   []byte
	}{
		{"empty", nil},
		{"too short", []byte{0, 0, 0}},
		{"header length past end", []byte{0, 0, 0, 200, 0, 0, 0, 99, 'x'}},
		{"garbage header json", append([]byte{0, 0, 0, 200, 0, 0, 0, 2}, []byte("{!")...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, ok := decodePayload(tt.bs); ok {
				t.Fatal("decodePayload accepted a corrupt payload")
			}
		})
	}
}

func cacheCtx(path, rawQuery string) echo.Context {
	e := echo.New()
	target := path
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	return c
}

func TestCacheKeyFrom(t *testing.T) {
	cfg := config.CacheConfig{KeyStrategy: "route_query", Prefix: "cache"}

	a := cacheKeyFrom(cfg, cacheCtx("/v1/journeys", "source=kyiv&page=1"))
	b := cacheKeyFrom(cfg, cacheCtx("/v1/journeys", "source=kyiv&page=1"))
	if a != b {
		t.Fatalf("same request produced different keys: %q vs %q", a, b)
	}

	c := cacheKeyFrom(cfg, cacheCtx("/v1/journeys", "source=kyiv&page=2"))
	if a == c {
		t.Fatal("different query produced the same key")
	}

	d := cacheKeyFrom(cfg, cacheCtx("/v1/stations", "source=kyiv&page=1"))
	if a == d {
		t.Fatal("different route produced the same key")
	}

	routeOnly := config.CacheConfig{KeyStrategy: "route", Prefix: "cache"}
	e1 := cacheKeyFrom(routeOnly, cacheCtx("/v1/journeys", "page=1"))
	e2 := cacheKeyFrom(routeOnly, cacheCtx("/v1/journeys", "page=9"))
	if e1 != e2 {
		t.Fatal("route strategy should ignore the query string")
	}
}

func TestNewRedisCacheDisabledPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	c := cacheCtx("/v1/stations", "")
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("disabled cache must pass requests through")
	}
	if got := c.Response().Header().Get("X-Cache"); got != "" {
		t.Fatalf("disabled cache set X-Cache=%q", got)
	}
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	if _, err := cw.Write([]byte("abcdef")); err != nil {
		t.Fatal(err)
	}
	if got := rec.Body.String(); got != "abcdef" {
		t.Fatalf("client saw %q, want full body", got)
	}
	if got := cw.buf.String(); got != "abcd" {
		t.Fatalf("captured %q, want truncated %q", got, "abcd")
	}
	if cw.size != 6 {
		t.Fatalf("size = %d, want 6", cw.size)
	}
}
