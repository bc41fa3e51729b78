package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/utils"
)

const testSecret = "test-secret"

func newTestContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJWTAuthMissingHeader(t *testing.T) {
	c, rec := newTestContext(t, "")
	called := false
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if called {
		t.Fatal("next handler ran without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	c, rec := newTestContext(t, "Bearer not.a.jwt")
	h := JWTAuth(testSecret)(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, "CUSTOMER", 15)
	if err != nil {
		t.Fatal(err)
	}
	c, rec := newTestContext(t, "Bearer "+tok.Token)
	h := JWTAuth(testSecret)(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestJWTAuthRejectsUnsignedToken(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": 1, "role": "STAFF"})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	c, rec := newTestContext(t, "Bearer "+raw)
	h := JWTAuth(testSecret)(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "STAFF", 15)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := newTestContext(t, "Bearer "+tok.Token)

	var gotUser interface{}
	var gotRole interface{}
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		gotUser = c.Get("user_id")
		gotRole = c.Get("role")
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	// Numeric claims decode as float64.
	if f, ok := gotUser.(float64); !ok || uint64(f) != 42 {
		t.Fatalf("user_id = %#v, want 42", gotUser)
	}
	if gotRole != "STAFF" {
		t.Fatalf("role = %#v, want STAFF", gotRole)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		role    interface{}
		allowed []string
		want    int
	}{
		{"staff allowed", "STAFF", []string{"STAFF"}, http.StatusOK},
		{"customer allowed among several", "CUSTOMER", []string{"STAFF", "CUSTOMER"}, http.StatusOK},
		{"customer rejected", "CUSTOMER", []string{"STAFF"}, http.StatusForbidden},
		{"missing role", nil, []string{"STAFF"}, http.StatusForbidden},
		{"mistyped role", 7, []string{"STAFF"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, "")
			if tt.role != nil {
				c.Set("role", tt.role)
			}
			h := RequireRole(tt.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := h(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestUserID(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"absent", nil, "anon"},
		{"float64 claim", float64(42), "42"},
		{"string claim", "7", "7"},
		{"empty string", "", "anon"},
		{"int64", int64(9), "9"},
		{"uint64", uint64(11), "11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t, "")
			if tt.value != nil {
				c.Set("user_id", tt.value)
			}
			if got := userID(c); got != tt.want {
				t.Fatalf("userID = %q, want %q", got, tt.want)
			}
		})
	}
}
