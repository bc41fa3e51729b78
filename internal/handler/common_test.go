package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetUserID(t *testing.T) {
	cases := []struct {
		name    string
		value   interface{}
		want    uint64
		wantErr bool
	}{
		{name: "absent", value: nil, wantErr: true},
		{name: "float64 from jwt claims", value: float64(42), want: 42},
		{name: "uint64", value: uint64(7), want: 7},
		{name: "int64", value: int64(9), want: 9},
		{name: "int", value: 3, want: 3},
		{name: "numeric string", value: "15", want: 15},
		{name: "garbage string", value: "abc", wantErr: true},
		{name: "wrong type", value: []byte("42"), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodGet, "/", "")
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			got, err := getUserID(c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got id %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	cases := []struct {
		name    string
		param   string
		want    uint64
		wantErr bool
	}{
		{name: "valid", param: "12", want: 12},
		{name: "zero rejected", param: "0", wantErr: true},
		{name: "negative", param: "-1", wantErr: true},
		{name: "not a number", param: "abc", wantErr: true},
		{name: "empty", param: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodGet, "/", "")
			c.SetParamNames("id")
			c.SetParamValues(tc.param)
			got, err := parseID(c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantSize: 25},
		{name: "explicit", query: "?page=3&page_size=10", wantPage: 3, wantSize: 10},
		{name: "page below one clamps", query: "?page=0", wantPage: 1, wantSize: 25},
		{name: "negative page clamps", query: "?page=-4", wantPage: 1, wantSize: 25},
		{name: "size below one falls back", query: "?page_size=0", wantPage: 1, wantSize: 25},
		{name: "size above cap clamps", query: "?page_size=500", wantPage: 1, wantSize: 100},
		{name: "garbage ignored", query: "?page=x&page_size=y", wantPage: 1, wantSize: 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodGet, "/"+tc.query, "")
			page, size := pageParams(c, 25)
			if page != tc.wantPage || size != tc.wantSize {
				t.Fatalf("got page=%d size=%d, want page=%d size=%d", page, size, tc.wantPage, tc.wantSize)
			}
		})
	}
}

func TestBindAndValidate(t *testing.T) {
	type req struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name" validate:"required"`
	}

	t.Run("valid body passes", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodPost, "/", `{"email":"a@b.cz","name":"x"}`)
		var r req
		if handled := bindAndValidate(c, &r); handled {
			t.Fatalf("valid body reported handled, response: %s", rec.Body.String())
		}
		if r.Email != "a@b.cz" || r.Name != "x" {
			t.Fatalf("bound values wrong: %+v", r)
		}
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodPost, "/", `{"email":`)
		var r req
		if handled := bindAndValidate(c, &r); !handled {
			t.Fatal("malformed body not handled")
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "invalid_request") {
			t.Fatalf("body missing error code: %s", rec.Body.String())
		}
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodPost, "/", `{"email":"not-an-email"}`)
		var r req
		if handled := bindAndValidate(c, &r); !handled {
			t.Fatal("invalid body not handled")
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "details") {
			t.Fatalf("body missing details: %s", body)
		}
		if !strings.Contains(body, "Email") || !strings.Contains(body, "Name") {
			t.Fatalf("details missing failed fields: %s", body)
		}
	})
}
