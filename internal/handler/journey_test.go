package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/repository"
)

func TestParseSchedule(t *testing.T) {
	cases := []struct {
		name      string
		departure string
		arrival   string
		wantErr   string
	}{
		{
			name:      "valid pair",
			departure: "2026-09-01T08:00:00Z",
			arrival:   "2026-09-01T12:30:00Z",
		},
		{
			name:      "surrounding whitespace trimmed",
			departure: "  2026-09-01T08:00:00Z ",
			arrival:   "2026-09-01T12:30:00+02:00",
		},
		{
			name:      "bad departure format",
			departure: "2026-09-01 08:00",
			arrival:   "2026-09-01T12:30:00Z",
			wantErr:   "invalid departure_time",
		},
		{
			name:      "bad arrival format",
			departure: "2026-09-01T08:00:00Z",
			arrival:   "tomorrow",
			wantErr:   "invalid arrival_time",
		},
		{
			name:      "departure equals arrival",
			departure: "2026-09-01T08:00:00Z",
			arrival:   "2026-09-01T08:00:00Z",
			wantErr:   "invalid_schedule",
		},
		{
			name:      "departure after arrival",
			departure: "2026-09-01T12:00:00Z",
			arrival:   "2026-09-01T08:00:00Z",
			wantErr:   "invalid_schedule",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/", "")
			req := journeyReq{DepartureTime: tc.departure, ArrivalTime: tc.arrival}
			dep, arr, handled := parseSchedule(c, req)
			if tc.wantErr != "" {
				if !handled {
					t.Fatal("expected schedule to be rejected")
				}
				if rec.Code != http.StatusBadRequest {
					t.Fatalf("status = %d, want 400", rec.Code)
				}
				if !strings.Contains(rec.Body.String(), tc.wantErr) {
					t.Fatalf("body %q missing %q", rec.Body.String(), tc.wantErr)
				}
				return
			}
			if handled {
				t.Fatalf("valid schedule rejected: %s", rec.Body.String())
			}
			if !dep.Before(arr) {
				t.Fatalf("parsed times out of order: dep=%v arr=%v", dep, arr)
			}
		})
	}
}

func TestParseScheduleOffsetsCompared(t *testing.T) {
	// 10:00+02:00 is 08:00Z, so an 09:00Z arrival is still after it.
	c, rec := newTestContext(t, http.MethodPost, "/", "")
	req := journeyReq{
		DepartureTime: "2026-09-01T10:00:00+02:00",
		ArrivalTime:   "2026-09-01T09:00:00Z",
	}
	dep, arr, handled := parseSchedule(c, req)
	if handled {
		t.Fatalf("offset-aware comparison rejected valid pair: %s", rec.Body.String())
	}
	if got := arr.Sub(dep); got != time.Hour {
		t.Fatalf("span = %v, want 1h", got)
	}
}

func TestSearchRejectsBadDate(t *testing.T) {
	// The date check runs before any repository call, so a repo
	// around a nil DB is safe here.
	h := NewJourneyHandler(repository.NewJourneyRepo(nil))
	cases := []string{"01-09-2026", "2026/09/01", "2026-09-01T08:00:00Z", "yesterday"}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodGet, "/?date="+url.QueryEscape(raw), "")
			if err := h.Search(c); err != nil {
				t.Fatalf("Search returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "YYYY-MM-DD") {
				t.Fatalf("body missing format hint: %s", rec.Body.String())
			}
		})
	}
}
