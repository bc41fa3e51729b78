package queue

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleEvent() OrderConfirmedEvent {
	return OrderConfirmedEvent{
		OrderID:     7,
		UserID:      42,
		TicketCount: 2,
		Tickets: []TicketEvent{
			{JourneyID: 3, Route: "Kyiv -> Lviv (540)", DepartureTime: "2026-09-01T08:30:00Z", Cargo: 2, Seat: 14},
			{JourneyID: 3, Route: "Kyiv -> Lviv (540)", DepartureTime: "2026-09-01T08:30:00Z", Cargo: 2, Seat: 15},
		},
		ConfirmedAt: "2026-08-21T10:00:00Z",
	}
}

func TestFormatOrderLine(t *testing.T) {
	line := formatOrderLine(sampleEvent())
	for _, want := range []string{
		"order_id=7",
		"user_id=42",
		"tickets=2",
		`route="Kyiv -> Lviv (540)"`,
		"cargo=2 seat=14",
		"cargo=2 seat=15",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("line must end with a newline")
	}
}

func TestFormatOrderLineNoTickets(t *testing.T) {
	ev := OrderConfirmedEvent{OrderID: 1, ConfirmedAt: "2026-08-21T10:00:00Z"}
	line := formatOrderLine(ev)
	if !strings.Contains(line, "[]") {
		t.Errorf("empty ticket list should render as [], got %q", line)
	}
}

func TestAppendOrderLog(t *testing.T) {
	dir := t.TempDir()
	ev := sampleEvent()

	if err := appendOrderLog(dir, ev); err != nil {
		t.Fatal(err)
	}
	if err := appendOrderLog(dir, ev); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "orders.log"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 appended lines", len(lines))
	}
	if lines[0] != lines[1] {
		t.Error("identical events should append identical lines")
	}
}

func TestHandleMessageMalformed(t *testing.T) {
	if err := handleMessage([]byte("{not json")); err == nil {
		t.Fatal("malformed body must return an error so the delivery is rejected")
	}
}
