// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketEvent is one booked seat inside an OrderConfirmedEvent. Each
// ticket carries its own journey context because a single order may
// span several journeys.
type TicketEvent struct {
	JourneyID     uint64 `json:"journey_id"`
	Route         string `json:"route"`
	DepartureTime string `json:"departure_time"`
	Cargo         int    `json:"cargo"`
	Seat          int    `json:"seat"`
}

// OrderConfirmedEvent is published when an order commits. It carries
// enough information for downstream consumers to log or notify
// without querying the primary database.
type OrderConfirmedEvent struct {
	OrderID     uint64        `json:"order_id"`
	UserID      uint64        `json:"user_id"`
	TicketCount int           `json:"ticket_count"`
	Tickets     []TicketEvent `json:"tickets"`
	ConfirmedAt string        `json:"confirmed_at"`
}
