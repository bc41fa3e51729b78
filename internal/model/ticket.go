package model

import "fmt"

// Ticket is one sold seat on a journey. The seat is addressed by
// carriage number and seat number inside that carriage; the
// database enforces that the triple (journey, cargo, seat) is sold
// at most once.
//
// Fields:
//  ID        - primary key identifier.
//  Cargo     - carriage number, 1-based.
//  Seat      - seat number inside the carriage, 1-based.
//  JourneyID - journey the ticket is valid for.
//  OrderID   - order the ticket was bought in.
type Ticket struct {
	ID        uint64 // tickets.id
	Cargo     int    // tickets.cargo
	Seat      int    // tickets.seat
	JourneyID uint64 // tickets.journey_id
	OrderID   uint64 // tickets.order_id
}

// FieldError reports a ticket field whose value fell outside the
// range the journey's train allows. The lower bound is always 1.
type FieldError struct {
	Field string // "seat" or "cargo"
	Value int
	Max   int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s must be in range [1, %d], got %d", e.Field, e.Max, e.Value)
}

// ValidateSeat checks a (cargo, seat) pair against the train's grid.
// Seat is checked before cargo, so a ticket that is wrong on both
// reports the seat. Returns *FieldError on violation, nil otherwise.
func ValidateSeat(seat, cargo, placesInCargo, cargoNum int) error {
	if seat < 1 || seat > placesInCargo {
		return &FieldError{Field: "seat", Value: seat, Max: placesInCargo}
	}
	if cargo < 1 || cargo > cargoNum {
		return &FieldError{Field: "cargo", Value: cargo, Max: cargoNum}
	}
	return nil
}
