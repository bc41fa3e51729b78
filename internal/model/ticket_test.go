package model

import (
	"errors"
	"testing"
)

func TestValidateSeat(t *testing.T) {
	// Train grid under test: 5 carriages with 40 seats each.
	const placesInCargo, cargoNum = 40, 5

	tests := []struct {
		name      string
		seat      int
		cargo     int
		wantField string // "" means the pair is valid
		wantMax   int
	}{
		{name: "first seat first cargo", seat: 1, cargo: 1},
		{name: "last seat last cargo", seat: 40, cargo: 5},
		{name: "middle of the train", seat: 17, cargo: 3},
		{name: "seat zero", seat: 0, cargo: 1, wantField: "seat", wantMax: 40},
		{name: "seat negative", seat: -3, cargo: 2, wantField: "seat", wantMax: 40},
		{name: "seat one past capacity", seat: 41, cargo: 1, wantField: "seat", wantMax: 40},
		{name: "cargo zero", seat: 1, cargo: 0, wantField: "cargo", wantMax: 5},
		{name: "cargo one past capacity", seat: 1, cargo: 6, wantField: "cargo", wantMax: 5},
		{name: "both invalid reports seat", seat: 99, cargo: 99, wantField: "seat", wantMax: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeat(tt.seat, tt.cargo, placesInCargo, cargoNum)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateSeat(%d, %d) = %v, want nil", tt.seat, tt.cargo, err)
				}
				return
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("ValidateSeat(%d, %d) = %v, want *FieldError", tt.seat, tt.cargo, err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fe.Field, tt.wantField)
			}
			if fe.Max != tt.wantMax {
				t.Errorf("Max = %d, want %d", fe.Max, tt.wantMax)
			}
		})
	}
}

func TestValidateSeatSingleSeatTrain(t *testing.T) {
	if err := ValidateSeat(1, 1, 1, 1); err != nil {
		t.Errorf("ValidateSeat(1, 1, 1, 1) = %v, want nil", err)
	}
	if err := ValidateSeat(2, 1, 1, 1); err == nil {
		t.Error("ValidateSeat(2, 1, 1, 1) = nil, want range error")
	}
}

func TestFieldErrorMessage(t *testing.T) {
	err := &FieldError{Field: "cargo", Value: 7, Max: 4}
	want := "cargo must be in range [1, 4], got 7"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
