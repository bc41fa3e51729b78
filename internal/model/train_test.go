package model

import "testing"

func TestTrainCapacity(t *testing.T) {
	tests := []struct {
		name          string
		cargoNum      int
		placesInCargo int
		want          int
	}{
		{name: "typical intercity", cargoNum: 9, placesInCargo: 60, want: 540},
		{name: "single carriage", cargoNum: 1, placesInCargo: 24, want: 24},
		{name: "single seat", cargoNum: 1, placesInCargo: 1, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Train{CargoNum: tt.cargoNum, PlacesInCargo: tt.placesInCargo}
			if got := tr.Capacity(); got != tt.want {
				t.Errorf("Capacity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRouteLabel(t *testing.T) {
	got := RouteLabel("Kyiv", "Lviv", 540)
	want := "Kyiv -> Lviv (540)"
	if got != want {
		t.Errorf("RouteLabel() = %q, want %q", got, want)
	}
}

func TestCrewFullName(t *testing.T) {
	c := Crew{FirstName: "Olena", LastName: "Shevchenko"}
	if got := c.FullName(); got != "Olena Shevchenko" {
		t.Errorf("FullName() = %q, want %q", got, "Olena Shevchenko")
	}
}
