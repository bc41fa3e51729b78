package repository

import (
	"errors"
	"testing"
)

func TestMySQLErrorClassing(t *testing.T) {
	dup := errors.New(`Error 1062 (23000): Duplicate entry 'Kyiv' for key 'stations.uq_stations_name'`)
	restrict := errors.New(`Error 1451 (23000): Cannot delete or update a parent row: a foreign key constraint fails`)
	missing := errors.New(`Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails (fk_journeys_route)`)
	other := errors.New("connection refused")

	cases := []struct {
		name string
		fn   func(error) bool
		err  error
		want bool
	}{
		{"dup key hit", isDupKey, dup, true},
		{"dup key miss", isDupKey, restrict, false},
		{"dup key nil", isDupKey, nil, false},
		{"fk restrict hit", isFKRestrict, restrict, true},
		{"fk restrict miss", isFKRestrict, missing, false},
		{"fk missing hit", isFKMissing, missing, true},
		{"fk missing miss", isFKMissing, dup, false},
		{"unrelated error", isFKMissing, other, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.err); got != tc.want {
				t.Fatalf("got %v, want %v for %v", got, tc.want, tc.err)
			}
		})
	}
}
