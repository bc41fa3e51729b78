package model

// TrainType is a category of rolling stock (e.g. "Intercity",
// "Night express"). Trains reference their type with a protected
// foreign key, so a type cannot be removed while trains of that
// type exist.
type TrainType struct {
	ID   uint64 // train_types.id
	Name string // train_types.name
}

// Train describes one physical train. Its seating is a grid: the
// train has CargoNum carriages and every carriage has PlacesInCargo
// seats, so tickets address a seat as (cargo, seat) rather than by a
// per-seat row in the database. The image column is read-side only
// and lives on the repository's row type; uploads set it by path.
//
// Fields:
//  ID            - primary key identifier.
//  Name          - train name or number.
//  CargoNum      - number of carriages, at least 1.
//  PlacesInCargo - seats per carriage, at least 1.
//  TrainTypeID   - reference to the train's type (protected).
type Train struct {
	ID            uint64 // trains.id
	Name          string // trains.name
	CargoNum      int    // trains.cargo_num
	PlacesInCargo int    // trains.places_in_cargo
	TrainTypeID   uint64 // trains.train_type_id
}

// Capacity returns the total number of sellable seats on the train.
func (t Train) Capacity() int {
	return t.CargoNum * t.PlacesInCargo
}
