package model

// Station is a named stop on the railway network. Stations anchor
// both ends of a route and are the unit journey searches filter on.
//
// Fields:
//  ID        - primary key identifier.
//  Name      - unique station name (e.g. "Kyiv-Pasazhyrskyi").
//  Latitude  - geographic latitude of the station.
//  Longitude - geographic longitude of the station.
type Station struct {
	ID        uint64  // stations.id
	Name      string  // stations.name
	Latitude  float64 // stations.latitude
	Longitude float64 // stations.longitude
}
