package model

import "fmt"

// Route is a directed connection between two stations. Deleting
// either station removes the route and, through it, the journeys
// scheduled on it.
//
// Fields:
//  ID            - primary key identifier.
//  SourceID      - station the route starts from.
//  DestinationID - station the route ends at.
//  Distance      - length of the route in kilometres.
type Route struct {
	ID            uint64 // routes.id
	SourceID      uint64 // routes.source_id
	DestinationID uint64 // routes.destination_id
	Distance      uint32 // routes.distance
}

// RouteLabel renders the canonical human-readable form of a route,
// e.g. "Kyiv -> Lviv (540)". Ticket listings show this string
// instead of raw route ids.
func RouteLabel(source, destination string, distance uint32) string {
	return fmt.Sprintf("%s -> %s (%d)", source, destination, distance)
}
